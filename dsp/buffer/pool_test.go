package buffer

import (
	"slices"
	"testing"
)

func TestPoolFillCopies(t *testing.T) {
	p := NewPool(4)

	src := []float32{1, 2, 3, 4}
	b := p.Fill(src)
	src[0] = 9

	if !slices.Equal(b.Samples(), []float32{1, 2, 3, 4}) {
		t.Fatalf("Samples() = %v, want [1 2 3 4]", b.Samples())
	}
	p.Put(b)
}

func TestPoolFillPadsAndTruncates(t *testing.T) {
	p := NewPool(4)

	// a recycled buffer must not leak its old tail
	p.Put(p.Fill([]float32{5, 6, 7, 8}))

	tests := []struct {
		in   []float32
		want []float32
	}{
		{[]float32{1, 2}, []float32{1, 2, 0, 0}},
		{[]float32{1, 2, 3, 4, 5, 6}, []float32{1, 2, 3, 4}},
		{nil, []float32{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		b := p.Fill(tt.in)
		if !slices.Equal(b.Samples(), tt.want) {
			t.Fatalf("Fill(%v) = %v, want %v", tt.in, b.Samples(), tt.want)
		}
		p.Put(b)
	}
}

func TestPoolPutRestoresSize(t *testing.T) {
	p := NewPool(8)

	b := p.Fill(nil)
	b.Resize(3)
	p.Put(b)

	if got := p.Fill(nil).Len(); got != 8 {
		t.Fatalf("Len() after reuse = %d, want 8", got)
	}
}

func TestPoolPutRejectsForeignBuffers(t *testing.T) {
	p := NewPool(8)
	p.Put(nil)
	p.Put(New(2))

	for range 4 {
		if got := p.Fill(nil).Len(); got != 8 {
			t.Fatalf("Len() = %d, want 8", got)
		}
	}
}

func TestNewPoolMinimumSize(t *testing.T) {
	if got := NewPool(0).Size(); got != 1 {
		t.Fatalf("Size() = %d, want 1", got)
	}
}

func BenchmarkPoolFill(b *testing.B) {
	p := NewPool(2048)
	window := make([]float32, 2048)

	b.ResetTimer()
	for range b.N {
		p.Put(p.Fill(window))
	}
}
