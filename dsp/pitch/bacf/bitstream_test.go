package bacf

import "testing"

func TestBitstreamSetGet(t *testing.T) {
	bs := NewBitstream(DefaultConfig())

	bs.Set(7, true)
	if !bs.Get(7) {
		t.Fatal("Get(7) = false after Set(7, true)")
	}
	if bs.Get(6) || bs.Get(8) {
		t.Fatal("neighbouring bits changed")
	}

	bs.Set(7, false)
	if bs.Get(7) || bs.Get(31) {
		t.Fatal("bits still set after Set(7, false)")
	}
}

func TestBitstreamRoundTripIsolated(t *testing.T) {
	cfg := mustConfig(t, WithSampleRate(8000), WithFrequencyRange(125, 1000))
	bs := NewBitstream(cfg)

	// alternating background so both set and clear are visible
	for i := range bs.Len() {
		bs.Set(i, i%3 == 0)
	}

	for i := range bs.Len() {
		for _, v := range []bool{true, false} {
			bs.Set(i, v)
			if bs.Get(i) != v {
				t.Fatalf("Get(%d) = %v, want %v", i, bs.Get(i), v)
			}
			for j := range bs.Len() {
				if j == i {
					continue
				}
				if bs.Get(j) != (j%3 == 0) {
					t.Fatalf("Set(%d, %v) changed bit %d", i, v, j)
				}
			}
		}
		bs.Set(i, i%3 == 0)
	}
}

func TestBitstreamFill(t *testing.T) {
	cfg := DefaultConfig()
	bs := NewBitstream(cfg)

	for i := range bs.Len() {
		bs.Set(i, true)
	}

	signal := []float32{0, 0.2, -0.05, -0.2, 0.1}
	bs.Fill(signal)

	want := []bool{false, true, true, false, true}
	for i, w := range want {
		if bs.Get(i) != w {
			t.Fatalf("bit %d = %v, want %v", i, bs.Get(i), w)
		}
	}
	for i := len(signal); i < bs.Len(); i++ {
		if bs.Get(i) {
			t.Fatalf("bit %d beyond signal is set", i)
		}
	}
}

func TestBitstreamClear(t *testing.T) {
	bs := NewBitstream(DefaultConfig())
	bs.Set(0, true)
	bs.Set(2047, true)
	bs.Clear()

	for _, w := range bs.Words() {
		if w != 0 {
			t.Fatalf("word %#x not cleared", w)
		}
	}
}
