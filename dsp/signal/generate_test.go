package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))
	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestHarmonicMatchesPartialSum(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(44100))
	const f = 261.626
	weights := []float64{0.3, 0.4, 0.3}

	out, err := g.Harmonic(f, weights, 256)
	if err != nil {
		t.Fatalf("Harmonic() error = %v", err)
	}

	for i, v := range out {
		phase := 2 * math.Pi * f * float64(i) / 44100
		want := 0.3*math.Sin(phase) + 0.4*math.Sin(2*phase) + 0.3*math.Sin(3*phase)
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestHarmonicSkipsZeroWeights(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))
	a, err := g.Harmonic(50, []float64{0, 1}, 32)
	if err != nil {
		t.Fatalf("Harmonic() error = %v", err)
	}
	b, err := g.Sine(100, 1, 32)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			t.Fatalf("a[%d] = %v, b[%d] = %v", i, a[i], i, b[i])
		}
	}
}

func TestHarmonicErrors(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Harmonic(440, nil, 8); !errors.Is(err, ErrEmptyWeights) {
		t.Fatalf("nil weights: err = %v, want ErrEmptyWeights", err)
	}
	if _, err := g.Harmonic(440, []float64{1}, 0); err == nil {
		t.Fatal("zero samples: expected error")
	}
	if _, err := g.Harmonic(-1, []float64{1}, 8); err == nil {
		t.Fatal("negative frequency: expected error")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))

	n1, err := g1.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := g2.WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
		if math.Abs(n1[i]) > 1 {
			t.Fatalf("noise[%d] = %v out of range", i, n1[i])
		}
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}

	a, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	g.SetSeed(100)
	b, err := g.WhiteNoise(1, 8)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different noise")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{-0.5, 1.0, -0.25}, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if out[1] != 0.5 {
		t.Fatalf("peak = %v, want 0.5", out[1])
	}
	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("empty input: expected error")
	}
}

func TestMixAndFloat32(t *testing.T) {
	dst := []float64{1, 2, 3}
	Mix(dst, []float64{0.5, 0.5})

	got := Float32(dst)
	want := []float32{1.5, 2.5, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
