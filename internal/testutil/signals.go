// Package testutil holds deterministic test signals and tolerance helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand/v2"
)

// MiddleC is the frequency of C4 at A4 = 440 Hz.
const MiddleC = 261.626

// ThreeHarmonicTone returns n samples of a tone at freq with partials at 1x,
// 2x and 3x weighted 0.3, 0.4 and 0.3. It is computed in single precision
// so that bit-level results are reproducible against float32 references.
func ThreeHarmonicTone(n, sampleRate int, freq float32) []float32 {
	period := float32(sampleRate) / freq
	twoPi := float32(2 * math.Pi)
	fourPi := float32(4 * math.Pi)
	sixPi := float32(6 * math.Pi)

	out := make([]float32, n)
	for x := range out {
		angle := float32(x) / period
		first := float32(0.3) * sin32(float32(twoPi*angle))
		second := float32(0.4) * sin32(float32(fourPi*angle))
		third := float32(0.3) * sin32(float32(sixPi*angle))
		out[x] = float32(first+second) + third
	}
	return out
}

func sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Sine returns a sine of amplitude amp whose upward zero crossing sits at
// sample offset. A fractional offset keeps samples away from exact zeros.
func Sine(n, sampleRate int, freq, amp, offset float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*(float64(i)-offset)/float64(sampleRate)))
	}
	return out
}

// DC returns n samples of value.
func DC(value float32, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// Noise returns uniform white noise in [-amp, amp) from a fixed seed.
func Noise(seed uint64, amp float64, n int) []float32 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float32, n)
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * amp)
	}
	return out
}

// Scale multiplies x by gain in place and returns it.
func Scale(x []float32, gain float32) []float32 {
	for i := range x {
		x[i] *= gain
	}
	return x
}
