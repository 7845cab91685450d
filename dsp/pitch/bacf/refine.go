package bacf

import "math"

// Refine converts an integer period into a frequency using the raw signal.
//
// It locates the first upward zero crossing of the window and the first one
// at or after index lag-1, places each between its two samples by linear
// interpolation and divides the sample rate by their distance. Both scans
// treat the sample before their start as zero, so a scan that starts on a
// positive sample takes that sample as its edge. The second
// result is false when lag is outside [1, WindowSize), when either crossing
// is missing or when the interpolated period is not a positive finite value.
func Refine(cfg Config, signal []float32, lag int) (float64, bool) {
	n := min(len(signal), cfg.WindowSize)
	if lag < 1 || lag >= n {
		return 0, false
	}
	signal = signal[:n]

	start, dx1, ok := risingEdge(signal, 0)
	if !ok {
		return 0, false
	}

	next, dx2, ok := risingEdge(signal, lag-1)
	if !ok {
		return 0, false
	}

	period := float64(next-start) + (dx2 - dx1)
	if !(period > 0) || math.IsInf(period, 0) {
		return 0, false
	}

	freq := float64(cfg.SampleRate) / period
	if math.IsNaN(freq) || math.IsInf(freq, 0) || freq <= 0 {
		return 0, false
	}

	return freq, true
}

// risingEdge returns the first index i >= from where the signal goes from
// non-positive to positive, together with the fractional offset of the zero
// crossing past sample i-1. The sample before from counts as zero.
func risingEdge(signal []float32, from int) (int, float64, bool) {
	var prev float32
	for i := from; i < len(signal); i++ {
		cur := signal[i]
		if cur > 0 && prev <= 0 {
			dy := float64(cur) - float64(prev)
			return i, -float64(prev) / dy, true
		}
		prev = cur
	}

	return 0, 0, false
}
