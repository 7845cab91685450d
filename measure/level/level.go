// Package level measures the loudness of analysis windows and gates quiet
// ones before pitch detection.
package level

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

// Level summarizes one window. dB values use the 20*log10 amplitude
// convention relative to full scale and are -Inf for silence.
type Level struct {
	Mean float64 // signed arithmetic mean
	RMS  float64
	Peak float64 // largest absolute sample

	MeanDB float64
	RMSDB  float64
	PeakDB float64
}

// Meter computes Levels. It keeps scratch space between calls, so a Meter is
// not safe for concurrent use.
type Meter struct {
	samples []float64
	squares []float64
}

// NewMeter returns a meter preallocated for windows of size samples. Larger
// windows grow the scratch space on demand.
func NewMeter(size int) *Meter {
	size = max(size, 0)
	return &Meter{
		samples: make([]float64, size),
		squares: make([]float64, size),
	}
}

// Measure returns the level of window. An empty window reports silence.
func (m *Meter) Measure(window []float32) Level {
	n := len(window)
	if n == 0 {
		return silence()
	}

	if cap(m.samples) < n {
		m.samples = make([]float64, n)
		m.squares = make([]float64, n)
	}
	x := m.samples[:n]
	sq := m.squares[:n]

	for i, v := range window {
		x[i] = float64(v)
	}
	vecmath.MulBlock(sq, x, x)

	mean := floats.Sum(x) / float64(n)
	rms := math.Sqrt(floats.Sum(sq) / float64(n))
	peak := math.Max(math.Abs(floats.Max(x)), math.Abs(floats.Min(x)))

	return Level{
		Mean:   mean,
		RMS:    rms,
		Peak:   peak,
		MeanDB: core.SignedLinearToDB(mean),
		RMSDB:  core.LinearToDB(rms),
		PeakDB: core.LinearToDB(peak),
	}
}

func silence() Level {
	return Level{
		MeanDB: math.Inf(-1),
		RMSDB:  math.Inf(-1),
		PeakDB: math.Inf(-1),
	}
}
