// Package tuner combines the level gate, the pitch detector and note naming
// into the readings the tuner application shows.
package tuner

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-tuner/dsp/pitch/bacf"
	"github.com/cwbudde/algo-tuner/measure/level"
	"github.com/cwbudde/algo-tuner/music/note"
)

// ErrInvalidReference is returned for a tuning reference that is not a
// positive finite frequency.
var ErrInvalidReference = errors.New("tuner: invalid tuning reference")

// Status tells why a window did or did not produce a note.
type Status int

const (
	// Detected means a pitch was found and named.
	Detected Status = iota
	// Gated means the window was too quiet to analyse.
	Gated
	// Undetermined means the detector found no pitch.
	Undetermined
)

func (s Status) String() string {
	switch s {
	case Detected:
		return "detected"
	case Gated:
		return "gated"
	default:
		return "undetermined"
	}
}

// Reading is the outcome of one window.
type Reading struct {
	Status Status
	Level  level.Level
	Pitch  bacf.Result
	Note   note.Note // valid when Status is Detected
}

// Engine turns windows into readings. It owns reusable buffers and is not
// safe for concurrent use; create one per goroutine.
type Engine struct {
	det       bacf.Config
	est       *bacf.Estimator
	meter     *level.Meter
	gate      level.Gate
	reference float64
}

// NewEngine builds an engine for the detector configuration det.
func NewEngine(det bacf.Config, gate level.Gate, reference float64) (*Engine, error) {
	if !(reference > 0) || math.IsInf(reference, 1) {
		return nil, fmt.Errorf("%w: %v Hz", ErrInvalidReference, reference)
	}
	est, err := bacf.NewEstimator(det)
	if err != nil {
		return nil, err
	}
	return &Engine{
		det:       det,
		est:       est,
		meter:     level.NewMeter(det.WindowSize),
		gate:      gate,
		reference: reference,
	}, nil
}

// WindowSize returns the number of samples Process expects.
func (e *Engine) WindowSize() int { return e.det.WindowSize }

// Process analyses one window. The boolean reports whether a note was
// detected.
func (e *Engine) Process(window []float32) (Reading, bool) {
	r := Reading{Level: e.meter.Measure(window)}
	if !e.gate.Open(r.Level) {
		r.Status = Gated
		return r, false
	}

	r.Pitch = e.est.Analyze(window)
	if !r.Pitch.OK {
		r.Status = Undetermined
		return r, false
	}

	n, err := note.FromFrequency(r.Pitch.Frequency, e.reference)
	if err != nil {
		r.Status = Undetermined
		return r, false
	}

	r.Status = Detected
	r.Note = n
	return r, true
}
