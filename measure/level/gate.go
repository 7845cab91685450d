package level

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

// DefaultThresholdDB is the level below which windows are treated as rests.
const DefaultThresholdDB = -50.0

// ErrUnknownMode is returned by ParseMode for unsupported names.
var ErrUnknownMode = errors.New("level: unknown gate mode")

// Mode selects which measurement a Gate compares against its threshold.
type Mode int

const (
	// ModeRMS gates on the root-mean-square level.
	ModeRMS Mode = iota
	// ModeMean gates on the magnitude of the window mean.
	ModeMean
	// ModePeak gates on the largest absolute sample.
	ModePeak
)

// String returns the mode name as accepted by ParseMode.
func (m Mode) String() string {
	switch m {
	case ModeRMS:
		return "rms"
	case ModeMean:
		return "mean"
	case ModePeak:
		return "peak"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode maps "rms", "mean" or "peak" to a Mode. Empty means rms.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rms":
		return ModeRMS, nil
	case "mean":
		return ModeMean, nil
	case "peak":
		return ModePeak, nil
	default:
		return ModeRMS, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// Gate passes windows whose selected level is strictly above ThresholdDB.
type Gate struct {
	ThresholdDB float64
	Mode        Mode
}

// DefaultGate returns an RMS gate at DefaultThresholdDB.
func DefaultGate() Gate {
	return Gate{ThresholdDB: DefaultThresholdDB, Mode: ModeRMS}
}

// Open reports whether l passes the gate.
func (g Gate) Open(l Level) bool {
	return g.Value(l) > g.ThresholdDB
}

// Value returns the dB figure of l the gate compares.
func (g Gate) Value(l Level) float64 {
	switch g.Mode {
	case ModeMean:
		return l.MeanDB
	case ModePeak:
		return l.PeakDB
	default:
		return l.RMSDB
	}
}

// Amplitude returns the threshold as a linear amplitude.
func (g Gate) Amplitude() float64 {
	return core.DBToLinear(g.ThresholdDB)
}
