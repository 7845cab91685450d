package tuner

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-tuner/dsp/pitch/bacf"
	"github.com/cwbudde/algo-tuner/measure/level"
)

// ErrTooShort is returned when a recording holds less than one window.
var ErrTooShort = errors.New("tuner: recording shorter than one analysis window")

// FileOptions configures AnalyzeFile.
type FileOptions struct {
	Detector  bacf.Config
	Gate      level.Gate
	Reference float64
	Workers   int // 0 uses GOMAXPROCS
}

// WindowReading is the reading of one window of a recording.
type WindowReading struct {
	Index int
	Start time.Duration
	Reading
}

// Summary describes the detected frequencies of a recording.
type Summary struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Median float64 `json:"median" yaml:"median"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Note   string  `json:"note" yaml:"note"` // most frequent note with octave, empty when none
}

// Report is the result of AnalyzeFile.
type Report struct {
	SampleRate   int
	WindowSize   int
	Windows      []WindowReading
	Detected     int
	Gated        int
	Undetermined int
	Summary      Summary
}

// AnalyzeFile splits samples into consecutive non-overlapping windows and
// analyses them on a pool of workers, each with its own Engine. Results are
// returned in window order. A trailing partial window is ignored. When the
// recording's sample rate differs from the detector's, the detector is
// rebuilt for the recording's rate with the same frequency range and kernel.
func AnalyzeFile(ctx context.Context, samples []float32, sampleRate int, opts FileOptions) (*Report, error) {
	det := opts.Detector
	if sampleRate != det.SampleRate {
		var err error
		det, err = bacf.NewConfig(
			bacf.WithSampleRate(sampleRate),
			bacf.WithFrequencyRange(det.MinFrequency, det.MaxFrequency),
			bacf.WithKernel(det.Kernel),
		)
		if err != nil {
			return nil, fmt.Errorf("tuner: detector for %d Hz: %w", sampleRate, err)
		}
	}

	size := det.WindowSize
	count := len(samples) / size
	if count == 0 {
		return nil, fmt.Errorf("%w: %d < %d samples", ErrTooShort, len(samples), size)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, count)

	readings := make([]WindowReading, count)
	jobs := make(chan int)

	engines := make([]*Engine, workers)
	for w := range engines {
		eng, err := NewEngine(det, opts.Gate, opts.Reference)
		if err != nil {
			return nil, err
		}
		engines[w] = eng
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range count {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for _, eng := range engines {
		g.Go(func() error {
			for i := range jobs {
				r, _ := eng.Process(samples[i*size : (i+1)*size])
				readings[i] = WindowReading{
					Index:   i,
					Start:   time.Duration(i*size) * time.Second / time.Duration(sampleRate),
					Reading: r,
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{
		SampleRate: sampleRate,
		WindowSize: size,
		Windows:    readings,
	}
	rep.tally()
	return rep, nil
}

func (r *Report) tally() {
	var freqs []float64
	names := make(map[string]int)

	for _, w := range r.Windows {
		switch w.Status {
		case Detected:
			r.Detected++
			freqs = append(freqs, w.Pitch.Frequency)
			names[fmt.Sprintf("%s%d", w.Note.Name, w.Note.Octave)]++
		case Gated:
			r.Gated++
		default:
			r.Undetermined++
		}
	}

	if len(freqs) == 0 {
		return
	}

	slices.Sort(freqs)
	r.Summary = Summary{
		Mean:   stat.Mean(freqs, nil),
		StdDev: stat.StdDev(freqs, nil),
		Median: stat.Quantile(0.5, stat.Empirical, freqs, nil),
		Min:    floats.Min(freqs),
		Max:    floats.Max(freqs),
		Note:   mostFrequent(names),
	}
	if len(freqs) == 1 {
		r.Summary.StdDev = 0
	}
}

// mostFrequent returns the key with the highest count, breaking ties by name.
func mostFrequent(counts map[string]int) string {
	best, bestCount := "", 0
	for name, c := range counts {
		if c > bestCount || (c == bestCount && name < best) {
			best, bestCount = name, c
		}
	}
	return best
}
