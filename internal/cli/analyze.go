package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-tuner/internal/audiofile"
	"github.com/cwbudde/algo-tuner/internal/logging"
	"github.com/cwbudde/algo-tuner/internal/tuner"
)

func newAnalyzeCommand(a *app) *cobra.Command {
	var (
		format  string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Detect the pitch of a WAV or MP3 recording",
		Long: `Split a recording into analysis windows, detect the pitch of each and
print a summary.

Examples:
  tuner analyze guitar-e2.wav
  tuner analyze --windows --workers 4 take.mp3
  tuner analyze --output json take.wav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			audio, err := audiofile.Load(args[0])
			if err != nil {
				return err
			}
			a.log.Debug("decoded recording", logging.Fields{
				"file":        args[0],
				"sample_rate": audio.SampleRate,
				"channels":    audio.Channels,
				"duration":    audio.Duration().String(),
			})
			return a.analyze(cmd, audio.Samples, audio.SampleRate, format, verbose)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&format, "output", "o", "text", "output format (text, json, yaml)")
	f.BoolVar(&verbose, "windows", false, "list every window in text output")
	f.Int("workers", 0, "analysis workers, 0 for one per CPU")
	return cmd
}

func (a *app) analyze(cmd *cobra.Command, samples []float32, sampleRate int, format string, verbose bool) error {
	det, err := a.cfg.Detector()
	if err != nil {
		return err
	}
	gate, err := a.cfg.LevelGate()
	if err != nil {
		return err
	}

	start := time.Now()
	rep, err := tuner.AnalyzeFile(cmd.Context(), samples, sampleRate, tuner.FileOptions{
		Detector:  det,
		Gate:      gate,
		Reference: a.cfg.Tuning.Reference,
		Workers:   a.cfg.Analysis.Workers,
	})
	if err != nil {
		return err
	}
	a.log.Debug("analysis finished", logging.Fields{
		"windows": len(rep.Windows),
		"elapsed": time.Since(start).String(),
	})

	return writeReport(out(cmd), rep, format, verbose)
}

type reportWindow struct {
	Index     int     `json:"index" yaml:"index"`
	StartMS   int64   `json:"start_ms" yaml:"start_ms"`
	Status    string  `json:"status" yaml:"status"`
	LevelDB   float64 `json:"level_db" yaml:"level_db"`
	Frequency float64 `json:"frequency,omitempty" yaml:"frequency,omitempty"`
	Note      string  `json:"note,omitempty" yaml:"note,omitempty"`
	Cents     int     `json:"cents" yaml:"cents"`
}

type reportDoc struct {
	SampleRate   int            `json:"sample_rate" yaml:"sample_rate"`
	WindowSize   int            `json:"window_size" yaml:"window_size"`
	Detected     int            `json:"detected" yaml:"detected"`
	Gated        int            `json:"gated" yaml:"gated"`
	Undetermined int            `json:"undetermined" yaml:"undetermined"`
	Summary      tuner.Summary  `json:"summary" yaml:"summary"`
	Windows      []reportWindow `json:"windows" yaml:"windows"`
}

func toDoc(rep *tuner.Report) reportDoc {
	doc := reportDoc{
		SampleRate:   rep.SampleRate,
		WindowSize:   rep.WindowSize,
		Detected:     rep.Detected,
		Gated:        rep.Gated,
		Undetermined: rep.Undetermined,
		Summary:      rep.Summary,
	}
	for _, w := range rep.Windows {
		rw := reportWindow{
			Index:   w.Index,
			StartMS: w.Start.Milliseconds(),
			Status:  w.Status.String(),
			LevelDB: finite(w.Level.RMSDB),
		}
		if w.Status == tuner.Detected {
			rw.Frequency = w.Pitch.Frequency
			rw.Note = fmt.Sprintf("%s%d", w.Note.Name, w.Note.Octave)
			rw.Cents = w.Note.Cents
		}
		doc.Windows = append(doc.Windows, rw)
	}
	return doc
}

// finite maps -Inf levels of silent windows to a floor encoders accept.
func finite(db float64) float64 {
	const floor = -200.0
	if db < floor {
		return floor
	}
	return db
}

func writeReport(w io.Writer, rep *tuner.Report, format string, verbose bool) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toDoc(rep))
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(toDoc(rep))
	case "text", "":
		return writeText(w, rep, verbose)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeText(w io.Writer, rep *tuner.Report, verbose bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if verbose {
		fmt.Fprintln(tw, "WINDOW\tSTART\tSTATUS\tLEVEL\tFREQUENCY\tNOTE")
		for _, win := range rep.Windows {
			freq, name := "-", "-"
			if win.Status == tuner.Detected {
				freq = fmt.Sprintf("%.3f Hz", win.Pitch.Frequency)
				name = win.Note.String()
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f dB\t%s\t%s\n",
				win.Index, win.Start.Round(time.Millisecond), win.Status, finite(win.Level.RMSDB), freq, name)
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintf(tw, "windows\t%d (%d samples at %d Hz)\n", len(rep.Windows), rep.WindowSize, rep.SampleRate)
	fmt.Fprintf(tw, "detected\t%d\n", rep.Detected)
	fmt.Fprintf(tw, "gated\t%d\n", rep.Gated)
	fmt.Fprintf(tw, "undetermined\t%d\n", rep.Undetermined)
	if rep.Detected > 0 {
		s := rep.Summary
		fmt.Fprintf(tw, "note\t%s\n", s.Note)
		fmt.Fprintf(tw, "median\t%.3f Hz\n", s.Median)
		fmt.Fprintf(tw, "mean\t%.3f Hz (sd %.3f)\n", s.Mean, s.StdDev)
		fmt.Fprintf(tw, "range\t%.3f .. %.3f Hz\n", s.Min, s.Max)
	}
	return tw.Flush()
}
