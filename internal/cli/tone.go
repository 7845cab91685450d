package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/signal"
	"github.com/cwbudde/algo-tuner/internal/audiofile"
	"github.com/cwbudde/algo-tuner/internal/logging"
)

func newToneCommand(a *app) *cobra.Command {
	var (
		weights  []float64
		duration time.Duration
		noise    float64
		seed     int64
		outFile  string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "tone <frequency>",
		Short: "Synthesise a harmonic test tone and analyse it",
		Long: `Generate a tone with the given fundamental and partial weights, optionally
add white noise, and run it through the same analysis as a recording.

Examples:
  tuner tone 261.626
  tuner tone 82.41 --weights 0.2,0.5,0.3 --noise 0.05
  tuner tone 440 --out a4.wav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, err := strconv.ParseFloat(args[0], 64)
			if err != nil || freq <= 0 {
				return fmt.Errorf("invalid frequency %q", args[0])
			}

			rate := a.cfg.Audio.SampleRate
			n := int(duration.Seconds() * float64(rate))
			gen := signal.NewGeneratorWithOptions(
				[]core.ProcessorOption{core.WithSampleRate(float64(rate))},
				signal.WithSeed(seed),
			)

			x, err := gen.Harmonic(freq, weights, n)
			if err != nil {
				return err
			}
			if noise > 0 {
				nz, err := gen.WhiteNoise(noise, n)
				if err != nil {
					return err
				}
				signal.Mix(x, nz)
			}
			samples := signal.Float32(x)

			if outFile != "" {
				if err := audiofile.SaveWAV(outFile, rate, samples); err != nil {
					return err
				}
				a.log.Info("tone written", logging.Fields{"file": outFile, "samples": n})
			}

			return a.analyze(cmd, samples, rate, format, false)
		},
	}

	f := cmd.Flags()
	f.Float64SliceVar(&weights, "weights", []float64{0.3, 0.4, 0.3}, "amplitude of each partial, fundamental first")
	f.DurationVar(&duration, "duration", 500*time.Millisecond, "tone length")
	f.Float64Var(&noise, "noise", 0, "white noise amplitude")
	f.Int64Var(&seed, "seed", 1, "noise seed")
	f.StringVar(&outFile, "out", "", "also write the tone to this WAV file")
	f.StringVarP(&format, "output", "o", "text", "output format (text, json, yaml)")
	return cmd
}
