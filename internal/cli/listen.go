package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-tuner/internal/capture"
	"github.com/cwbudde/algo-tuner/internal/logging"
	"github.com/cwbudde/algo-tuner/internal/render"
	"github.com/cwbudde/algo-tuner/internal/tuner"
)

func newListenCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Tune from the live input device",
		Long: `Capture audio from an input device and draw the detected note.

Examples:
  tuner listen
  tuner listen --device usb --reference 440
  tuner listen --gate-mode peak --threshold -40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.listen(ctx, cmd)
		},
	}

	f := cmd.Flags()
	f.String("device", "", "input device name, or a part of it")
	f.Int("frames", 512, "frames per hardware buffer, 0 for host default")
	f.Bool("color", true, "colour the note by tuning accuracy")
	f.Duration("hold", 100*time.Millisecond, "minimum time between redraws")
	return cmd
}

func (a *app) listen(ctx context.Context, cmd *cobra.Command) error {
	det, err := a.cfg.Detector()
	if err != nil {
		return err
	}
	gate, err := a.cfg.LevelGate()
	if err != nil {
		return err
	}
	eng, err := tuner.NewEngine(det, gate, a.cfg.Tuning.Reference)
	if err != nil {
		return err
	}

	stream, err := capture.Open(capture.Config{
		SampleRate:      float64(det.SampleRate),
		FramesPerBuffer: a.cfg.Audio.FramesPerBuffer,
		Device:          a.cfg.Audio.Device,
		WindowSize:      det.WindowSize,
		Queue:           2,
	}, a.log)
	if err != nil {
		return err
	}
	defer stream.Close()

	r := render.New(out(cmd), render.WithColor(a.cfg.Display.Color))
	if err := r.Greeting(); err != nil {
		return err
	}
	a.log.Info("listening", logging.Fields{
		"device":      stream.DeviceName(),
		"window_size": det.WindowSize,
		"window_ms":   det.WindowDuration() * 1000,
		"reference":   a.cfg.Tuning.Reference,
		"gate":        gate.Mode.String(),
		"gate_level":  gate.Amplitude(),
	})

	var last time.Time
	hold := a.cfg.Display.Hold
	err = stream.Run(ctx, func(window []float32) {
		reading, ok := eng.Process(window)
		if !ok {
			return
		}
		now := time.Now()
		if now.Sub(last) < hold {
			return
		}
		last = now
		if err := r.Note(reading.Note); err != nil {
			a.log.Error(err, "drawing note")
		}
	})

	if dropped := stream.Dropped(); dropped > 0 {
		a.log.Warn("analysis fell behind the input", logging.Fields{"dropped_windows": dropped})
	}
	return err
}
