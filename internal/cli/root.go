// Package cli implements the tuner command line.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-tuner/internal/config"
	"github.com/cwbudde/algo-tuner/internal/logging"
)

// app carries state shared by the subcommands once flags are parsed.
type app struct {
	configFile string
	devLog     bool

	v   *viper.Viper
	cfg *config.Config
	log logging.Logger

	// newLogger is replaced in tests.
	newLogger func(level logging.Level, development bool) (logging.Logger, error)
}

// flag name to configuration key, for every flag that overrides a key
var flagKeys = map[string]string{
	"log-level":   "log_level",
	"sample-rate": "audio.sample_rate",
	"min-freq":    "audio.min_frequency",
	"max-freq":    "audio.max_frequency",
	"frames":      "audio.frames_per_buffer",
	"device":      "audio.device",
	"threshold":   "gate.threshold_db",
	"gate-mode":   "gate.mode",
	"reference":   "tuning.reference",
	"kernel":      "analysis.kernel",
	"workers":     "analysis.workers",
	"color":       "display.color",
	"hold":        "display.hold",
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{
		newLogger: func(level logging.Level, development bool) (logging.Logger, error) {
			return logging.New(level, development)
		},
	}

	root := &cobra.Command{
		Use:   "tuner",
		Short: "Instrument tuner based on bitstream autocorrelation",
		Long: `tuner listens to an input device and shows the nearest note and its
deviation in cents. It can also analyse recorded WAV or MP3 files and
synthetic test tones.

Configuration is read from tuner.yaml in the working directory or
$HOME/.config/tuner, from TUNER_* environment variables and from flags,
in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./tuner.yaml or $HOME/.config/tuner/tuner.yaml)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.BoolVar(&a.devLog, "dev-log", false, "human readable log output")
	pf.Int("sample-rate", 44100, "sample rate in Hz")
	pf.Int("min-freq", 50, "lowest detectable frequency in Hz")
	pf.Int("max-freq", 500, "highest detectable frequency in Hz")
	pf.Float64("reference", 444, "tuning reference for A4 in Hz")
	pf.String("kernel", "auto", "correlation kernel (auto, word32, word64, fft)")
	pf.Float64("threshold", -50, "gate threshold in dB")
	pf.String("gate-mode", "rms", "gate measurement (rms, mean, peak)")

	root.AddCommand(
		newListenCommand(a),
		newAnalyzeCommand(a),
		newToneCommand(a),
		newConfigCommand(a),
		newDevicesCommand(),
	)
	return root
}

// Execute runs the command line and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.NewViper(a.configFile)
	if err != nil {
		return err
	}
	if err := bindFlags(cmd, v); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log, err := a.newLogger(lvl, a.devLog)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	a.v, a.cfg, a.log = v, cfg, log
	log.Debug("configuration loaded", logging.Fields{
		"config_file": v.ConfigFileUsed(),
		"command":     cmd.Name(),
	})
	return nil
}

// bindFlags binds every known flag of cmd, local or inherited, to its
// configuration key so changed flags take precedence over file and
// environment values.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error
	bind := func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	}
	cmd.Flags().VisitAll(bind)
	cmd.InheritedFlags().VisitAll(bind)
	return lastErr
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
