// Package config loads the tuner application configuration from defaults,
// an optional YAML file and TUNER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-tuner/dsp/pitch/bacf"
	"github.com/cwbudde/algo-tuner/internal/logging"
	"github.com/cwbudde/algo-tuner/measure/level"
)

// EnvPrefix is the prefix of environment overrides, e.g. TUNER_AUDIO_DEVICE.
const EnvPrefix = "TUNER"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config represents the application configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	Audio    AudioConfig    `mapstructure:"audio" yaml:"audio"`
	Gate     GateConfig     `mapstructure:"gate" yaml:"gate"`
	Tuning   TuningConfig   `mapstructure:"tuning" yaml:"tuning"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
}

// AudioConfig contains capture and detector range settings.
type AudioConfig struct {
	SampleRate      int    `mapstructure:"sample_rate" yaml:"sample_rate"`
	MinFrequency    int    `mapstructure:"min_frequency" yaml:"min_frequency"`
	MaxFrequency    int    `mapstructure:"max_frequency" yaml:"max_frequency"`
	FramesPerBuffer int    `mapstructure:"frames_per_buffer" yaml:"frames_per_buffer"`
	Device          string `mapstructure:"device" yaml:"device"`
}

// GateConfig selects the silence gate.
type GateConfig struct {
	ThresholdDB float64 `mapstructure:"threshold_db" yaml:"threshold_db"`
	Mode        string  `mapstructure:"mode" yaml:"mode"`
}

// TuningConfig holds the pitch reference.
type TuningConfig struct {
	Reference float64 `mapstructure:"reference" yaml:"reference"`
}

// AnalysisConfig controls the detector implementation.
type AnalysisConfig struct {
	Kernel  string `mapstructure:"kernel" yaml:"kernel"`
	Workers int    `mapstructure:"workers" yaml:"workers"`
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	Color bool          `mapstructure:"color" yaml:"color"`
	Hold  time.Duration `mapstructure:"hold" yaml:"hold"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")

	v.SetDefault("audio.sample_rate", 44100)
	v.SetDefault("audio.min_frequency", 50)
	v.SetDefault("audio.max_frequency", 500)
	v.SetDefault("audio.frames_per_buffer", 512)
	v.SetDefault("audio.device", "")

	v.SetDefault("gate.threshold_db", level.DefaultThresholdDB)
	v.SetDefault("gate.mode", "rms")

	v.SetDefault("tuning.reference", 444.0)

	v.SetDefault("analysis.kernel", "auto")
	v.SetDefault("analysis.workers", 0)

	v.SetDefault("display.color", true)
	v.SetDefault("display.hold", "100ms")
}

// NewViper returns a viper instance with defaults and environment binding.
// When configFile is empty, tuner.yaml is searched in the working
// directory and $HOME/.config/tuner; a missing file is not an error.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
		return v, nil
	}

	v.SetConfigName("tuner")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/tuner")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	return v, nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration produced by the defaults alone.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate rejects values the application cannot run with.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}
	if _, err := c.Detector(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Audio.FramesPerBuffer < 0 {
		return fmt.Errorf("%w: audio.frames_per_buffer must be >= 0: %d", ErrInvalid, c.Audio.FramesPerBuffer)
	}
	if _, err := c.LevelGate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Gate.ThresholdDB > 0 {
		return fmt.Errorf("%w: gate.threshold_db must be <= 0: %v", ErrInvalid, c.Gate.ThresholdDB)
	}
	if !(c.Tuning.Reference >= 400 && c.Tuning.Reference <= 480) {
		return fmt.Errorf("%w: tuning.reference must be in [400, 480] Hz: %v", ErrInvalid, c.Tuning.Reference)
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("%w: analysis.workers must be >= 0: %d", ErrInvalid, c.Analysis.Workers)
	}
	if c.Display.Hold < 0 {
		return fmt.Errorf("%w: display.hold must be >= 0: %v", ErrInvalid, c.Display.Hold)
	}
	return nil
}

// Detector builds the pitch detector configuration.
func (c *Config) Detector() (bacf.Config, error) {
	kernel, err := bacf.ParseKernel(c.Analysis.Kernel)
	if err != nil {
		return bacf.Config{}, err
	}
	return bacf.NewConfig(
		bacf.WithSampleRate(c.Audio.SampleRate),
		bacf.WithFrequencyRange(c.Audio.MinFrequency, c.Audio.MaxFrequency),
		bacf.WithKernel(kernel),
	)
}

// LevelGate builds the silence gate.
func (c *Config) LevelGate() (level.Gate, error) {
	mode, err := level.ParseMode(c.Gate.Mode)
	if err != nil {
		return level.Gate{}, err
	}
	return level.Gate{ThresholdDB: c.Gate.ThresholdDB, Mode: mode}, nil
}

// YAML renders the effective configuration.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: encoding: %w", err)
	}
	return out, nil
}
