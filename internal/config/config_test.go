package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-tuner/dsp/pitch/bacf"
	"github.com/cwbudde/algo-tuner/measure/level"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, 50, cfg.Audio.MinFrequency)
	assert.Equal(t, 500, cfg.Audio.MaxFrequency)
	assert.Equal(t, -50.0, cfg.Gate.ThresholdDB)
	assert.Equal(t, "rms", cfg.Gate.Mode)
	assert.Equal(t, 444.0, cfg.Tuning.Reference)
	assert.Equal(t, "auto", cfg.Analysis.Kernel)
	assert.True(t, cfg.Display.Color)
	assert.Equal(t, 100*time.Millisecond, cfg.Display.Hold)

	det, err := cfg.Detector()
	require.NoError(t, err)
	assert.Equal(t, 2048, det.WindowSize)
	assert.Equal(t, bacf.KernelAuto, det.Kernel)

	gate, err := cfg.LevelGate()
	require.NoError(t, err)
	assert.Equal(t, level.DefaultGate(), gate)
}

func TestNewViperReadsFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
audio:
  sample_rate: 48000
  max_frequency: 1000
gate:
  mode: mean
analysis:
  kernel: fft
display:
  hold: 250ms
`), 0o600))

	t.Setenv("TUNER_TUNING_REFERENCE", "440")

	v, err := NewViper(path)
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 48000, cfg.Audio.SampleRate)
	assert.Equal(t, 1000, cfg.Audio.MaxFrequency)
	assert.Equal(t, 50, cfg.Audio.MinFrequency)
	assert.Equal(t, "mean", cfg.Gate.Mode)
	assert.Equal(t, "fft", cfg.Analysis.Kernel)
	assert.Equal(t, 440.0, cfg.Tuning.Reference)
	assert.Equal(t, 250*time.Millisecond, cfg.Display.Hold)
}

func TestNewViperMissingExplicitFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"sample rate", func(c *Config) { c.Audio.SampleRate = 0 }},
		{"range", func(c *Config) { c.Audio.MinFrequency = 600 }},
		{"frames", func(c *Config) { c.Audio.FramesPerBuffer = -1 }},
		{"gate mode", func(c *Config) { c.Gate.Mode = "lufs" }},
		{"gate threshold", func(c *Config) { c.Gate.ThresholdDB = 3 }},
		{"reference", func(c *Config) { c.Tuning.Reference = 220 }},
		{"kernel", func(c *Config) { c.Analysis.Kernel = "avx512" }},
		{"workers", func(c *Config) { c.Analysis.Workers = -2 }},
		{"hold", func(c *Config) { c.Display.Hold = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("tuning.reference", 1000)

	_, err := Load(v)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	out, err := cfg.YAML()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "audio")
	assert.Contains(t, string(out), "reference: 444")
}
