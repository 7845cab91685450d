package bacf

import (
	"errors"
	"fmt"
	"math"
)

const (
	// WordWidth is the number of bits packed into one bitstream word.
	WordWidth = 32

	defaultSampleRate   = 44100
	defaultMinFrequency = 50
	defaultMaxFrequency = 500
)

var (
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("bacf: sample rate must be > 0")
	// ErrInvalidFrequencyRange is returned when the pitch range is empty or
	// not representable at the configured sample rate.
	ErrInvalidFrequencyRange = errors.New("bacf: invalid frequency range")
	// ErrWindowTooSmall is returned when the derived window is shorter than
	// four words, which leaves no comparison word per half. Lower the
	// minimum frequency or raise the sample rate.
	ErrWindowTooSmall = errors.New("bacf: analysis window too small")
)

// Config holds the numeric parameters of the detector. All derived fields are
// computed once by NewConfig; a Config is immutable after construction and
// may be shared between goroutines.
type Config struct {
	SampleRate   int
	MinFrequency int
	MaxFrequency int
	Kernel       Kernel

	MinPeriod     int // shortest candidate period in samples
	MaxPeriod     int // longest candidate period in samples
	WindowSize    int // samples per analysis window, power of two
	WordCount     int // packed words per window
	HalfWordCount int // words compared per lag
	HalfWindow    int // number of candidate lags
}

// Option mutates the base parameters of a Config before derivation.
type Option func(*Config)

// WithSampleRate sets the sampling rate in Hz.
func WithSampleRate(sampleRate int) Option {
	return func(cfg *Config) {
		cfg.SampleRate = sampleRate
	}
}

// WithFrequencyRange sets the supported pitch range in Hz.
func WithFrequencyRange(minHz, maxHz int) Option {
	return func(cfg *Config) {
		cfg.MinFrequency = minHz
		cfg.MaxFrequency = maxHz
	}
}

// WithKernel selects the autocorrelation kernel. KernelAuto picks the best
// kernel for the running CPU.
func WithKernel(k Kernel) Option {
	return func(cfg *Config) {
		cfg.Kernel = k
	}
}

// NewConfig derives and validates a detector configuration. Without options
// it describes a 44.1 kHz detector for 50..500 Hz, which yields a 2048-sample
// window.
func NewConfig(opts ...Option) (Config, error) {
	cfg := Config{
		SampleRate:   defaultSampleRate,
		MinFrequency: defaultMinFrequency,
		MaxFrequency: defaultMaxFrequency,
		Kernel:       KernelAuto,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.SampleRate <= 0 {
		return Config{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, cfg.SampleRate)
	}
	if cfg.MinFrequency <= 0 || cfg.MaxFrequency <= cfg.MinFrequency {
		return Config{}, fmt.Errorf("%w: [%d, %d] Hz", ErrInvalidFrequencyRange,
			cfg.MinFrequency, cfg.MaxFrequency)
	}
	if !cfg.Kernel.valid() {
		return Config{}, fmt.Errorf("%w: %d", ErrUnknownKernel, int(cfg.Kernel))
	}

	cfg.MinPeriod = cfg.SampleRate / cfg.MaxFrequency
	cfg.MaxPeriod = cfg.SampleRate / cfg.MinFrequency
	if cfg.MinPeriod < 1 {
		return Config{}, fmt.Errorf("%w: max frequency %d Hz exceeds sample rate %d Hz",
			ErrInvalidFrequencyRange, cfg.MaxFrequency, cfg.SampleRate)
	}

	cfg.WindowSize = SmallestPow2(2 * cfg.MaxPeriod)
	cfg.WordCount = cfg.WindowSize / WordWidth
	cfg.HalfWordCount = cfg.WordCount/2 - 1
	cfg.HalfWindow = cfg.WindowSize / 2

	if cfg.HalfWordCount < 1 || cfg.WordCount*WordWidth < cfg.WindowSize {
		return Config{}, fmt.Errorf("%w: %d samples", ErrWindowTooSmall, cfg.WindowSize)
	}
	if cfg.MinPeriod >= cfg.HalfWindow {
		return Config{}, fmt.Errorf("%w: min period %d >= half window %d",
			ErrInvalidFrequencyRange, cfg.MinPeriod, cfg.HalfWindow)
	}

	return cfg, nil
}

// DefaultConfig returns the 44.1 kHz, 50..500 Hz configuration.
func DefaultConfig() Config {
	cfg, err := NewConfig()
	if err != nil {
		panic(err)
	}
	return cfg
}

// WindowDuration returns the length of one analysis window in seconds.
func (c Config) WindowDuration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(c.WindowSize) / float64(c.SampleRate)
}

// SmallestPow2 returns the smallest power of two that is >= n.
func SmallestPow2(n int) int {
	if n <= 1 {
		return 1
	}
	if n > math.MaxInt/2 {
		return 0
	}
	m := 1
	for m < n {
		m <<= 1
	}
	return m
}
