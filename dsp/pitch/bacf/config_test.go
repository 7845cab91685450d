package bacf

import (
	"errors"
	"testing"
)

func TestDefaultConfigDerivedValues(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"SampleRate", cfg.SampleRate, 44100},
		{"MinPeriod", cfg.MinPeriod, 88},
		{"MaxPeriod", cfg.MaxPeriod, 882},
		{"WindowSize", cfg.WindowSize, 2048},
		{"WordCount", cfg.WordCount, 64},
		{"HalfWordCount", cfg.HalfWordCount, 31},
		{"HalfWindow", cfg.HalfWindow, 1024},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}

	if cfg.WordCount*WordWidth < cfg.WindowSize {
		t.Fatalf("word storage %d bits < window %d", cfg.WordCount*WordWidth, cfg.WindowSize)
	}
	if cfg.WindowSize&(cfg.WindowSize-1) != 0 {
		t.Fatalf("window size %d is not a power of two", cfg.WindowSize)
	}
}

func TestNewConfigOptions(t *testing.T) {
	cfg := mustConfig(t, WithSampleRate(48000), WithFrequencyRange(80, 1000), WithKernel(KernelWord64))

	if cfg.MinPeriod != 48 || cfg.MaxPeriod != 600 {
		t.Fatalf("periods = [%d, %d], want [48, 600]", cfg.MinPeriod, cfg.MaxPeriod)
	}
	if cfg.WindowSize != 2048 {
		t.Fatalf("WindowSize = %d, want 2048", cfg.WindowSize)
	}
	if cfg.Kernel != KernelWord64 {
		t.Fatalf("Kernel = %v, want word64", cfg.Kernel)
	}
}

func TestNewConfigSmallestWindow(t *testing.T) {
	// 2*max period = 128 is the shortest usable window
	cfg := mustConfig(t, WithSampleRate(8000), WithFrequencyRange(125, 1000))

	if cfg.WindowSize != 4*WordWidth {
		t.Fatalf("WindowSize = %d, want %d", cfg.WindowSize, 4*WordWidth)
	}
	if cfg.HalfWordCount != 1 {
		t.Fatalf("HalfWordCount = %d, want 1", cfg.HalfWordCount)
	}
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"zero sample rate", []Option{WithSampleRate(0)}, ErrInvalidSampleRate},
		{"negative sample rate", []Option{WithSampleRate(-44100)}, ErrInvalidSampleRate},
		{"empty range", []Option{WithFrequencyRange(500, 500)}, ErrInvalidFrequencyRange},
		{"inverted range", []Option{WithFrequencyRange(500, 50)}, ErrInvalidFrequencyRange},
		{"zero min", []Option{WithFrequencyRange(0, 500)}, ErrInvalidFrequencyRange},
		{"max above rate", []Option{WithSampleRate(8000), WithFrequencyRange(50, 9000)}, ErrInvalidFrequencyRange},
		{"window below four words", []Option{WithSampleRate(8000), WithFrequencyRange(400, 1000)}, ErrWindowTooSmall},
		{"unknown kernel", []Option{WithKernel(Kernel(42))}, ErrUnknownKernel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSmallestPow2(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{1200, 2048},
		{1764, 2048},
		{2049, 4096},
	}
	for _, tt := range tests {
		if got := SmallestPow2(tt.in); got != tt.want {
			t.Errorf("SmallestPow2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWindowDuration(t *testing.T) {
	cfg := DefaultConfig()
	want := 2048.0 / 44100.0
	if got := cfg.WindowDuration(); got != want {
		t.Fatalf("WindowDuration() = %v, want %v", got, want)
	}
	if got := (Config{}).WindowDuration(); got != 0 {
		t.Fatalf("zero config WindowDuration() = %v, want 0", got)
	}
}
