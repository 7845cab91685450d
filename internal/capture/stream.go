// Package capture reads mono audio from an input device and delivers it as
// fixed-size analysis windows.
package capture

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-tuner/internal/logging"
)

// ErrDeviceNotFound is returned when no input device matches the requested
// name.
var ErrDeviceNotFound = errors.New("capture: input device not found")

// Config describes the stream to open.
type Config struct {
	SampleRate      float64
	FramesPerBuffer int    // 0 lets the host choose
	Device          string // substring of the device name, empty for default
	WindowSize      int
	Queue           int // windows buffered between callback and consumer
}

// Stream is an open input stream.
type Stream struct {
	cfg    Config
	log    logging.Logger
	device *portaudio.DeviceInfo
	stream *portaudio.Stream
	disp   *dispatcher
}

// Open initializes the audio host and opens a mono input stream. Close must
// be called to release the host.
func Open(cfg Config, log logging.Logger) (*Stream, error) {
	if log == nil {
		log = logging.NoOpLogger{}
	}
	if cfg.WindowSize <= 0 {
		return nil, fmt.Errorf("capture: window size must be > 0: %d", cfg.WindowSize)
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("capture: initialize audio host: %w", err)
	}

	device, err := findDevice(cfg.Device)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, err
	}

	s := &Stream{
		cfg:    cfg,
		log:    log.WithFields(logging.Fields{"device": device.Name}),
		device: device,
		disp:   newDispatcher(cfg.WindowSize, cfg.Queue),
	}

	p := portaudio.HighLatencyParameters(device, nil)
	p.Input.Channels = 1
	p.Output.Channels = 0
	p.SampleRate = cfg.SampleRate
	p.FramesPerBuffer = cfg.FramesPerBuffer

	s.stream, err = portaudio.OpenStream(p, s.disp.process)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("capture: open stream on %q: %w", device.Name, err)
	}

	s.log.Debug("input stream opened", logging.Fields{
		"sample_rate":       cfg.SampleRate,
		"frames_per_buffer": cfg.FramesPerBuffer,
		"window_size":       cfg.WindowSize,
	})
	return s, nil
}

// DeviceName returns the name of the opened device.
func (s *Stream) DeviceName() string { return s.device.Name }

// Dropped returns how many windows were discarded because the consumer was
// busy.
func (s *Stream) Dropped() uint64 { return s.disp.dropped.Load() }

// Run starts the stream and calls fn for each window until ctx is done. fn
// runs on a single goroutine and must not retain the window.
func (s *Stream) Run(ctx context.Context, fn func(window []float32)) error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("capture: start stream: %w", err)
	}
	s.log.Info("capturing")

	err := s.disp.run(ctx, fn)

	if stopErr := s.stream.Stop(); stopErr != nil {
		s.log.Error(stopErr, "stopping stream")
	}
	s.log.Info("capture stopped", logging.Fields{
		"windows": s.disp.emitted.Load(),
		"dropped": s.disp.dropped.Load(),
	})

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close releases the stream and the audio host.
func (s *Stream) Close() error {
	return errors.Join(s.stream.Close(), portaudio.Terminate())
}

// Devices lists the names of input-capable devices.
func Devices() ([]string, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("capture: initialize audio host: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("capture: list devices: %w", err)
	}
	var names []string
	for _, d := range devices {
		if d.MaxInputChannels > 0 {
			names = append(names, d.Name)
		}
	}
	return names, nil
}

func findDevice(name string) (*portaudio.DeviceInfo, error) {
	if name == "" {
		d, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("capture: default input device: %w", err)
		}
		return d, nil
	}

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("capture: list devices: %w", err)
	}
	for _, d := range devices {
		if d.MaxInputChannels > 0 && strings.Contains(strings.ToLower(d.Name), strings.ToLower(name)) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrDeviceNotFound, name)
}
