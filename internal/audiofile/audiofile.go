// Package audiofile decodes WAV and MP3 files into mono float32 samples.
package audiofile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/go-mp3"
	"github.com/unixpickle/wav"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

// ErrUnsupportedFormat is returned for file extensions Load cannot decode.
var ErrUnsupportedFormat = errors.New("audiofile: unsupported format")

// Audio is a decoded, downmixed recording.
type Audio struct {
	SampleRate int
	Channels   int // channel count of the source before downmixing
	Samples    []float32
}

// Duration returns the playing time of the recording.
func (a *Audio) Duration() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(a.Samples)) * time.Second / time.Duration(a.SampleRate)
}

// Load decodes the file at path, choosing the decoder by extension.
func Load(path string) (*Audio, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return loadWAV(path)
	case ".mp3":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return DecodeMP3(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func loadWAV(path string) (*Audio, error) {
	s, err := wav.ReadSoundFile(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode wav %s: %w", path, err)
	}

	raw := s.Samples()
	interleaved := make([]float32, len(raw))
	for i, v := range raw {
		interleaved[i] = float32(v)
	}

	return &Audio{
		SampleRate: s.SampleRate(),
		Channels:   s.Channels(),
		Samples:    Downmix(interleaved, s.Channels()),
	}, nil
}

// DecodeMP3 decodes an MP3 stream. The decoder always yields 16-bit stereo.
func DecodeMP3(r io.Reader) (*Audio, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode mp3: %w", err)
	}

	pcm, err := io.ReadAll(d)
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode mp3: %w", err)
	}

	const channels = 2
	interleaved := make([]float32, len(pcm)/2)
	for i := range interleaved {
		v := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		interleaved[i] = float32(v) / 32768
	}

	return &Audio{
		SampleRate: d.SampleRate(),
		Channels:   channels,
		Samples:    Downmix(interleaved, channels),
	}, nil
}

// SaveWAV writes mono samples as a 16-bit PCM WAV file. Samples outside
// [-1, 1] are clipped.
func SaveWAV(path string, sampleRate int, samples []float32) error {
	s := wav.NewPCM16Sound(1, sampleRate)
	out := make([]wav.Sample, len(samples))
	for i, v := range samples {
		out[i] = wav.Sample(core.Clamp(float64(v), -1, 1))
	}
	s.SetSamples(out)

	if err := wav.WriteFile(s, path); err != nil {
		return fmt.Errorf("audiofile: write wav %s: %w", path, err)
	}
	return nil
}

// Downmix averages interleaved frames into one channel. A trailing partial
// frame is dropped.
func Downmix(interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return interleaved
	}

	frames := len(interleaved) / channels
	out := make([]float32, frames)
	scale := 1 / float32(channels)
	for i := range out {
		var sum float32
		for _, v := range interleaved[i*channels : (i+1)*channels] {
			sum += v
		}
		out[i] = sum * scale
	}
	return out
}
