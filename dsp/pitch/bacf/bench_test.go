package bacf

import (
	"testing"

	"github.com/cwbudde/algo-tuner/internal/testutil"
)

func BenchmarkAutocorrelate(b *testing.B) {
	for _, k := range []Kernel{KernelWord32, KernelWord64, KernelFFT} {
		b.Run(k.String(), func(b *testing.B) {
			cfg := mustConfig(b, WithKernel(k))
			bs := goldenBitstream(b, cfg)
			if err := bs.prepareKernel(); err != nil {
				b.Fatal(err)
			}
			table := make([]uint32, cfg.HalfWindow)

			b.ResetTimer()
			for range b.N {
				bs.AutocorrelateInto(cfg.MinPeriod, table)
			}
		})
	}
}

func BenchmarkEstimate(b *testing.B) {
	cfg := DefaultConfig()
	est, err := NewEstimator(cfg)
	if err != nil {
		b.Fatal(err)
	}
	window := testutil.ThreeHarmonicTone(cfg.WindowSize, cfg.SampleRate, middleC)

	b.SetBytes(int64(cfg.WindowSize * 4))
	b.ResetTimer()
	for range b.N {
		est.Estimate(window)
	}
}
