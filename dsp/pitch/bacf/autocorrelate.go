package bacf

import archregistry "github.com/cwbudde/algo-tuner/dsp/pitch/bacf/internal/arch/registry"

// Correlation is the result of a bitstream autocorrelation. Table[lag] holds
// the number of differing bits at that lag; lower means more self-similar.
// Entries below the start lag are zero.
type Correlation struct {
	MaxCount uint32
	BestLag  int
	Table    []uint32
}

// Autocorrelate computes the distance table for lags in [startLag,
// HalfWindow) into a freshly allocated table.
func (b *Bitstream) Autocorrelate(startLag int) Correlation {
	return b.AutocorrelateInto(startLag, make([]uint32, b.cfg.HalfWindow))
}

// AutocorrelateInto is the allocation-free form of Autocorrelate. table must
// hold at least HalfWindow entries; only the first HalfWindow are used.
func (b *Bitstream) AutocorrelateInto(startLag int, table []uint32) Correlation {
	table = table[:b.cfg.HalfWindow]
	if startLag < 0 {
		startLag = 0
	}
	clear(table[:min(startLag, len(table))])

	maxCount, bestLag := b.kernel()(b.words, b.cfg.HalfWordCount, startLag, table)

	return Correlation{
		MaxCount: maxCount,
		BestLag:  bestLag,
		Table:    table,
	}
}

// prepareKernel builds any kernel state up front so the first analysis does
// not allocate.
func (b *Bitstream) prepareKernel() error {
	if b.cfg.Kernel != KernelFFT || b.fft != nil {
		return nil
	}

	f, err := newFFTCorrelator(b.cfg.WindowSize)
	if err != nil {
		return err
	}
	b.fft = f
	return nil
}

func (b *Bitstream) kernel() archregistry.CorrelateFn {
	if b.cfg.Kernel != KernelFFT {
		return popcountKernel(b.cfg.Kernel)
	}

	if b.fft == nil {
		f, err := newFFTCorrelator(b.cfg.WindowSize)
		if err != nil {
			return popcountKernel(KernelWord32)
		}
		b.fft = f
	}
	return b.fft.correlate
}
