package bacf

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-tuner/dsp/pitch/bacf/internal/arch/generic"
)

// fftCorrelator computes the bit distance table through the identity
//
//	sum(s[i]*s[i+lag]) = n - 2*distance(lag),  s = 2*bit - 1
//
// over the n = halfWords*WordWidth compared bits. The window is long enough
// that a circular correlation of WindowSize points never wraps for the lags
// in use, so no extra zero padding is needed.
type fftCorrelator struct {
	plan *algofft.Plan[complex128]

	ref     []complex128
	src     []complex128
	refFreq []complex128
	srcFreq []complex128
}

func newFFTCorrelator(size int) (*fftCorrelator, error) {
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("bacf: failed to create FFT plan: %w", err)
	}

	return &fftCorrelator{
		plan:    plan,
		ref:     make([]complex128, size),
		src:     make([]complex128, size),
		refFreq: make([]complex128, size),
		srcFreq: make([]complex128, size),
	}, nil
}

func (f *fftCorrelator) correlate(words []uint32, halfWords, startLag int, table []uint32) (maxCount uint32, bestLag int) {
	n := halfWords * WordWidth

	for i := range f.src {
		s := -1.0
		if words[i/WordWidth]>>(uint(i)%WordWidth)&1 == 1 {
			s = 1.0
		}
		f.src[i] = complex(s, 0)
		if i < n {
			f.ref[i] = complex(s, 0)
		} else {
			f.ref[i] = 0
		}
	}

	if err := f.plan.Forward(f.srcFreq, f.src); err != nil {
		return generic.Correlate(words, halfWords, startLag, table)
	}
	if err := f.plan.Forward(f.refFreq, f.ref); err != nil {
		return generic.Correlate(words, halfWords, startLag, table)
	}

	// Y * conj(R) -> sum_i r[i] * y[i+lag]
	for i, r := range f.refFreq {
		f.srcFreq[i] *= complex(real(r), -imag(r))
	}

	if err := f.plan.Inverse(f.src, f.srcFreq); err != nil {
		return generic.Correlate(words, halfWords, startLag, table)
	}

	minCount := ^uint32(0)
	for pos := startLag; pos < len(table); pos++ {
		c := uint32(math.Round((float64(n) - real(f.src[pos])) / 2))
		table[pos] = c
		if c > maxCount {
			maxCount = c
		}
		if c < minCount {
			minCount = c
			bestLag = pos
		}
	}

	return maxCount, bestLag
}
