package bacf

const (
	zeroCrossLow  = -0.1
	zeroCrossHigh = 0.0
)

// ZeroCross is a Schmitt-trigger style binarizer. Samples above zero latch it
// high, samples below -0.1 latch it low, anything in between keeps the
// previous state. The zero value starts low.
type ZeroCross struct {
	latched bool
}

// Run feeds one sample and returns the latched state.
func (z *ZeroCross) Run(sample float32) bool {
	if sample < zeroCrossLow {
		z.latched = false
	}
	if sample > zeroCrossHigh {
		z.latched = true
	}
	return z.latched
}

// State returns the current latched state without consuming a sample.
func (z *ZeroCross) State() bool { return z.latched }

// Reset returns the detector to the low state.
func (z *ZeroCross) Reset() { z.latched = false }
