package buffer

// Framer accumulates chunks of any size into windows of exactly Size
// samples. Samples past the last complete window are kept for the next Push.
// A Framer is not safe for concurrent use.
type Framer struct {
	window []float32
	fill   int
}

// NewFramer returns a Framer producing windows of size samples. Sizes below
// one are raised to one.
func NewFramer(size int) *Framer {
	return &Framer{window: make([]float32, max(size, 1))}
}

// Size returns the window length.
func (f *Framer) Size() int { return len(f.window) }

// Buffered returns the number of samples waiting for the next window.
func (f *Framer) Buffered() int { return f.fill }

// Push appends chunk and calls fn once for every window it completes, in
// stream order. The window slice is reused after fn returns; fn must copy
// it to keep the data. Push returns the number of windows emitted.
func (f *Framer) Push(chunk []float32, fn func(window []float32)) int {
	emitted := 0
	for len(chunk) > 0 {
		n := copy(f.window[f.fill:], chunk)
		f.fill += n
		chunk = chunk[n:]

		if f.fill == len(f.window) {
			if fn != nil {
				fn(f.window)
			}
			f.fill = 0
			emitted++
		}
	}
	return emitted
}

// Reset drops any partially filled window.
func (f *Framer) Reset() {
	f.fill = 0
	clear(f.window)
}
