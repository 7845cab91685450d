package bacf

// Bitstream is a fixed-capacity bit-packed boolean buffer. Bit i lives in
// word i/WordWidth at offset i%WordWidth. Index arguments are not range
// checked beyond the slice bounds; callers own the [0, Len) contract.
type Bitstream struct {
	cfg   Config
	words []uint32
	fft   *fftCorrelator
}

// NewBitstream allocates a cleared bitstream sized for cfg.
func NewBitstream(cfg Config) *Bitstream {
	return &Bitstream{
		cfg:   cfg,
		words: make([]uint32, cfg.WordCount),
	}
}

// Len returns the number of addressable bits.
func (b *Bitstream) Len() int { return b.cfg.WindowSize }

// Words exposes the packed storage. The slice aliases the bitstream.
func (b *Bitstream) Words() []uint32 { return b.words }

// Get reports bit i.
func (b *Bitstream) Get(i int) bool {
	mask := uint32(1) << (uint(i) % WordWidth)
	return b.words[i/WordWidth]&mask != 0
}

// Set writes bit i and leaves every other bit untouched.
func (b *Bitstream) Set(i int, v bool) {
	w := &b.words[i/WordWidth]
	mask := uint32(1) << (uint(i) % WordWidth)

	// all ones or all zeros; xor-ing in the differing bits under mask flips
	// only the addressed bit when it disagrees with v
	var fill uint32
	if v {
		fill = ^uint32(0)
	}
	*w ^= (fill ^ *w) & mask
}

// Clear resets every bit to false.
func (b *Bitstream) Clear() {
	clear(b.words)
}

// Fill binarizes signal into the bitstream through a fresh ZeroCross. Only
// the first Len samples are used; missing samples leave their bits cleared.
func (b *Bitstream) Fill(signal []float32) {
	b.Clear()

	n := min(len(signal), b.cfg.WindowSize)
	var zc ZeroCross
	for i := range n {
		b.Set(i, zc.Run(signal[i]))
	}
}
