package buffer

import "sync"

// Pool recycles buffers of one fixed window size. The capture path fills a
// pooled buffer per completed window and the consumer hands it back after
// analysis.
type Pool struct {
	size int
	pool sync.Pool
}

// NewPool returns a pool of windows holding size samples. Sizes below one
// are raised to one.
func NewPool(size int) *Pool {
	p := &Pool{size: max(size, 1)}
	p.pool.New = func() any {
		return New(p.size)
	}
	return p
}

// Size returns the window length of the pooled buffers.
func (p *Pool) Size() int { return p.size }

// Fill returns a pooled buffer holding a copy of window. A shorter window is
// zero-padded and a longer one truncated to Size.
func (p *Pool) Fill(window []float32) *Buffer {
	b := p.pool.Get().(*Buffer)
	n := copy(b.samples, window)
	clear(b.samples[n:])
	return b
}

// Put returns b to the pool. Buffers that cannot hold a full window are
// discarded. The caller must not use b afterwards.
func (p *Pool) Put(b *Buffer) {
	if b == nil || b.Cap() < p.size {
		return
	}
	b.samples = b.samples[:p.size]
	p.pool.Put(b)
}
