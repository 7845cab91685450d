package capture

import (
	"context"
	"sync/atomic"

	"github.com/cwbudde/algo-tuner/dsp/buffer"
)

// dispatcher moves completed windows from the audio callback to the
// analysis goroutine. The callback side never blocks: when the consumer is
// still busy the window is dropped and counted.
type dispatcher struct {
	framer  *buffer.Framer
	pool    *buffer.Pool
	windows chan *buffer.Buffer
	dropped atomic.Uint64
	emitted atomic.Uint64
}

func newDispatcher(windowSize, queue int) *dispatcher {
	return &dispatcher{
		framer:  buffer.NewFramer(windowSize),
		pool:    buffer.NewPool(windowSize),
		windows: make(chan *buffer.Buffer, max(queue, 0)),
	}
}

// process is called from the audio callback with each hardware chunk.
func (d *dispatcher) process(in []float32) {
	d.framer.Push(in, d.offer)
}

func (d *dispatcher) offer(window []float32) {
	b := d.pool.Fill(window)

	select {
	case d.windows <- b:
		d.emitted.Add(1)
	default:
		d.pool.Put(b)
		d.dropped.Add(1)
	}
}

// run hands windows to fn until ctx is done.
func (d *dispatcher) run(ctx context.Context, fn func(window []float32)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b := <-d.windows:
			fn(b.Samples())
			d.pool.Put(b)
		}
	}
}
