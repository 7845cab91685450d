// Package buffer provides reusable float32 sample buffers, a sync.Pool of
// them and a Framer that cuts an arbitrary stream of audio chunks into
// fixed-size analysis windows.
package buffer
