package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-tuner/dsp/buffer"
)

func ExampleFramer() {
	f := buffer.NewFramer(4)
	for _, chunk := range [][]float32{{1, 2, 3}, {4, 5, 6, 7, 8, 9}} {
		f.Push(chunk, func(w []float32) {
			fmt.Println(w)
		})
	}
	fmt.Println("buffered:", f.Buffered())

	// Output:
	// [1 2 3 4]
	// [5 6 7 8]
	// buffered: 1
}
