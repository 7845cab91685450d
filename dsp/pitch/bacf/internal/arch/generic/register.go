package generic

import (
	"math/bits"

	"github.com/cwbudde/algo-tuner/dsp/pitch/bacf/internal/arch/registry"
	"github.com/cwbudde/algo-vecmath/cpu"
)

const wordBits = 32

func init() {
	registry.Global.Register(registry.OpEntry{
		Name:      "word32",
		SIMDLevel: cpu.SIMDNone,
		Priority:  0,
		Correlate: Correlate,
	})
}

// Correlate compares one 32-bit word per popcount. When the lag is not word
// aligned the shifted word is rebuilt from two neighbours.
func Correlate(words []uint32, halfWords, startLag int, table []uint32) (maxCount uint32, bestLag int) {
	minCount := ^uint32(0)
	index := startLag / wordBits
	shift := uint(startLag % wordBits)
	ref := words[:halfWords]

	for pos := startLag; pos < len(table); pos++ {
		count := 0
		if shift == 0 {
			src := words[index : index+halfWords]
			for k, w := range ref {
				count += bits.OnesCount32(w ^ src[k])
			}
		} else {
			shift2 := wordBits - shift
			src := words[index : index+halfWords+1]
			for k, w := range ref {
				v := src[k]>>shift | src[k+1]<<shift2
				count += bits.OnesCount32(w ^ v)
			}
		}

		shift++
		if shift == wordBits {
			shift = 0
			index++
		}

		c := uint32(count)
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
