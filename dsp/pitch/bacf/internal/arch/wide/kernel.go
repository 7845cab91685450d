// Package wide holds the 64-bit popcount correlation kernel. Pairs of packed
// 32-bit words are compared as one uint64, halving the popcount count on
// 64-bit targets.
package wide

import "math/bits"

const wordBits = 32

// Correlate has the same contract as the generic kernel and produces
// identical tables.
func Correlate(words []uint32, halfWords, startLag int, table []uint32) (maxCount uint32, bestLag int) {
	minCount := ^uint32(0)
	pairs := halfWords / 2
	odd := halfWords%2 == 1

	for pos := startLag; pos < len(table); pos++ {
		index := pos / wordBits
		shift := uint(pos % wordBits)
		count := 0

		for k := 0; k < 2*pairs; k += 2 {
			ref := uint64(words[k]) | uint64(words[k+1])<<32
			src := uint64(words[index+k]) | uint64(words[index+k+1])<<32
			// a 64-bit shift by 64 yields zero, so shift == 0 needs no branch
			v := src>>shift | uint64(words[index+k+2])<<(64-shift)
			count += bits.OnesCount64(ref ^ v)
		}
		if odd {
			k := halfWords - 1
			v := words[index+k]>>shift | words[index+k+1]<<(wordBits-shift)
			count += bits.OnesCount32(words[k] ^ v)
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
