package bacf

// subThresholdRatio bounds the distance, relative to the worst distance in
// the table, at which a lag still counts as strongly periodic.
const subThresholdRatio = 0.15

// CorrectHarmonics resolves octave-down errors in a raw best lag.
//
// Divisors are tried from rawLag/MinPeriod-1 down to 2. For divisor d the
// candidate period is rawLag/d, and it is accepted when every echo lag
// candidate+k, k in [1, d), has a distance at or below 15% of maxCount. The
// first divisor that passes wins; when none does, rawLag is returned.
func CorrectHarmonics(cfg Config, maxCount uint32, rawLag int, table []uint32) int {
	if cfg.MinPeriod <= 0 || rawLag <= 0 {
		return rawLag
	}

	limit := uint32(subThresholdRatio * float64(maxCount))
	maxDiv := rawLag / cfg.MinPeriod

	for div := maxDiv - 1; div >= 2; div-- {
		candidate := rawLag / div
		if allStrong(table, candidate, div, limit) {
			return candidate
		}
	}

	return rawLag
}

func allStrong(table []uint32, candidate, div int, limit uint32) bool {
	for k := 1; k < div; k++ {
		sub := candidate + k
		if sub >= len(table) || table[sub] > limit {
			return false
		}
	}
	return true
}
