package core

import "math"

// denormalThreshold is the magnitude below which filter state is zeroed.
const denormalThreshold = 1e-30

// Clamp limits v to [lo, hi]. Swapped bounds are accepted.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FlushDenormals returns 0 for values too small to matter in recursive
// state, and v otherwise.
func FlushDenormals(v float64) float64 {
	if math.Abs(v) < denormalThreshold {
		return 0
	}
	return v
}

// DBToLinear converts a level in dB to a linear amplitude factor.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}
