//go:build !fastmath

package dynamics

import "math"

// Exact log2/exp2 pair for the level detector and gain computer.

func mathLog2(x float64) float64 { return math.Log2(x) }

func mathPower2(x float64) float64 { return math.Exp2(x) }
