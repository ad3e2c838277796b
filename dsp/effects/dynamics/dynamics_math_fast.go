//go:build fastmath

package dynamics

import "github.com/meko-christian/algo-approx"

// Approximate log2/exp2 pair, built on natural log and exp.

const ln2 = 0.693147180559945309417232121458

func mathLog2(x float64) float64 { return approx.FastLog(x) / ln2 }

func mathPower2(x float64) float64 { return approx.FastExp(x * ln2) }
