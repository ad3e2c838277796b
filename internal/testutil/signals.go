// Package testutil holds deterministic test signals and float assertions
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns length samples of amplitude*sin(2πf·n/sr),
// starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	w := 2 * math.Pi * freqHz / sampleRate
	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * math.Sin(w*float64(n))
	}
	return out
}

// DeterministicNoise returns uniform noise in [-amplitude, amplitude) from a
// seeded source, so the same seed always yields the same signal.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}
	return out
}

// Impulse returns a unit impulse at pos. An out-of-range pos gives silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for n := range out {
		out[n] = value
	}
	return out
}

// Ones is DC(1, n).
func Ones(n int) []float64 { return DC(1, n) }
