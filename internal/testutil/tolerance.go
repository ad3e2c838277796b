package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails the test unless got and want have the same
// length and every pair is within eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := math.Abs(got[i] - want[i]); !(d <= eps) {
			t.Fatalf("[%d] = %v, want %v (|diff| %g > %g)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails the test at the first NaN or infinity in data.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("[%d] = %v, want finite", i, v)
		}
	}
}
