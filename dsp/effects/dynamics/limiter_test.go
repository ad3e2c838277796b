package dynamics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-kick/internal/testutil"
)

func TestLimiterCeiling(t *testing.T) {
	l := NewLimiter()
	l.Prepare(44100)

	left := testutil.DeterministicSine(50, 44100, 4, 4410)
	right := testutil.DeterministicNoise(9, 3, 4410)
	l.Process(left, right)

	for i := range left {
		if math.Abs(left[i]) > 1+1e-12 || math.Abs(right[i]) > 1+1e-12 {
			t.Fatalf("sample %d exceeds ceiling: %v/%v", i, left[i], right[i])
		}
	}

	if gr := l.GainReductionDB(); gr >= 0 {
		t.Fatalf("expected gain reduction, got %v dB", gr)
	}
	if gr := l.GainReductionDB(); gr != 0 {
		t.Fatalf("meter should rearm, got %v dB", gr)
	}
}

func TestLimiterPassesQuietSignal(t *testing.T) {
	l := NewLimiter()

	left := testutil.DeterministicSine(440, 44100, 0.5, 1000)
	right := testutil.DeterministicSine(440, 44100, 0.25, 1000)
	wantL := append([]float64(nil), left...)
	wantR := append([]float64(nil), right...)

	l.Process(left, right)
	testutil.RequireSliceNearlyEqual(t, left, wantL, 0)
	testutil.RequireSliceNearlyEqual(t, right, wantR, 0)
}

func TestLimiterStereoLinked(t *testing.T) {
	l := NewLimiter()

	left := []float64{2, 2}
	right := []float64{0.5, 0.5}
	l.Process(left, right)

	if math.Abs(right[0]-0.25) > 1e-12 {
		t.Fatalf("right = %v, want 0.25 (shared gain)", right[0])
	}
}

func TestLimiterRelease(t *testing.T) {
	l := NewLimiter()
	l.Prepare(1000)
	l.SetRelease(10)

	left := make([]float64, 200)
	left[0] = 2
	for i := 1; i < len(left); i++ {
		left[i] = 0.9
	}
	right := make([]float64, len(left))
	l.Process(left, right)

	if left[1] > 0.9/2+0.1 {
		t.Fatalf("gain should still be reduced right after the peak, got %v", left[1])
	}
	if math.Abs(left[199]-0.9) > 1e-6 {
		t.Fatalf("gain should recover after release, got %v", left[199])
	}
}

func TestLimiterSetters(t *testing.T) {
	l := NewLimiter()
	l.SetThreshold(5)
	l.SetRelease(0)
	if l.Threshold() != 0 || l.Release() != minLimiterReleaseMs {
		t.Fatalf("threshold=%v release=%v", l.Threshold(), l.Release())
	}

	l.SetThreshold(-6)
	left := []float64{1}
	l.Process(left, []float64{0})
	if want := math.Pow(10, -6.0/20); math.Abs(left[0]-want) > 1e-12 {
		t.Fatalf("output = %v, want %v", left[0], want)
	}
}
