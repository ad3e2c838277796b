package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-kick/internal/testutil"
)

func TestWaveshaperCurve(t *testing.T) {
	w := NewWaveshaper()
	w.SetDrive(3)

	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 0},
		{in: 0.5, want: math.Tanh(1.5) + 0.025},
		{in: -0.5, want: -math.Tanh(1.5) + 0.025},
		{in: 1, want: math.Tanh(3) + 0.1},
	}

	for _, tt := range tests {
		if got := w.ProcessSample(tt.in); math.Abs(got-tt.want) > 1e-3 {
			t.Fatalf("ProcessSample(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWaveshaperDriveClamp(t *testing.T) {
	w := NewWaveshaper()
	if w.Drive() != DefaultDrive {
		t.Fatalf("default drive = %v, want %v", w.Drive(), DefaultDrive)
	}

	w.SetDrive(-1)
	if w.Drive() != 0 {
		t.Fatalf("negative drive should clamp to 0, got %v", w.Drive())
	}

	w.SetDrive(1000)
	if w.Drive() != maxDrive {
		t.Fatalf("drive = %v, want %v", w.Drive(), maxDrive)
	}

	w.SetDrive(math.Inf(1))
	if w.Drive() != maxDrive {
		t.Fatal("non-finite drive should be ignored")
	}
}

func TestWaveshaperStereoMatchesSample(t *testing.T) {
	w := NewWaveshaper()
	w.Prepare(48000)

	left := testutil.DeterministicSine(100, 48000, 1.5, 256)
	right := testutil.DeterministicNoise(3, 1, 256)
	wantL := make([]float64, len(left))
	wantR := make([]float64, len(right))
	for i := range left {
		wantL[i] = w.ProcessSample(left[i])
		wantR[i] = w.ProcessSample(right[i])
	}

	w.Process(left, right)
	testutil.RequireSliceNearlyEqual(t, left, wantL, 0)
	testutil.RequireSliceNearlyEqual(t, right, wantR, 0)
	testutil.RequireFinite(t, left)
}

func BenchmarkWaveshaper(b *testing.B) {
	w := NewWaveshaper()
	left := testutil.DeterministicSine(55, 44100, 1, 128)
	right := testutil.DeterministicSine(55, 44100, 1, 128)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		w.Process(left, right)
	}
}
