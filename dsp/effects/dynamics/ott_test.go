package dynamics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-kick/internal/testutil"
)

func TestOTTAmountZeroIsIdentity(t *testing.T) {
	for _, p := range []OTTParams{KickOTTParams(), MasterOTTParams()} {
		o := NewOTT(p)
		o.Prepare(44100)

		left := testutil.DeterministicNoise(5, 1, 700)
		right := testutil.DeterministicNoise(6, 1, 700)
		wantL := append([]float64(nil), left...)
		wantR := append([]float64(nil), right...)

		o.Process(left, right)
		testutil.RequireSliceNearlyEqual(t, left, wantL, 0)
		testutil.RequireSliceNearlyEqual(t, right, wantR, 0)
	}
}

func TestOTTStepInputStaysFinite(t *testing.T) {
	o := NewOTT(KickOTTParams())
	o.Prepare(44100)
	o.SetAmount(1)

	left := make([]float64, 44100)
	right := make([]float64, 44100)
	for i := 1000; i < len(left); i++ {
		left[i] = 1
		right[i] = -1
	}

	o.Process(left, right)
	testutil.RequireFinite(t, left)
	testutil.RequireFinite(t, right)

	for i, v := range left {
		if math.Abs(v) > 1000 {
			t.Fatalf("left[%d] = %v is unbounded", i, v)
		}
	}
}

func TestOTTSilenceStaysSilent(t *testing.T) {
	o := NewOTT(MasterOTTParams())
	o.SetAmount(1)

	left := make([]float64, 512)
	right := make([]float64, 512)
	o.Process(left, right)

	for i := range left {
		if left[i] != 0 || right[i] != 0 {
			t.Fatalf("silence amplified at %d: %v/%v", i, left[i], right[i])
		}
	}
}

func TestOTTSetAmountClamp(t *testing.T) {
	o := NewOTT(KickOTTParams())

	tests := []struct {
		in, want float64
	}{
		{in: -1, want: 0},
		{in: 0.3, want: 0.3},
		{in: 4, want: 1},
	}
	for _, tt := range tests {
		o.SetAmount(tt.in)
		if got := o.Amount(); got != tt.want {
			t.Fatalf("SetAmount(%v) -> %v, want %v", tt.in, got, tt.want)
		}
	}

	o.SetAmount(math.NaN())
	if o.Amount() != 1 {
		t.Fatal("NaN amount should be ignored")
	}
}

func TestOTTMakeupScalesWithAmount(t *testing.T) {
	o := NewOTT(KickOTTParams())

	o.SetAmount(1)
	want := math.Pow(10, (MakeupGainDB+9)/20)
	if math.Abs(o.lowGain-want) > 1e-9 {
		t.Fatalf("low gain at amount 1 = %v, want %v", o.lowGain, want)
	}

	o.SetAmount(0.5)
	want = math.Pow(10, 0.5*(MakeupGainDB-3)/20)
	if math.Abs(o.midGain-want) > 1e-9 {
		t.Fatalf("mid gain at amount 0.5 = %v, want %v", o.midGain, want)
	}
}

func TestOTTChunksLongBlocks(t *testing.T) {
	a := NewOTT(OTTParams{RatioMultiplier: 8, MaxBlockSize: 64})
	b := NewOTT(OTTParams{RatioMultiplier: 8, MaxBlockSize: 64})
	a.SetAmount(0.7)
	b.SetAmount(0.7)

	in := testutil.DeterministicSine(80, 44100, 0.9, 300)

	l1 := append([]float64(nil), in...)
	r1 := append([]float64(nil), in...)
	a.Process(l1, r1)

	l2 := append([]float64(nil), in...)
	r2 := append([]float64(nil), in...)
	for start := 0; start < len(in); start += 50 {
		end := min(start+50, len(in))
		b.Process(l2[start:end], r2[start:end])
	}

	testutil.RequireSliceNearlyEqual(t, l1, l2, 1e-9)
}

func TestOTTDefaultsAndInvalidCrossover(t *testing.T) {
	o := NewOTT(OTTParams{})
	p := o.Params()
	if p.LowCrossoverHz != DefaultLowCrossoverHz || p.HighCrossoverHz != DefaultHighCrossoverHz || p.MaxBlockSize != defaultOTTBlockSize {
		t.Fatalf("defaults = %+v", p)
	}

	// 2.5 kHz is above Nyquist at 4 kHz; the previous crossovers stay.
	o.Prepare(4000)
	o.SetAmount(1)
	left := testutil.DeterministicSine(100, 4000, 0.5, 256)
	right := testutil.DeterministicSine(100, 4000, 0.5, 256)
	o.Process(left, right)
	testutil.RequireFinite(t, left)
}

func BenchmarkOTT128(b *testing.B) {
	o := NewOTT(KickOTTParams())
	o.SetAmount(0.8)
	left := testutil.DeterministicNoise(1, 0.5, 128)
	right := testutil.DeterministicNoise(2, 0.5, 128)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		o.Process(left, right)
	}
}
