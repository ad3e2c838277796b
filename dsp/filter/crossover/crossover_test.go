package crossover

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestNewValidParameters(t *testing.T) {
	tests := []struct {
		freq  float64
		order int
		sr    float64
	}{
		{1000, 4, 48000},
		{120, 4, 44100},
		{2500, 8, 44100},
	}
	for _, tt := range tests {
		xo, err := New(tt.freq, tt.order, tt.sr)
		if err != nil {
			t.Fatalf("New(%.0f, %d, %.0f): unexpected error: %v", tt.freq, tt.order, tt.sr, err)
		}
		if xo.Freq() != tt.freq || xo.Low().Order() != tt.order || xo.High().Order() != tt.order {
			t.Fatalf("freq=%v low order=%d high order=%d, want %v/%d",
				xo.Freq(), xo.Low().Order(), xo.High().Order(), tt.freq, tt.order)
		}
	}
}

func TestNewInvalidParameters(t *testing.T) {
	tests := []struct {
		name  string
		freq  float64
		order int
		sr    float64
	}{
		{"order 2", 1000, 2, 48000},
		{"odd order", 1000, 3, 48000},
		{"zero order", 1000, 0, 48000},
		{"zero freq", 0, 4, 48000},
		{"freq at Nyquist", 24000, 4, 48000},
		{"zero sample rate", 1000, 4, 0},
	}
	for _, tt := range tests {
		if _, err := New(tt.freq, tt.order, tt.sr); !errors.Is(err, ErrParams) {
			t.Errorf("%s: err = %v, want ErrParams", tt.name, err)
		}
	}

	if _, err := NewStereo(30000, 44100); err == nil {
		t.Error("NewStereo above Nyquist: expected error")
	}
}

func TestAllpassFrequencyResponse(t *testing.T) {
	const sr = 44100.0

	for _, order := range []int{4, 8} {
		xo, err := New(2500, order, sr)
		if err != nil {
			t.Fatal(err)
		}

		for f := 20.0; f < sr/2; f *= 1.5 {
			h := xo.Low().Response(f, sr) + xo.High().Response(f, sr)
			if db := 20 * math.Log10(cmplx.Abs(h)); math.Abs(db) > 0.05 {
				t.Fatalf("LR%d sum at %.1f Hz = %.4f dB, want 0", order, f, db)
			}
		}
	}
}

func TestProcessBlockMatchesSample(t *testing.T) {
	a, _ := New(120, 4, 44100)
	b, _ := New(120, 4, 44100)

	input := make([]float64, 300)
	for i := range input {
		input[i] = math.Sin(2 * math.Pi * 80 * float64(i) / 44100)
	}

	lo := make([]float64, len(input))
	hi := make([]float64, len(input))
	a.ProcessBlock(input, lo, hi)

	for i, x := range input {
		wl, wh := b.ProcessSample(x)
		if math.Abs(lo[i]-wl) > 1e-12 || math.Abs(hi[i]-wh) > 1e-12 {
			t.Fatalf("sample %d: block (%v,%v) != sample (%v,%v)", i, lo[i], hi[i], wl, wh)
		}
	}
}

func TestProcessBlockInPlaceLow(t *testing.T) {
	a, _ := New(500, 4, 48000)
	b, _ := New(500, 4, 48000)

	buf := []float64{1, 0.5, -0.25, 0, 0, 0.75}
	ref := append([]float64(nil), buf...)

	hi := make([]float64, len(buf))
	a.ProcessBlock(buf, buf, hi)

	wantLo := make([]float64, len(ref))
	wantHi := make([]float64, len(ref))
	b.ProcessBlock(ref, wantLo, wantHi)

	for i := range buf {
		if buf[i] != wantLo[i] || hi[i] != wantHi[i] {
			t.Fatalf("aliased lo differs at %d", i)
		}
	}
}

func TestStereoSplitAndReset(t *testing.T) {
	xo, err := NewStereo(120, 44100)
	if err != nil {
		t.Fatal(err)
	}
	if xo.Freq() != 120 {
		t.Fatalf("Freq() = %v, want 120", xo.Freq())
	}

	n := 64
	left := make([]float64, n)
	right := make([]float64, n)
	left[0] = 1
	lowL, lowR := make([]float64, n), make([]float64, n)
	highL, highR := make([]float64, n), make([]float64, n)

	xo.Split(left, right, lowL, lowR, highL, highR)
	for i := range n {
		if lowR[i] != 0 || highR[i] != 0 {
			t.Fatalf("silent right channel produced output at %d", i)
		}
	}
	if highL[0] == 0 {
		t.Fatal("impulse should reach the high band")
	}

	xo.Reset()
	xo.Split(right, right, lowL, lowR, highL, highR)
	for i := range n {
		if lowL[i] != 0 || highL[i] != 0 {
			t.Fatalf("state leaked after Reset at %d", i)
		}
	}
}
