package biquad

import (
	"math"
	"testing"
)

func TestChainCascadesSections(t *testing.T) {
	coeffs := LinkwitzRileyLP(2500, 4, 48000)
	chain := NewChain(coeffs)
	if chain.Len() != 2 || chain.Order() != 4 {
		t.Fatalf("len=%d order=%d, want 2/4", chain.Len(), chain.Order())
	}

	a, b := NewSection(coeffs[0]), NewSection(coeffs[1])
	buf := make([]float64, 200)
	for i := range buf {
		buf[i] = math.Sin(float64(i) * 0.07)
	}
	want := make([]float64, len(buf))
	for i, x := range buf {
		want[i] = b.ProcessSample(a.ProcessSample(x))
	}

	chain.ProcessBlock(buf)
	for i := range buf {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("[%d]: got %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestChainReset(t *testing.T) {
	chain := NewChain(LinkwitzRileyHP(120, 4, 44100))
	first := chain.ProcessSample(1)
	for range 20 {
		chain.ProcessSample(0.5)
	}

	chain.Reset()
	if got := chain.ProcessSample(1); got != first {
		t.Fatalf("after Reset got %v, want %v", got, first)
	}
}
