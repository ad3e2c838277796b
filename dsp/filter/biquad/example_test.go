package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-kick/dsp/filter/biquad"
)

func ExampleLinkwitzRileyLP() {
	lp := biquad.NewChain(biquad.LinkwitzRileyLP(120, 4, 44100))
	hp := biquad.NewChain(biquad.LinkwitzRileyHP(120, 4, 44100))

	fmt.Printf("LR%d at 120 Hz: %.2f dB / %.2f dB\n",
		lp.Order(), lp.MagnitudeDB(120, 44100), hp.MagnitudeDB(120, 44100))
	// Output:
	// LR4 at 120 Hz: -6.02 dB / -6.02 dB
}
