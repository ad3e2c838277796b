package dynamics_test

import (
	"fmt"

	"github.com/cwbudde/algo-kick/dsp/effects/dynamics"
)

func ExampleOTT() {
	ott := dynamics.NewOTT(dynamics.KickOTTParams())
	ott.Prepare(44100)

	left := []float64{0.1, 0.2, 0.3}
	right := []float64{0.1, 0.2, 0.3}

	// At amount 0 the processor is an exact passthrough.
	ott.Process(left, right)
	fmt.Println(left)

	ott.SetAmount(0.5)
	fmt.Printf("amount=%.1f\n", ott.Amount())
	// Output:
	// [0.1 0.2 0.3]
	// amount=0.5
}

func ExampleBandCompressor_StaticGainDB() {
	c := dynamics.NewBandCompressor(dynamics.BandParams{
		DownThresholdDB: -20, DownRatio: 3,
		UpThresholdDB: -40, UpRatio: 3,
	})

	for _, level := range []float64{-50, -30, -10} {
		fmt.Printf("%+.0f dB in -> %+.1f dB gain\n", level, c.StaticGainDB(level, 1))
	}
	// Output:
	// -50 dB in -> +7.5 dB gain
	// -30 dB in -> +0.0 dB gain
	// -10 dB in -> -7.5 dB gain
}

func ExampleLimiter() {
	lim := dynamics.NewLimiter()

	left := []float64{2}
	right := []float64{1}
	lim.Process(left, right)

	fmt.Printf("%.2f %.2f\n", left[0], right[0])
	// Output:
	// 1.00 0.50
}
