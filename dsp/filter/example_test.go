package filter_test

import (
	"fmt"

	"github.com/cwbudde/algo-kick/dsp/filter"
)

func ExampleSVF() {
	lp := filter.NewSVF(filter.Lowpass)
	lp.Prepare(44100)
	lp.SetFrequency(7000)

	left := []float64{1, 1, 1, 1}
	right := []float64{0, 0, 0, 0}
	lp.Process(left, right)

	fmt.Println(lp.Type(), lp.Frequency(), right[3])
	// Output:
	// lowpass 7000 0
}
