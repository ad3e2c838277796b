package conv_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-kick/dsp/conv"
)

func ExamplePartitioned() {
	// A two-tap echo: the input, then half of it three samples later.
	c, _ := conv.NewPartitioned([]float64{1, 0, 0, 0.5}, 4)

	in := []float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	out := make([]float64, len(in))
	_ = c.Process(out, in)

	for _, v := range out {
		if math.Abs(v) < 1e-9 {
			v = 0
		}
		fmt.Printf("%.1f ", v)
	}
	fmt.Println()
	// Output:
	// 0.0 0.0 0.0 0.0 1.0 0.0 0.0 0.5 0.0 0.0 0.0 0.0
}
