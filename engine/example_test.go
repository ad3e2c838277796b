package engine_test

import (
	"fmt"

	"github.com/cwbudde/algo-kick/engine"
)

func ExampleEngine() {
	e := engine.New(engine.WithSampleRate(48000), engine.WithBPM(120))

	kick := make([]float64, 4800)
	for i := range kick {
		kick[i] = 0.8 * float64(len(kick)-i) / float64(len(kick))
	}
	e.LoadKickSample(kick)
	e.SetLooping(true)

	left := make([]float64, 48000)
	right := make([]float64, 48000)
	e.Process(left, right)

	s := e.Snapshot()
	fmt.Println("samples per beat:", s.SamplesPerBeat)
	fmt.Println("beats:", s.Beats, "kick triggers:", s.KickTriggers)
	fmt.Printf("first sample: %.2f\n", left[0])
	// Output:
	// samples per beat: 24000
	// beats: 2 kick triggers: 3
	// first sample: 0.80
}

func ExampleEngine_ApplyParams() {
	e := engine.New()

	p := engine.DefaultParams()
	p.BPM = 174
	p.MasterLimiter = 12
	e.ApplyParams(p)

	fmt.Println(e.Params().BPM, e.Params().MasterLimiter)
	// Output: 174 8
}
