//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/cwbudde/algo-kick/engine"
)

var (
	eng   *engine.Engine
	funcs []js.Func
	left  []float64
	right []float64
)

func main() {
	api := js.Global().Get("Object").New()

	// prepare(sampleRate, blockSize) returns null, or an error string when
	// the block size differs from the first call.
	api.Set("prepare", export(func(args []js.Value) any {
		sr := 48000.0
		block := 0
		if len(args) > 0 {
			sr = args[0].Float()
		}
		if len(args) > 1 {
			block = args[1].Int()
		}
		next, err := prepareEngine(eng, sr, block)
		if err != nil {
			return err.Error()
		}
		eng = next
		return js.Null()
	}))

	// process(left, right) renders into two Float32Arrays of equal length.
	api.Set("process", export(func(args []js.Value) any {
		if eng == nil || len(args) < 2 {
			return js.Null()
		}
		n := min(args[0].Length(), args[1].Length())
		if cap(left) < n {
			left = make([]float64, n)
			right = make([]float64, n)
		}
		l, r := left[:n], right[:n]
		eng.Process(l, r)
		writeFloat32(args[0], l)
		writeFloat32(args[1], r)
		return js.Null()
	}))

	api.Set("loadKickSample", export(func(args []js.Value) any {
		if eng == nil || len(args) < 1 {
			return -1
		}
		return eng.LoadKickSample(readFloat64(args[0]))
	}))
	api.Set("loadNoiseSample", export(func(args []js.Value) any {
		if eng == nil || len(args) < 1 {
			return -1
		}
		return eng.LoadNoiseSample(readFloat64(args[0]))
	}))
	// loadIR(samples, lengthPerChannel, numChannels) takes planar data.
	api.Set("loadIR", export(func(args []js.Value) any {
		if eng == nil || len(args) < 3 {
			return -1
		}
		return eng.LoadIR(readFloat64(args[0]), args[1].Int(), args[2].Int())
	}))

	setInt(api, "selectKickSample", func(v int) { eng.SelectKickSample(v) })
	setInt(api, "selectNoiseSample", func(v int) { eng.SelectNoiseSample(v) })
	setInt(api, "selectIR", func(v int) { eng.SelectIR(v) })

	setFloat(api, "setKickLength", func(v float64) { eng.SetKickLength(v) })
	setFloat(api, "setKickDistortion", func(v float64) { eng.SetKickDistortion(v) })
	setFloat(api, "setKickOTT", func(v float64) { eng.SetKickOTT(v) })
	setFloat(api, "setNoiseVolume", func(v float64) { eng.SetNoiseVolume(v) })
	setFloat(api, "setNoiseLowPass", func(v float64) { eng.SetNoiseLowPass(v) })
	setFloat(api, "setNoiseHighPass", func(v float64) { eng.SetNoiseHighPass(v) })
	setFloat(api, "setReverbLowPass", func(v float64) { eng.SetReverbLowPass(v) })
	setFloat(api, "setReverbHighPass", func(v float64) { eng.SetReverbHighPass(v) })
	setFloat(api, "setReverbVolume", func(v float64) { eng.SetReverbVolume(v) })
	setFloat(api, "setMasterOTT", func(v float64) { eng.SetMasterOTT(v) })
	setFloat(api, "setMasterDistortion", func(v float64) { eng.SetMasterDistortion(v) })
	setFloat(api, "setMasterLimiter", func(v float64) { eng.SetMasterLimiter(v) })
	setFloat(api, "setBPM", func(v float64) { eng.SetBPM(v) })

	api.Set("setLooping", export(func(args []js.Value) any {
		if eng != nil && len(args) > 0 {
			eng.SetLooping(args[0].Bool())
		}
		return js.Null()
	}))
	api.Set("cue", export(func([]js.Value) any {
		if eng != nil {
			eng.Cue()
		}
		return js.Null()
	}))
	api.Set("cueRelease", export(func([]js.Value) any {
		if eng != nil {
			eng.CueRelease()
		}
		return js.Null()
	}))

	api.Set("state", export(func([]js.Value) any {
		if eng == nil {
			return js.Null()
		}
		st := eng.Snapshot()
		return map[string]any{
			"bpm":            st.BPM,
			"looping":        st.Looping,
			"samplesPerBeat": st.SamplesPerBeat,
			"beats":          st.Beats,
			"kickTriggers":   st.KickTriggers,
			"noiseTriggers":  st.NoiseTriggers,
			"kickSample":     st.KickSample,
			"noiseSample":    st.NoiseSample,
			"kickState":      st.KickState.String(),
			"noiseState":     st.NoiseState.String(),
			"activeIR":       st.ActiveIR,
			"numIRs":         st.NumIRs,
		}
	}))

	js.Global().Set("AlgoKick", api)
	select {}
}

func setFloat(api js.Value, name string, fn func(float64)) {
	api.Set(name, export(func(args []js.Value) any {
		if eng != nil && len(args) > 0 {
			fn(args[0].Float())
		}
		return js.Null()
	}))
}

func setInt(api js.Value, name string, fn func(int)) {
	api.Set(name, export(func(args []js.Value) any {
		if eng != nil && len(args) > 0 {
			fn(args[0].Int())
		}
		return js.Null()
	}))
}

// readFloat64 copies a JS typed array into a new slice.
func readFloat64(arr js.Value) []float64 {
	out := make([]float64, arr.Length())
	for i := range out {
		out[i] = arr.Index(i).Float()
	}
	return out
}

func writeFloat32(arr js.Value, src []float64) {
	for i, v := range src {
		arr.SetIndex(i, v)
	}
}

func export(fn func([]js.Value) any) js.Func {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		return fn(args)
	})
	funcs = append(funcs, f)
	return f
}

// prepareEngine builds the engine on first use, with the default block
// size when block is not positive. Later calls only change the sample
// rate: the engine holds loaded samples and knob values, so a different
// block size is rejected and cur is kept.
func prepareEngine(cur *engine.Engine, sr float64, block int) (*engine.Engine, error) {
	if cur == nil {
		return engine.New(engine.WithSampleRate(sr), engine.WithBlockSize(block)), nil
	}
	if block > 0 && block != cur.BlockSize() {
		return cur, fmt.Errorf("prepare: block size is fixed at %d, got %d", cur.BlockSize(), block)
	}
	cur.Prepare(sr)
	return cur, nil
}
