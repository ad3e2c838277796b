package engine

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-kick/dsp/core"
	"github.com/cwbudde/algo-kick/dsp/effects"
	"github.com/cwbudde/algo-kick/dsp/effects/dynamics"
	"github.com/cwbudde/algo-kick/dsp/effects/reverb"
	"github.com/cwbudde/algo-kick/dsp/filter"
	"github.com/cwbudde/algo-kick/dsp/sampler"
)

const (
	// NoiseEveryBeats is the number of beats between automatic noise hits.
	NoiseEveryBeats = 16

	noiseReleaseSeconds = 0.1

	defaultLowPassHz  = 7000.0
	defaultHighPassHz = 30.0

	minLimiterGain = 1.0
	maxLimiterGain = 8.0
)

type impulseResponse struct {
	samples          []float64
	lengthPerChannel int
	numChannels      int
}

// Engine renders the kick, noise and reverb mix through the master chain.
type Engine struct {
	sampleRate float64
	blockSize  int

	kick  *sampler.Voice
	noise *sampler.Voice

	kickShaper     *effects.Waveshaper
	kickOTT        *dynamics.OTT
	kickDistortion float64

	noiseLowPass  FilterStage
	noiseHighPass FilterStage

	convolution    ReverbStage
	reverbLowPass  FilterStage
	reverbHighPass FilterStage
	reverbGain     float64

	irs      []impulseResponse
	activeIR int

	masterOTT        *dynamics.OTT
	masterShaper     *effects.Waveshaper
	masterDistortion float64
	limiterGain      float64
	limiter          *dynamics.Limiter

	bpm              float64
	looping          bool
	samplesPerBeat   int
	samplesSinceBeat int
	noiseBeatCount   int
	pendingNoise     bool

	beats         int
	kickTriggers  int
	noiseTriggers int

	// Knob values kept for Params.
	params Params

	kickBuf, noiseBuf, reverbBuf, dryBuf core.Stereo
}

// New returns a prepared engine with no samples or impulse responses
// loaded. The noise voice loops and releases over 100 ms; both noise and
// reverb filters start at 30 Hz to 7 kHz.
func New(opts ...Option) *Engine {
	cfg := applyOptions(opts...)
	n := cfg.BlockSize

	ottBlock := func(p dynamics.OTTParams) dynamics.OTTParams {
		p.MaxBlockSize = n
		return p
	}

	e := &Engine{
		sampleRate: cfg.SampleRate,
		blockSize:  n,

		kick:  sampler.NewVoice(),
		noise: sampler.NewVoice(),

		kickShaper: effects.NewWaveshaper(),
		kickOTT:    dynamics.NewOTT(ottBlock(dynamics.KickOTTParams())),

		noiseLowPass:  filter.NewSVF(filter.Lowpass),
		noiseHighPass: filter.NewSVF(filter.Highpass),

		convolution:    reverb.NewStereoConvolution(n),
		reverbLowPass:  filter.NewSVF(filter.Lowpass),
		reverbHighPass: filter.NewSVF(filter.Highpass),
		reverbGain:     1,
		activeIR:       -1,

		masterOTT:    dynamics.NewOTT(ottBlock(dynamics.MasterOTTParams())),
		masterShaper: effects.NewWaveshaper(),
		limiterGain:  1,
		limiter:      dynamics.NewLimiter(),

		bpm:    cfg.bpm,
		params: DefaultParams(),

		kickBuf:   core.NewStereo(n),
		noiseBuf:  core.NewStereo(n),
		reverbBuf: core.NewStereo(n),
		dryBuf:    core.NewStereo(n),
	}
	e.params.BPM = cfg.bpm

	e.noise.SetRelease(noiseReleaseSeconds)
	e.noise.SetLooping(true)
	e.convolution.SetMix(0, 1)

	e.Prepare(cfg.SampleRate)

	return e
}

// Prepare sets the sample rate on every stage and clears all filter,
// dynamics and convolution state. Knob values and loaded data are kept.
// Non-positive rates are ignored.
func (e *Engine) Prepare(sampleRate float64) {
	if sampleRate > 0 && core.IsFinite(sampleRate) {
		e.sampleRate = sampleRate
	}
	sr := e.sampleRate

	e.kick.SetSampleRate(sr)
	e.noise.SetSampleRate(sr)

	for _, p := range []StereoProcessor{
		e.kickShaper, e.kickOTT,
		e.noiseLowPass, e.noiseHighPass,
		e.convolution, e.reverbLowPass, e.reverbHighPass,
		e.masterOTT, e.masterShaper, e.limiter,
	} {
		p.Prepare(sr)
	}

	configureFilter(e.noiseLowPass, filter.Lowpass, e.params.NoiseLowPassHz)
	configureFilter(e.noiseHighPass, filter.Highpass, e.params.NoiseHighPassHz)
	configureFilter(e.reverbLowPass, filter.Lowpass, e.params.ReverbLowPassHz)
	configureFilter(e.reverbHighPass, filter.Highpass, e.params.ReverbHighPassHz)

	e.recalcSamplesPerBeat()
}

// SampleRate returns the processing sample rate.
func (e *Engine) SampleRate() float64 { return e.sampleRate }

// BlockSize returns the largest block rendered in one pass.
func (e *Engine) BlockSize() int { return e.blockSize }

// Process renders the next len(left) frames into left and right,
// overwriting their contents. Requests longer than the block size are
// rendered in block-size chunks, each advancing the beat clock.
func (e *Engine) Process(left, right []float64) {
	n := min(len(left), len(right))
	for off := 0; off < n; off += e.blockSize {
		end := min(off+e.blockSize, n)
		e.processBlock(left[off:end], right[off:end])
	}
}

func (e *Engine) processBlock(left, right []float64) {
	n := len(left)

	e.advanceClock(n)

	kick := e.kickBuf.Head(n)
	noise := e.noiseBuf.Head(n)
	rev := e.reverbBuf.Head(n)

	e.kick.Render(kick.L, kick.R)
	if e.kickDistortion > 0 {
		e.blendShaper(e.kickShaper, kick.L, kick.R, e.kickDistortion)
	}
	e.kickOTT.Process(kick.L, kick.R)

	e.noise.Render(noise.L, noise.R)
	e.noiseLowPass.Process(noise.L, noise.R)
	e.noiseHighPass.Process(noise.L, noise.R)

	if e.activeIR >= 0 {
		vecmath.AddBlock(rev.L, kick.L, noise.L)
		vecmath.AddBlock(rev.R, kick.R, noise.R)
		e.convolution.Process(rev.L, rev.R)
		e.reverbLowPass.Process(rev.L, rev.R)
		e.reverbHighPass.Process(rev.L, rev.R)
		vecmath.ScaleBlockInPlace(rev.L, e.reverbGain)
		vecmath.ScaleBlockInPlace(rev.R, e.reverbGain)
	} else {
		rev.Zero()
	}

	vecmath.AddBlock(left, kick.L, noise.L)
	vecmath.AddBlock(right, kick.R, noise.R)
	vecmath.AddBlockInPlace(left, rev.L)
	vecmath.AddBlockInPlace(right, rev.R)

	e.masterOTT.Process(left, right)
	if e.masterDistortion > 0 {
		e.blendShaper(e.masterShaper, left, right, e.masterDistortion)
	}

	vecmath.ScaleBlockInPlace(left, e.limiterGain)
	vecmath.ScaleBlockInPlace(right, e.limiterGain)
	e.limiter.Process(left, right)
}

// blendShaper replaces left/right with dry*(1-mix) + shaped*mix.
func (e *Engine) blendShaper(ws *effects.Waveshaper, left, right []float64, mix float64) {
	dry := e.dryBuf.Head(len(left))
	dry.CopyFrom(core.Stereo{L: left, R: right})

	ws.Process(left, right)

	vecmath.ScaleBlockInPlace(left, mix)
	vecmath.ScaleBlockInPlace(right, mix)
	vecmath.ScaleBlockInPlace(dry.L, 1-mix)
	vecmath.ScaleBlockInPlace(dry.R, 1-mix)
	vecmath.AddBlockInPlace(left, dry.L)
	vecmath.AddBlockInPlace(right, dry.R)
}

// advanceClock runs the beat clock for a block of n frames: a kick on every
// beat, and a noise hit every NoiseEveryBeats beats or on the first beat
// after the noise waveform changed.
func (e *Engine) advanceClock(n int) {
	if !e.looping || e.samplesPerBeat <= 0 {
		return
	}

	e.samplesSinceBeat += n
	for e.samplesSinceBeat >= e.samplesPerBeat {
		e.samplesSinceBeat -= e.samplesPerBeat
		e.noiseBeatCount++
		e.beats++
		e.triggerKick()

		if e.pendingNoise {
			e.triggerNoise()
			e.noiseBeatCount = 0
			e.pendingNoise = false
		} else if e.noiseBeatCount%NoiseEveryBeats == 0 {
			e.triggerNoise()
		}
	}
}

func (e *Engine) triggerKick() {
	e.kick.Trigger()
	e.kickTriggers++
}

func (e *Engine) triggerNoise() {
	e.noise.Trigger()
	e.noiseTriggers++
}

func (e *Engine) recalcSamplesPerBeat() {
	if e.bpm > 0 {
		e.samplesPerBeat = int(e.sampleRate * 60 / e.bpm)
	}
}
