package dynamics

import (
	"math"

	"github.com/cwbudde/algo-kick/dsp/core"
	"github.com/cwbudde/algo-kick/dsp/filter/crossover"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultLowCrossoverHz splits the low band from the rest.
	DefaultLowCrossoverHz = 120.0
	// DefaultHighCrossoverHz splits the mid band from the high band.
	DefaultHighCrossoverHz = 2500.0

	// MakeupGainDB is the overall makeup gain at amount 1.
	MakeupGainDB = 18.0

	defaultOTTBlockSize = 128
)

// OTTParams configures an [OTT] processor.
type OTTParams struct {
	// RatioMultiplier sets the downward ratio at amount a to 1 + RatioMultiplier*a.
	RatioMultiplier float64
	// Per-band makeup gain in dB at amount 1; scaled linearly by amount.
	LowGainDB, MidGainDB, HighGainDB float64

	// LowCrossoverHz and HighCrossoverHz default to 120 Hz and 2.5 kHz.
	LowCrossoverHz, HighCrossoverHz float64
	// MaxBlockSize sizes the band scratch buffers; longer calls are chunked.
	MaxBlockSize int
}

// KickOTTParams returns the tuning used on the kick bus.
func KickOTTParams() OTTParams {
	return OTTParams{RatioMultiplier: 10, LowGainDB: 9, MidGainDB: -3, HighGainDB: 0}
}

// MasterOTTParams returns the gentler tuning used on the master bus.
func MasterOTTParams() OTTParams {
	return OTTParams{RatioMultiplier: 8, LowGainDB: 3, MidGainDB: -3, HighGainDB: 0}
}

// LowBandParams returns the low band compressor settings for ratioMul.
func LowBandParams(ratioMul float64) BandParams {
	return BandParams{AttackMs: 47.8, ReleaseMs: 282, DownThresholdDB: -20, DownRatio: ratioMul, UpThresholdDB: -40, UpRatio: DefaultUpRatio}
}

// MidBandParams returns the mid band compressor settings for ratioMul.
func MidBandParams(ratioMul float64) BandParams {
	return BandParams{AttackMs: 22.4, ReleaseMs: 282, DownThresholdDB: -22, DownRatio: ratioMul, UpThresholdDB: -42, UpRatio: DefaultUpRatio}
}

// HighBandParams returns the high band compressor settings for ratioMul.
func HighBandParams(ratioMul float64) BandParams {
	return BandParams{AttackMs: 13.5, ReleaseMs: 132, DownThresholdDB: -24, DownRatio: ratioMul, UpThresholdDB: -44, UpRatio: DefaultUpRatio}
}

// OTT is a three-band upward/downward dynamics processor. The input is split
// by two cascaded LR4 crossovers into low, mid and high bands; each band is
// compressed, given its makeup gain, and the bands are summed with an
// overall makeup gain. Everything scales with a single amount knob, and
// amount 0 is an exact passthrough.
type OTT struct {
	params     OTTParams
	sampleRate float64
	amount     float64

	lowXO, highXO  *crossover.Stereo
	low, mid, high *BandCompressor

	lowGain, midGain, highGain float64

	lowL, lowR   []float64
	midL, midR   []float64
	highL, highR []float64
}

// NewOTT builds a processor prepared for the default sample rate.
func NewOTT(p OTTParams) *OTT {
	if p.LowCrossoverHz <= 0 {
		p.LowCrossoverHz = DefaultLowCrossoverHz
	}
	if p.HighCrossoverHz <= p.LowCrossoverHz {
		p.HighCrossoverHz = math.Max(DefaultHighCrossoverHz, 2*p.LowCrossoverHz)
	}
	if p.MaxBlockSize <= 0 {
		p.MaxBlockSize = defaultOTTBlockSize
	}
	p.RatioMultiplier = math.Max(p.RatioMultiplier, 0)

	n := p.MaxBlockSize
	o := &OTT{
		params: p,
		low:    NewBandCompressor(LowBandParams(p.RatioMultiplier)),
		mid:    NewBandCompressor(MidBandParams(p.RatioMultiplier)),
		high:   NewBandCompressor(HighBandParams(p.RatioMultiplier)),
		lowL:   make([]float64, n),
		lowR:   make([]float64, n),
		midL:   make([]float64, n),
		midR:   make([]float64, n),
		highL:  make([]float64, n),
		highR:  make([]float64, n),
	}
	o.Prepare(core.DefaultProcessorConfig().SampleRate)
	o.updateGains()

	return o
}

// Params returns the effective parameters.
func (o *OTT) Params() OTTParams { return o.params }

// Prepare rebuilds the crossovers for sampleRate and resets all state.
// Crossover frequencies at or above Nyquist leave the previous crossovers in
// place.
func (o *OTT) Prepare(sampleRate float64) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		sampleRate = o.sampleRate
	}

	lowXO, errLow := crossover.NewStereo(o.params.LowCrossoverHz, sampleRate)
	highXO, errHigh := crossover.NewStereo(o.params.HighCrossoverHz, sampleRate)
	if errLow == nil && errHigh == nil {
		o.lowXO, o.highXO = lowXO, highXO
		o.sampleRate = sampleRate
	}

	o.low.Prepare(o.sampleRate)
	o.mid.Prepare(o.sampleRate)
	o.high.Prepare(o.sampleRate)
	o.Reset()
}

// Reset clears crossover and envelope state.
func (o *OTT) Reset() {
	if o.lowXO != nil {
		o.lowXO.Reset()
		o.highXO.Reset()
	}
	o.low.Reset()
	o.mid.Reset()
	o.high.Reset()
}

// SetAmount sets the depth, clamped to [0,1]. Leaving 0 resets the band
// state so no stale filter memory is heard.
func (o *OTT) SetAmount(v float64) {
	if !core.IsFinite(v) {
		return
	}
	v = core.Clamp(v, 0, 1)
	if o.amount == 0 && v > 0 {
		o.Reset()
	}
	o.amount = v
	o.updateGains()
}

// Amount returns the current depth.
func (o *OTT) Amount() float64 { return o.amount }

// Process runs the three-band chain over left and right in place.
func (o *OTT) Process(left, right []float64) {
	if o.amount == 0 || o.lowXO == nil {
		return
	}

	n := min(len(left), len(right))
	for start := 0; start < n; start += o.params.MaxBlockSize {
		end := min(start+o.params.MaxBlockSize, n)
		o.processChunk(left[start:end], right[start:end])
	}
}

func (o *OTT) processChunk(left, right []float64) {
	n := len(left)
	lowL, lowR := o.lowL[:n], o.lowR[:n]
	midL, midR := o.midL[:n], o.midR[:n]
	highL, highR := o.highL[:n], o.highR[:n]

	// mid buffers first hold everything above the low crossover.
	o.lowXO.Split(left, right, lowL, lowR, midL, midR)
	o.highXO.Split(midL, midR, midL, midR, highL, highR)

	o.low.Process(lowL, lowR, o.amount)
	o.mid.Process(midL, midR, o.amount)
	o.high.Process(highL, highR, o.amount)

	for _, b := range [...]struct {
		l, r []float64
		g    float64
	}{{lowL, lowR, o.lowGain}, {midL, midR, o.midGain}, {highL, highR, o.highGain}} {
		vecmath.ScaleBlockInPlace(b.l, b.g)
		vecmath.ScaleBlockInPlace(b.r, b.g)
	}
	vecmath.AddBlock(left, lowL, midL)
	vecmath.AddBlock(right, lowR, midR)
	vecmath.AddBlockInPlace(left, highL)
	vecmath.AddBlockInPlace(right, highR)
}

// updateGains folds per-band and overall makeup into one factor per band.
func (o *OTT) updateGains() {
	overall := core.DBToLinear(o.amount * MakeupGainDB)
	o.lowGain = overall * core.DBToLinear(o.amount*o.params.LowGainDB)
	o.midGain = overall * core.DBToLinear(o.amount*o.params.MidGainDB)
	o.highGain = overall * core.DBToLinear(o.amount*o.params.HighGainDB)
}
