package dynamics

import (
	"math"

	"github.com/cwbudde/algo-kick/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// log2Of10Div20 converts dB to log2: log2(10) / 20.
	log2Of10Div20 = 0.166096404744

	// MaxUpwardGainDB caps the boost applied below the upward threshold.
	MaxUpwardGainDB = 24.0
	// SilenceFloorDB is the envelope level below which no upward gain is
	// applied, so silence and denormal tails are never amplified.
	SilenceFloorDB = -90.0

	// DefaultKneeDB is the soft-knee width used when BandParams.KneeDB is 0.
	DefaultKneeDB = 6.0

	// DefaultUpRatio is the upward ratio multiplier used by the OTT bands.
	DefaultUpRatio = 3.0

	gainBlockSize = 128
)

// BandParams configures one [BandCompressor].
//
// DownRatio and UpRatio are multipliers: at amount a the effective ratios
// are 1 + DownRatio*a and 1 + UpRatio*a, so amount 0 is always 1:1.
type BandParams struct {
	AttackMs        float64
	ReleaseMs       float64
	DownThresholdDB float64
	DownRatio       float64
	UpThresholdDB   float64
	UpRatio         float64
	KneeDB          float64
}

// BandCompressor is a stereo upward/downward compressor with independent
// per-channel peak envelopes. Above the down threshold it reduces gain,
// below the up threshold it raises gain, both through a quadratic soft knee
// evaluated in the dB domain.
type BandCompressor struct {
	params BandParams

	sampleRate   float64
	attackCoeff  float64
	releaseCoeff float64

	envL, envR float64

	gainL, gainR []float64
}

// NewBandCompressor returns a compressor prepared for the default sample
// rate. Negative times and multipliers are clamped to 0; a zero knee selects
// [DefaultKneeDB].
func NewBandCompressor(p BandParams) *BandCompressor {
	p.AttackMs = math.Max(p.AttackMs, 0)
	p.ReleaseMs = math.Max(p.ReleaseMs, 0)
	p.DownRatio = math.Max(p.DownRatio, 0)
	p.UpRatio = math.Max(p.UpRatio, 0)
	if p.KneeDB <= 0 {
		p.KneeDB = DefaultKneeDB
	}

	c := &BandCompressor{
		params: p,
		gainL:  make([]float64, gainBlockSize),
		gainR:  make([]float64, gainBlockSize),
	}
	c.Prepare(core.DefaultProcessorConfig().SampleRate)

	return c
}

// Params returns the effective parameters.
func (c *BandCompressor) Params() BandParams { return c.params }

// Prepare derives the envelope coefficients for sampleRate and clears the
// envelopes.
func (c *BandCompressor) Prepare(sampleRate float64) {
	if sampleRate > 0 && core.IsFinite(sampleRate) {
		c.sampleRate = sampleRate
	}
	c.attackCoeff = timeCoeff(c.params.AttackMs, c.sampleRate)
	c.releaseCoeff = timeCoeff(c.params.ReleaseMs, c.sampleRate)
	c.Reset()
}

// Reset clears both envelopes.
func (c *BandCompressor) Reset() {
	c.envL = 0
	c.envR = 0
}

// Envelope returns the current left and right envelope levels.
func (c *BandCompressor) Envelope() (l, r float64) {
	return c.envL, c.envR
}

// Process compresses left and right in place. amount in [0,1] scales both
// ratios; 0 leaves the signal untouched while still tracking the envelopes.
func (c *BandCompressor) Process(left, right []float64, amount float64) {
	amount = core.Clamp(amount, 0, 1)
	downSlope := 1 - 1/(1+c.params.DownRatio*amount)
	upSlope := 1 - 1/(1+c.params.UpRatio*amount)

	for start := 0; start < len(left); start += gainBlockSize {
		end := min(start+gainBlockSize, len(left))
		l := left[start:end]
		r := right[start:end]
		gl := c.gainL[:len(l)]
		gr := c.gainR[:len(r)]

		c.envL = c.computeGains(gl, l, c.envL, downSlope, upSlope)
		c.envR = c.computeGains(gr, r, c.envR, downSlope, upSlope)

		if downSlope == 0 && upSlope == 0 {
			continue
		}

		vecmath.MulBlockInPlace(l, gl)
		vecmath.MulBlockInPlace(r, gr)
	}
}

// computeGains advances env over src and writes the per-sample gain to dst.
func (c *BandCompressor) computeGains(dst, src []float64, env, downSlope, upSlope float64) float64 {
	for i, x := range src {
		level := math.Abs(x)
		coeff := c.releaseCoeff
		if level > env {
			coeff = c.attackCoeff
		}
		env = coeff*env + (1-coeff)*level

		dst[i] = c.gainFor(env, downSlope, upSlope)
	}

	return core.FlushDenormals(env)
}

// gainFor returns the linear gain for an envelope level.
func (c *BandCompressor) gainFor(env, downSlope, upSlope float64) float64 {
	if env <= 0 || (downSlope == 0 && upSlope == 0) {
		return 1
	}

	levelDB := mathLog2(env) / log2Of10Div20
	gainDB := -downSlope * kneeCurve(levelDB-c.params.DownThresholdDB, c.params.KneeDB)

	if levelDB > SilenceFloorDB {
		up := upSlope * kneeCurve(c.params.UpThresholdDB-levelDB, c.params.KneeDB)
		gainDB += math.Min(up, MaxUpwardGainDB)
	}

	if gainDB == 0 {
		return 1
	}

	return mathPower2(gainDB * log2Of10Div20)
}

// StaticGainDB returns the steady-state gain in dB the compressor applies to
// a constant envelope level at the given amount. Used for curve display.
func (c *BandCompressor) StaticGainDB(levelDB, amount float64) float64 {
	amount = core.Clamp(amount, 0, 1)
	downSlope := 1 - 1/(1+c.params.DownRatio*amount)
	upSlope := 1 - 1/(1+c.params.UpRatio*amount)

	g := c.gainFor(mathPower2(levelDB*log2Of10Div20), downSlope, upSlope)

	return 20 * math.Log10(g)
}

// kneeCurve maps an overshoot in dB (positive past the threshold) to the
// effective overshoot after quadratic knee smoothing of width w.
func kneeCurve(over, w float64) float64 {
	half := w / 2
	switch {
	case over <= -half:
		return 0
	case over >= half:
		return over
	default:
		s := over + half
		return s * s / (2 * w)
	}
}

// timeCoeff returns the one-pole smoothing coefficient for a time constant
// in milliseconds. Zero time means an instantaneous follower.
func timeCoeff(ms, sampleRate float64) float64 {
	if ms <= 0 || sampleRate <= 0 {
		return 0
	}
	return math.Exp(-1 / (ms * 0.001 * sampleRate))
}
