package dynamics

import (
	"math"

	"github.com/cwbudde/algo-kick/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultLimiterThresholdDB = 0.0
	defaultLimiterReleaseMs   = 10.0

	minLimiterThresholdDB = -24.0
	maxLimiterThresholdDB = 0.0
	minLimiterReleaseMs   = 1.0
	maxLimiterReleaseMs   = 5000.0
)

// Limiter is a stereo-linked brick-wall peak limiter without lookahead.
// The detector takes the larger of |left| and |right|, attacks instantly and
// releases exponentially, so output never exceeds the threshold.
type Limiter struct {
	sampleRate  float64
	thresholdDB float64
	releaseMs   float64

	ceiling      float64
	releaseCoeff float64
	env          float64
	minGain      float64

	gain []float64
}

// NewLimiter returns a limiter with a 0 dB ceiling and 10 ms release.
func NewLimiter() *Limiter {
	l := &Limiter{
		thresholdDB: defaultLimiterThresholdDB,
		releaseMs:   defaultLimiterReleaseMs,
		gain:        make([]float64, gainBlockSize),
		minGain:     1,
	}
	l.Prepare(core.DefaultProcessorConfig().SampleRate)

	return l
}

// Prepare sets the sample rate and clears the detector.
func (l *Limiter) Prepare(sampleRate float64) {
	if sampleRate > 0 && core.IsFinite(sampleRate) {
		l.sampleRate = sampleRate
	}
	l.update()
	l.Reset()
}

// SetThreshold sets the ceiling in dB, clamped to [-24, 0].
func (l *Limiter) SetThreshold(dB float64) {
	if !core.IsFinite(dB) {
		return
	}
	l.thresholdDB = core.Clamp(dB, minLimiterThresholdDB, maxLimiterThresholdDB)
	l.update()
}

// SetRelease sets the release time in ms, clamped to [1, 5000].
func (l *Limiter) SetRelease(ms float64) {
	if !core.IsFinite(ms) {
		return
	}
	l.releaseMs = core.Clamp(ms, minLimiterReleaseMs, maxLimiterReleaseMs)
	l.update()
}

// Threshold returns the ceiling in dB.
func (l *Limiter) Threshold() float64 { return l.thresholdDB }

// Release returns the release time in ms.
func (l *Limiter) Release() float64 { return l.releaseMs }

// Reset clears the detector and the gain-reduction meter.
func (l *Limiter) Reset() {
	l.env = 0
	l.minGain = 1
}

// GainReductionDB returns the deepest reduction since the last call, as a
// non-positive dB value, and rearms the meter.
func (l *Limiter) GainReductionDB() float64 {
	g := l.minGain
	l.minGain = 1
	return 20 * math.Log10(g)
}

// Process limits left and right in place with a shared gain.
func (l *Limiter) Process(left, right []float64) {
	n := min(len(left), len(right))
	for start := 0; start < n; start += gainBlockSize {
		end := min(start+gainBlockSize, n)
		g := l.gain[:end-start]
		l.computeGains(g, left[start:end], right[start:end])
		vecmath.MulBlockInPlace(left[start:end], g)
		vecmath.MulBlockInPlace(right[start:end], g)
	}
}

func (l *Limiter) computeGains(dst, left, right []float64) {
	env := l.env
	minGain := l.minGain

	for i := range dst {
		peak := math.Max(math.Abs(left[i]), math.Abs(right[i]))
		if peak > env {
			env = peak
		} else {
			env = l.releaseCoeff*env + (1-l.releaseCoeff)*peak
		}

		g := 1.0
		if env > l.ceiling {
			g = l.ceiling / env
		}
		dst[i] = g
		minGain = math.Min(minGain, g)
	}

	l.env = core.FlushDenormals(env)
	l.minGain = minGain
}

func (l *Limiter) update() {
	l.ceiling = core.DBToLinear(l.thresholdDB)
	l.releaseCoeff = timeCoeff(l.releaseMs, l.sampleRate)
}
