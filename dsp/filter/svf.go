package filter

import (
	"math"

	"github.com/cwbudde/algo-kick/dsp/core"
)

// Type selects the SVF output tap.
type Type int

const (
	// Lowpass passes content below the cutoff.
	Lowpass Type = iota
	// Highpass passes content above the cutoff.
	Highpass
)

func (t Type) String() string {
	switch t {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	default:
		return "unknown"
	}
}

const (
	defaultFrequency = 1000.0
	minFrequency     = 10.0
	// Upper cutoff bound as a fraction of the sample rate.
	maxFrequencyRatio = 0.49
)

// SVF is a stereo topology-preserving-transform state-variable filter
// (Zavalishin) with Butterworth damping. Cutoff changes are safe while
// running: the integrator state is kept.
type SVF struct {
	typ        Type
	frequency  float64
	sampleRate float64

	g, k, a1, a2, a3 float64

	ic1, ic2 [2]float64
}

// NewSVF returns a filter of the given type at the default 1 kHz cutoff and
// 44.1 kHz sample rate.
func NewSVF(typ Type) *SVF {
	s := &SVF{
		typ:        typ,
		frequency:  defaultFrequency,
		sampleRate: core.DefaultProcessorConfig().SampleRate,
		k:          math.Sqrt2,
	}
	s.update()

	return s
}

// Prepare sets the sample rate and clears the state.
func (s *SVF) Prepare(sampleRate float64) {
	if sampleRate > 0 && core.IsFinite(sampleRate) {
		s.sampleRate = sampleRate
	}
	s.Reset()
	s.update()
}

// SetType switches the output tap.
func (s *SVF) SetType(typ Type) { s.typ = typ }

// Type returns the output tap.
func (s *SVF) Type() Type { return s.typ }

// SetFrequency sets the cutoff in Hz, clamped to [10, 0.49*sampleRate].
// Non-finite values are ignored.
func (s *SVF) SetFrequency(hz float64) {
	if !core.IsFinite(hz) {
		return
	}
	s.frequency = hz
	s.update()
}

// Frequency returns the effective cutoff in Hz.
func (s *SVF) Frequency() float64 {
	return s.effectiveFrequency()
}

// Reset clears both channels' integrator state.
func (s *SVF) Reset() {
	s.ic1 = [2]float64{}
	s.ic2 = [2]float64{}
}

// Process filters left and right in place.
func (s *SVF) Process(left, right []float64) {
	s.processChannel(0, left)
	s.processChannel(1, right)
}

func (s *SVF) processChannel(ch int, buf []float64) {
	ic1, ic2 := s.ic1[ch], s.ic2[ch]
	a1, a2, a3, k := s.a1, s.a2, s.a3, s.k

	for i, x := range buf {
		v3 := x - ic2
		v1 := a1*ic1 + a2*v3
		v2 := ic2 + a2*ic1 + a3*v3
		ic1 = 2*v1 - ic1
		ic2 = 2*v2 - ic2

		if s.typ == Highpass {
			buf[i] = x - k*v1 - v2
		} else {
			buf[i] = v2
		}
	}

	s.ic1[ch] = core.FlushDenormals(ic1)
	s.ic2[ch] = core.FlushDenormals(ic2)
}

func (s *SVF) effectiveFrequency() float64 {
	return core.Clamp(s.frequency, minFrequency, maxFrequencyRatio*s.sampleRate)
}

func (s *SVF) update() {
	s.g = math.Tan(math.Pi * s.effectiveFrequency() / s.sampleRate)
	s.a1 = 1 / (1 + s.g*(s.g+s.k))
	s.a2 = s.g * s.a1
	s.a3 = s.g * s.a2
}
