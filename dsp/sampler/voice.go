package sampler

import (
	"math"

	"github.com/cwbudde/algo-kick/dsp/core"
)

// FadeOutSamples is the length of the linear fade applied before the
// effective end of a non-looping waveform.
const FadeOutSamples = 256

const (
	minLengthRatio = 0.1
	maxLengthRatio = 1.0
)

// State is the playback state of a [Voice].
type State int

const (
	// Idle produces silence.
	Idle State = iota
	// Playing reads the active waveform.
	Playing
	// Releasing reads the active waveform under a decaying envelope.
	Releasing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Releasing:
		return "releasing"
	default:
		return "unknown"
	}
}

// Voice plays one of a set of loaded mono waveforms.
//
// The zero value is not usable; create voices with [NewVoice]. A Voice is not
// safe for concurrent use.
type Voice struct {
	waveforms [][]float64
	active    int

	state        State
	position     int
	envelope     float64
	envelopeStep float64

	volume         float64
	looping        bool
	lengthRatio    float64
	releaseSeconds float64
	sampleRate     float64
}

// NewVoice returns an idle voice with unity volume, full length, no release
// and the default sample rate. The first loaded waveform becomes active.
func NewVoice() *Voice {
	return &Voice{
		envelope:    1,
		volume:      1,
		lengthRatio: maxLengthRatio,
		sampleRate:  core.DefaultProcessorConfig().SampleRate,
	}
}

// Load copies samples into the voice and returns the waveform's index.
// Indices are assigned in load order and never change.
func (v *Voice) Load(samples []float64) int {
	v.waveforms = append(v.waveforms, append([]float64(nil), samples...))
	return len(v.waveforms) - 1
}

// Len returns the number of loaded waveforms.
func (v *Voice) Len() int { return len(v.waveforms) }

// Active returns the active waveform index, or -1 when none is loaded.
func (v *Voice) Active() int {
	if v.active >= len(v.waveforms) {
		return -1
	}
	return v.active
}

// Select makes waveform index active and returns the voice to Idle at
// position 0 with a full envelope. Out-of-range indices are ignored.
func (v *Voice) Select(index int) {
	if index < 0 || index >= len(v.waveforms) {
		return
	}

	v.active = index
	v.position = 0
	v.state = Idle
	v.envelope = 1
}

// Trigger restarts the active waveform from the beginning at full envelope.
// A voice triggered before any waveform is loaded renders silence until one
// arrives, then plays it from the start.
func (v *Voice) Trigger() {
	v.position = 0
	v.state = Playing
	v.envelope = 1
}

// Stop starts the release. It is a no-op unless the voice is Playing. With a
// zero release time the voice goes Idle at once.
func (v *Voice) Stop() {
	if v.state != Playing {
		return
	}

	if v.releaseSeconds <= 0 {
		v.state = Idle
		return
	}

	v.state = Releasing
	v.envelopeStep = 1 / (v.releaseSeconds * v.sampleRate)
}

// Render writes the voice output to left and right.
func (v *Voice) Render(left, right []float64) {
	n := min(len(left), len(right))
	if v.Active() < 0 {
		clear(left[:n])
		clear(right[:n])
		return
	}

	wave := v.waveforms[v.active]
	end := int(math.Floor(float64(len(wave)) * v.lengthRatio))
	fadeStart := max(end-FadeOutSamples, 0)

	for i := range n {
		out := 0.0

		if v.state != Idle && v.position >= end {
			if v.looping {
				v.position = 0
			} else {
				v.state = Idle
			}
		}

		if v.state != Idle && v.position < end {
			out = wave[v.position] * v.volume

			if !v.looping && v.position >= fadeStart {
				out *= 1 - float64(v.position-fadeStart)/FadeOutSamples
			}

			if v.state == Releasing {
				out *= v.envelope
				v.envelope -= v.envelopeStep
				if v.envelope <= 0 {
					v.envelope = 0
					v.state = Idle
				}
			}

			v.position++
		}

		left[i] = out
		right[i] = out
	}
}

// SetRelease sets the release time in seconds, clamped to >= 0.
func (v *Voice) SetRelease(seconds float64) {
	if math.IsNaN(seconds) {
		return
	}
	v.releaseSeconds = math.Max(seconds, 0)
}

// SetVolume sets the linear output gain, clamped to >= 0.
func (v *Voice) SetVolume(linear float64) {
	if math.IsNaN(linear) {
		return
	}
	v.volume = math.Max(linear, 0)
}

// SetSampleRate sets the rate used to convert the release time to samples.
// Non-positive rates are ignored.
func (v *Voice) SetSampleRate(hz float64) {
	if hz > 0 && core.IsFinite(hz) {
		v.sampleRate = hz
	}
}

// SetLooping enables or disables wrap-around at the effective end. Looping
// also suppresses the tail fade.
func (v *Voice) SetLooping(loop bool) { v.looping = loop }

// SetLengthRatio truncates the playable length to a fraction of the
// waveform, clamped to [0.1, 1].
func (v *Voice) SetLengthRatio(r float64) {
	if math.IsNaN(r) {
		return
	}
	v.lengthRatio = core.Clamp(r, minLengthRatio, maxLengthRatio)
}

// State returns the playback state.
func (v *Voice) State() State { return v.state }

// Playing reports whether the voice produces output (Playing or Releasing).
func (v *Voice) Playing() bool { return v.state != Idle }

// Position returns the playback cursor in samples.
func (v *Voice) Position() int { return v.position }

// Envelope returns the release envelope level in [0,1].
func (v *Voice) Envelope() float64 { return v.envelope }

// Looping reports whether looping is enabled.
func (v *Voice) Looping() bool { return v.looping }

// Volume returns the linear output gain.
func (v *Voice) Volume() float64 { return v.volume }

// LengthRatio returns the playable length fraction.
func (v *Voice) LengthRatio() float64 { return v.lengthRatio }

// Release returns the release time in seconds.
func (v *Voice) Release() float64 { return v.releaseSeconds }
