package engine

import "github.com/cwbudde/algo-kick/dsp/sampler"

// State is a point-in-time view of the transport and voices.
type State struct {
	BPM              float64
	Looping          bool
	SamplesPerBeat   int
	SamplesSinceBeat int
	NoiseBeatCount   int
	PendingNoise     bool

	// Beats counts beat boundaries crossed by the clock since New.
	Beats int
	// KickTriggers and NoiseTriggers count triggers issued by the clock,
	// SetLooping and Cue.
	KickTriggers  int
	NoiseTriggers int

	KickSample  int
	NoiseSample int
	KickState   sampler.State
	NoiseState  sampler.State

	ActiveIR int
	NumIRs   int
}

// Snapshot returns the current transport and voice state.
func (e *Engine) Snapshot() State {
	return State{
		BPM:              e.bpm,
		Looping:          e.looping,
		SamplesPerBeat:   e.samplesPerBeat,
		SamplesSinceBeat: e.samplesSinceBeat,
		NoiseBeatCount:   e.noiseBeatCount,
		PendingNoise:     e.pendingNoise,
		Beats:            e.beats,
		KickTriggers:     e.kickTriggers,
		NoiseTriggers:    e.noiseTriggers,
		KickSample:       e.kick.Active(),
		NoiseSample:      e.noise.Active(),
		KickState:        e.kick.State(),
		NoiseState:       e.noise.State(),
		ActiveIR:         e.activeIR,
		NumIRs:           len(e.irs),
	}
}
