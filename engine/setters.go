package engine

import (
	"math"

	"github.com/cwbudde/algo-kick/dsp/core"
)

// LoadKickSample copies samples into the kick voice and returns its index.
func (e *Engine) LoadKickSample(samples []float64) int {
	return e.kick.Load(samples)
}

// SelectKickSample activates a loaded kick waveform. Invalid indices are
// ignored.
func (e *Engine) SelectKickSample(index int) {
	e.kick.Select(index)
}

// SetKickLength truncates kick playback to a fraction of the waveform,
// clamped to [0.1, 1].
func (e *Engine) SetKickLength(ratio float64) {
	e.kick.SetLengthRatio(ratio)
	e.params.KickLength = e.kick.LengthRatio()
}

// SetKickDistortion sets the kick waveshaper mix in [0,1].
func (e *Engine) SetKickDistortion(mix float64) {
	e.kickDistortion = clampMix(mix, e.kickDistortion)
	e.params.KickDistortion = e.kickDistortion
}

// SetKickOTT sets the kick bus multiband dynamics amount in [0,1].
func (e *Engine) SetKickOTT(amount float64) {
	e.kickOTT.SetAmount(amount)
	e.params.KickOTT = e.kickOTT.Amount()
}

// LoadNoiseSample copies samples into the noise voice and returns its index.
func (e *Engine) LoadNoiseSample(samples []float64) int {
	return e.noise.Load(samples)
}

// SelectNoiseSample activates a loaded noise waveform. While the transport
// loops, the new waveform is triggered on the next beat and the noise
// pattern restarts from there.
func (e *Engine) SelectNoiseSample(index int) {
	e.noise.Select(index)
	if e.looping {
		e.pendingNoise = true
	}
}

// SetNoiseVolume sets the noise voice level in dB.
func (e *Engine) SetNoiseVolume(db float64) {
	if math.IsNaN(db) {
		return
	}
	e.noise.SetVolume(core.DBToLinear(db))
	e.params.NoiseVolumeDB = db
}

// SetNoiseLowPass sets the noise lowpass cutoff in Hz.
func (e *Engine) SetNoiseLowPass(hz float64) {
	if !core.IsFinite(hz) {
		return
	}
	e.noiseLowPass.SetFrequency(hz)
	e.params.NoiseLowPassHz = hz
}

// SetNoiseHighPass sets the noise highpass cutoff in Hz.
func (e *Engine) SetNoiseHighPass(hz float64) {
	if !core.IsFinite(hz) {
		return
	}
	e.noiseHighPass.SetFrequency(hz)
	e.params.NoiseHighPassHz = hz
}

// LoadIR stores a copy of a planar impulse response (channel 0 first, then
// channel 1, each lengthPerChannel long) and returns its index. It does not
// change the active selection. An inconsistent layout stores nothing and
// returns -1.
func (e *Engine) LoadIR(samples []float64, lengthPerChannel, numChannels int) int {
	if lengthPerChannel <= 0 || numChannels <= 0 || len(samples) < lengthPerChannel*numChannels {
		return -1
	}

	e.irs = append(e.irs, impulseResponse{
		samples:          append([]float64(nil), samples[:lengthPerChannel*numChannels]...),
		lengthPerChannel: lengthPerChannel,
		numChannels:      numChannels,
	})
	return len(e.irs) - 1
}

// NumIRs returns the number of stored impulse responses.
func (e *Engine) NumIRs() int { return len(e.irs) }

// SelectIR routes the reverb send through impulse response index, or
// bypasses the reverb for -1. Selecting the active index or an unknown one
// does nothing. If the convolution engine rejects the response the previous
// selection stays active.
func (e *Engine) SelectIR(index int) {
	if index == e.activeIR || index < -1 || index >= len(e.irs) {
		return
	}

	if index == -1 {
		e.activeIR = -1
		e.params.IR = -1
		return
	}

	ir := e.irs[index]
	if err := e.convolution.LoadImpulseResponse(ir.samples, ir.lengthPerChannel, ir.numChannels); err != nil {
		return
	}
	e.activeIR = index
	e.params.IR = index
}

// SetReverbLowPass sets the reverb return lowpass cutoff in Hz.
func (e *Engine) SetReverbLowPass(hz float64) {
	if !core.IsFinite(hz) {
		return
	}
	e.reverbLowPass.SetFrequency(hz)
	e.params.ReverbLowPassHz = hz
}

// SetReverbHighPass sets the reverb return highpass cutoff in Hz.
func (e *Engine) SetReverbHighPass(hz float64) {
	if !core.IsFinite(hz) {
		return
	}
	e.reverbHighPass.SetFrequency(hz)
	e.params.ReverbHighPassHz = hz
}

// SetReverbVolume sets the reverb return level in dB.
func (e *Engine) SetReverbVolume(db float64) {
	if math.IsNaN(db) {
		return
	}
	e.reverbGain = core.DBToLinear(db)
	e.params.ReverbVolumeDB = db
}

// SetMasterOTT sets the master bus multiband dynamics amount in [0,1].
func (e *Engine) SetMasterOTT(amount float64) {
	e.masterOTT.SetAmount(amount)
	e.params.MasterOTT = e.masterOTT.Amount()
}

// SetMasterDistortion sets the master waveshaper mix in [0,1].
func (e *Engine) SetMasterDistortion(mix float64) {
	e.masterDistortion = clampMix(mix, e.masterDistortion)
	e.params.MasterDistortion = e.masterDistortion
}

// SetMasterLimiter sets the linear gain into the limiter, clamped to [1,8].
func (e *Engine) SetMasterLimiter(gain float64) {
	if math.IsNaN(gain) {
		return
	}
	e.limiterGain = core.Clamp(gain, minLimiterGain, maxLimiterGain)
	e.params.MasterLimiter = e.limiterGain
}

// SetBPM sets the tempo. Non-positive values are ignored.
func (e *Engine) SetBPM(bpm float64) {
	if bpm <= 0 || !core.IsFinite(bpm) {
		return
	}
	e.bpm = bpm
	e.params.BPM = bpm
	e.recalcSamplesPerBeat()
}

// SetLooping starts or stops the beat clock. Starting restarts the beat
// count and triggers both voices at once. Stopping releases the noise voice
// and lets the kick ring out.
func (e *Engine) SetLooping(enabled bool) {
	e.looping = enabled
	if enabled {
		e.samplesSinceBeat = 0
		e.noiseBeatCount = 0
		e.triggerKick()
		e.triggerNoise()
		return
	}
	e.noise.Stop()
}

// Cue triggers both voices for a manual one-shot, with noise looping off
// until CueRelease.
func (e *Engine) Cue() {
	e.noise.SetLooping(false)
	e.triggerNoise()
	e.triggerKick()
}

// CueRelease releases the noise voice and restores noise looping.
func (e *Engine) CueRelease() {
	e.noise.Stop()
	e.noise.SetLooping(true)
}

func clampMix(v, prev float64) float64 {
	if math.IsNaN(v) {
		return prev
	}
	return core.Clamp(v, 0, 1)
}
