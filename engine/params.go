package engine

// Params holds every knob of an Engine. The JSON form is the preset format
// shared by the command-line host and the wasm binding.
type Params struct {
	BPM float64 `json:"bpm"`

	KickSample     int     `json:"kick_sample"`
	KickLength     float64 `json:"kick_length"`
	KickDistortion float64 `json:"kick_distortion"`
	KickOTT        float64 `json:"kick_ott"`

	NoiseSample     int     `json:"noise_sample"`
	NoiseVolumeDB   float64 `json:"noise_volume_db"`
	NoiseLowPassHz  float64 `json:"noise_lowpass_hz"`
	NoiseHighPassHz float64 `json:"noise_highpass_hz"`

	IR               int     `json:"ir"`
	ReverbLowPassHz  float64 `json:"reverb_lowpass_hz"`
	ReverbHighPassHz float64 `json:"reverb_highpass_hz"`
	ReverbVolumeDB   float64 `json:"reverb_volume_db"`

	MasterOTT        float64 `json:"master_ott"`
	MasterDistortion float64 `json:"master_distortion"`
	MasterLimiter    float64 `json:"master_limiter"`
}

// DefaultParams returns the knob values of a new engine.
func DefaultParams() Params {
	return Params{
		BPM:              DefaultBPM,
		KickLength:       1,
		NoiseLowPassHz:   defaultLowPassHz,
		NoiseHighPassHz:  defaultHighPassHz,
		IR:               -1,
		ReverbLowPassHz:  defaultLowPassHz,
		ReverbHighPassHz: defaultHighPassHz,
		MasterLimiter:    1,
	}
}

// Params returns the current knob values, as clamped by the setters.
func (e *Engine) Params() Params {
	p := e.params
	p.KickSample = max(e.kick.Active(), 0)
	p.NoiseSample = max(e.noise.Active(), 0)
	return p
}

// ApplyParams runs every setter with the values in p. Sample and impulse
// response selections only change when they differ from the active ones,
// so applying the current Params is a no-op for playback.
func (e *Engine) ApplyParams(p Params) {
	e.SetBPM(p.BPM)

	if p.KickSample != e.kick.Active() {
		e.SelectKickSample(p.KickSample)
	}
	e.SetKickLength(p.KickLength)
	e.SetKickDistortion(p.KickDistortion)
	e.SetKickOTT(p.KickOTT)

	if p.NoiseSample != e.noise.Active() {
		e.SelectNoiseSample(p.NoiseSample)
	}
	e.SetNoiseVolume(p.NoiseVolumeDB)
	e.SetNoiseLowPass(p.NoiseLowPassHz)
	e.SetNoiseHighPass(p.NoiseHighPassHz)

	e.SelectIR(p.IR)
	e.SetReverbLowPass(p.ReverbLowPassHz)
	e.SetReverbHighPass(p.ReverbHighPassHz)
	e.SetReverbVolume(p.ReverbVolumeDB)

	e.SetMasterOTT(p.MasterOTT)
	e.SetMasterDistortion(p.MasterDistortion)
	e.SetMasterLimiter(p.MasterLimiter)
}
