package main

import (
	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-kick/engine"
)

// Globals are shared by every subcommand.
type Globals struct {
	Version    kong.VersionFlag `help:"Print version and exit."`
	Verbose    bool             `short:"v" help:"Log at debug level."`
	Preset     kong.ConfigFlag  `short:"p" help:"JSON preset; keys are knob flag names with underscores (see 'kickgen info')."`
	SampleRate int              `default:"44100" help:"Processing sample rate in Hz. Input files must match."`
	BlockSize  int              `default:"128" help:"Render block size in frames."`
}

// Material selects the audio files to load.
type Material struct {
	Kick  []string `short:"k" type:"existingfile" help:"Kick sample WAV file (repeatable)."`
	Noise []string `short:"n" type:"existingfile" help:"Noise sample WAV file (repeatable)."`
	IR    []string `name:"ir-file" type:"existingfile" help:"Impulse response WAV file (repeatable)."`
	IRLib string   `name:"irlib" type:"existingfile" help:"IRLB impulse response library."`
}

// Knobs mirror engine.Params. Flag names map to the preset's JSON keys.
type Knobs struct {
	BPM float64 `name:"bpm" default:"140" help:"Tempo in beats per minute."`

	KickSample     int     `name:"kick-sample" default:"0" help:"Active kick sample index."`
	KickLength     float64 `name:"kick-length" default:"1" help:"Kick length ratio (0.1-1)."`
	KickDistortion float64 `name:"kick-distortion" default:"0" help:"Kick waveshaper mix (0-1)."`
	KickOTT        float64 `name:"kick-ott" default:"0" help:"Kick multiband dynamics amount (0-1)."`

	NoiseSample     int     `name:"noise-sample" default:"0" help:"Active noise sample index."`
	NoiseVolumeDB   float64 `name:"noise-volume-db" default:"0" help:"Noise level in dB."`
	NoiseLowPassHz  float64 `name:"noise-lowpass-hz" default:"7000" help:"Noise lowpass cutoff in Hz."`
	NoiseHighPassHz float64 `name:"noise-highpass-hz" default:"30" help:"Noise highpass cutoff in Hz."`

	IR               int     `name:"ir" default:"-1" help:"Active impulse response index, -1 for none."`
	ReverbLowPassHz  float64 `name:"reverb-lowpass-hz" default:"7000" help:"Reverb lowpass cutoff in Hz."`
	ReverbHighPassHz float64 `name:"reverb-highpass-hz" default:"30" help:"Reverb highpass cutoff in Hz."`
	ReverbVolumeDB   float64 `name:"reverb-volume-db" default:"0" help:"Reverb return level in dB."`

	MasterOTT        float64 `name:"master-ott" default:"0" help:"Master multiband dynamics amount (0-1)."`
	MasterDistortion float64 `name:"master-distortion" default:"0" help:"Master waveshaper mix (0-1)."`
	MasterLimiter    float64 `name:"master-limiter" default:"1" help:"Gain into the limiter (1-8)."`
}

// Params converts the flags to engine parameters.
func (k Knobs) Params() engine.Params {
	return engine.Params{
		BPM:              k.BPM,
		KickSample:       k.KickSample,
		KickLength:       k.KickLength,
		KickDistortion:   k.KickDistortion,
		KickOTT:          k.KickOTT,
		NoiseSample:      k.NoiseSample,
		NoiseVolumeDB:    k.NoiseVolumeDB,
		NoiseLowPassHz:   k.NoiseLowPassHz,
		NoiseHighPassHz:  k.NoiseHighPassHz,
		IR:               k.IR,
		ReverbLowPassHz:  k.ReverbLowPassHz,
		ReverbHighPassHz: k.ReverbHighPassHz,
		ReverbVolumeDB:   k.ReverbVolumeDB,
		MasterOTT:        k.MasterOTT,
		MasterDistortion: k.MasterDistortion,
		MasterLimiter:    k.MasterLimiter,
	}
}
