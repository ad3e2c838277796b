package engine

import (
	"github.com/cwbudde/algo-kick/dsp/effects"
	"github.com/cwbudde/algo-kick/dsp/effects/dynamics"
	"github.com/cwbudde/algo-kick/dsp/effects/reverb"
	"github.com/cwbudde/algo-kick/dsp/filter"
)

// StereoProcessor is an in-place stereo block processor.
type StereoProcessor interface {
	Prepare(sampleRate float64)
	Process(left, right []float64)
}

// FilterStage is a single-band filter with a switchable response.
type FilterStage interface {
	StereoProcessor
	SetType(typ filter.Type)
	SetFrequency(hz float64)
}

// ReverbStage is a stereo convolution processor.
type ReverbStage interface {
	StereoProcessor
	SetMix(dry, wet float64)
	LoadImpulseResponse(samples []float64, lengthPerChannel, numChannels int) error
}

var (
	_ FilterStage     = (*filter.SVF)(nil)
	_ ReverbStage     = (*reverb.StereoConvolution)(nil)
	_ StereoProcessor = (*effects.Waveshaper)(nil)
	_ StereoProcessor = (*dynamics.Limiter)(nil)
	_ StereoProcessor = (*dynamics.OTT)(nil)
)

// configureFilter sets the response and cutoff of one filter slot.
func configureFilter(f FilterStage, typ filter.Type, hz float64) {
	f.SetType(typ)
	f.SetFrequency(hz)
}
