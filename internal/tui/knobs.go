package tui

import (
	"fmt"

	"github.com/cwbudde/algo-kick/dsp/core"
	"github.com/cwbudde/algo-kick/engine"
)

// knob is one adjustable engine parameter.
type knob struct {
	name     string
	unit     string
	step     float64
	min, max float64
	field    func(p *engine.Params) *float64
}

func (k knob) format(v float64) string {
	switch k.unit {
	case "Hz":
		if v >= 1000 {
			return fmt.Sprintf("%.1f kHz", v/1000)
		}
		return fmt.Sprintf("%.0f Hz", v)
	case "dB":
		return fmt.Sprintf("%+.1f dB", v)
	case "x":
		return fmt.Sprintf("%.2fx", v)
	default:
		return fmt.Sprintf("%.0f%%", v*100)
	}
}

// nudge moves the knob by dir steps and returns the new value.
func (k knob) nudge(p *engine.Params, dir float64) float64 {
	v := k.field(p)
	*v = core.Clamp(*v+dir*k.step, k.min, k.max)
	return *v
}

var knobs = []knob{
	{"kick length", "", 0.05, 0.1, 1, func(p *engine.Params) *float64 { return &p.KickLength }},
	{"kick drive", "", 0.05, 0, 1, func(p *engine.Params) *float64 { return &p.KickDistortion }},
	{"kick ott", "", 0.05, 0, 1, func(p *engine.Params) *float64 { return &p.KickOTT }},
	{"noise volume", "dB", 1, -60, 12, func(p *engine.Params) *float64 { return &p.NoiseVolumeDB }},
	{"noise lowpass", "Hz", 250, 200, 20000, func(p *engine.Params) *float64 { return &p.NoiseLowPassHz }},
	{"noise highpass", "Hz", 10, 20, 2000, func(p *engine.Params) *float64 { return &p.NoiseHighPassHz }},
	{"reverb volume", "dB", 1, -60, 12, func(p *engine.Params) *float64 { return &p.ReverbVolumeDB }},
	{"reverb lowpass", "Hz", 250, 200, 20000, func(p *engine.Params) *float64 { return &p.ReverbLowPassHz }},
	{"reverb highpass", "Hz", 10, 20, 2000, func(p *engine.Params) *float64 { return &p.ReverbHighPassHz }},
	{"master ott", "", 0.05, 0, 1, func(p *engine.Params) *float64 { return &p.MasterOTT }},
	{"master drive", "", 0.05, 0, 1, func(p *engine.Params) *float64 { return &p.MasterDistortion }},
	{"limiter gain", "x", 0.25, 1, 8, func(p *engine.Params) *float64 { return &p.MasterLimiter }},
}
