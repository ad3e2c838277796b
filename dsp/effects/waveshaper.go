package effects

import "github.com/cwbudde/algo-kick/dsp/core"

const (
	// DefaultDrive is the pre-shape gain used until SetDrive is called.
	DefaultDrive = 2.0

	minDrive = 0.0
	maxDrive = 64.0

	// evenHarmonicAmount scales the x² term that adds even harmonics.
	evenHarmonicAmount = 0.1
)

// Waveshaper is a memoryless stereo distortion with the asymmetric transfer
// curve
//
//	y = tanh(x*drive) + 0.1*x²
//
// The squared term is unsigned, so the output carries a DC component and
// even harmonics.
type Waveshaper struct {
	drive      float64
	sampleRate float64
}

// NewWaveshaper returns a waveshaper with [DefaultDrive].
func NewWaveshaper() *Waveshaper {
	return &Waveshaper{
		drive:      DefaultDrive,
		sampleRate: core.DefaultProcessorConfig().SampleRate,
	}
}

// Prepare records the sample rate. The curve is memoryless, so nothing else
// depends on it.
func (w *Waveshaper) Prepare(sampleRate float64) {
	if sampleRate > 0 {
		w.sampleRate = sampleRate
	}
}

// SetDrive sets the pre-shape gain, clamped to [0, 64].
func (w *Waveshaper) SetDrive(drive float64) {
	if !core.IsFinite(drive) {
		return
	}
	w.drive = core.Clamp(drive, minDrive, maxDrive)
}

// Drive returns the pre-shape gain.
func (w *Waveshaper) Drive() float64 { return w.drive }

// ProcessSample shapes one sample.
func (w *Waveshaper) ProcessSample(x float64) float64 {
	return mathTanh(x*w.drive) + evenHarmonicAmount*x*x
}

// Process shapes left and right in place.
func (w *Waveshaper) Process(left, right []float64) {
	w.ProcessInPlace(left)
	w.ProcessInPlace(right)
}

// ProcessInPlace shapes buf in place.
func (w *Waveshaper) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = mathTanh(x*w.drive) + evenHarmonicAmount*x*x
	}
}
