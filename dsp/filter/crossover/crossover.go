package crossover

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-kick/dsp/filter/biquad"
)

// Order is the Linkwitz-Riley order used by [NewStereo].
const Order = 4

// ErrParams is returned for a crossover that cannot be designed.
var ErrParams = errors.New("crossover: invalid parameters")

// Crossover splits a mono signal into complementary Linkwitz-Riley low and
// high bands whose sum is allpass.
type Crossover struct {
	low, high *biquad.Chain
	freq      float64
}

// New designs a crossover at freq Hz. order must be a positive multiple of
// four and freq must lie strictly between 0 and Nyquist.
func New(freq float64, order int, sampleRate float64) (*Crossover, error) {
	if order <= 0 || order%4 != 0 {
		return nil, fmt.Errorf("%w: order %d is not a multiple of 4", ErrParams, order)
	}
	if !(sampleRate > 0) || !(freq > 0) || freq >= sampleRate/2 {
		return nil, fmt.Errorf("%w: %v Hz at %v Hz sample rate", ErrParams, freq, sampleRate)
	}

	return &Crossover{
		low:  biquad.NewChain(biquad.LinkwitzRileyLP(freq, order, sampleRate)),
		high: biquad.NewChain(biquad.LinkwitzRileyHP(freq, order, sampleRate)),
		freq: freq,
	}, nil
}

// ProcessSample returns the low and high band of x.
func (c *Crossover) ProcessSample(x float64) (lo, hi float64) {
	return c.low.ProcessSample(x), c.high.ProcessSample(x)
}

// ProcessBlock writes the bands of in to lo and hi, which must hold at least
// len(in) samples. Either output may alias in, but lo and hi must not alias
// each other.
func (c *Crossover) ProcessBlock(in, lo, hi []float64) {
	n := len(in)
	// hi is filled first so that lo may alias in.
	copy(hi[:n], in)
	copy(lo[:n], in)
	c.low.ProcessBlock(lo[:n])
	c.high.ProcessBlock(hi[:n])
}

// Low returns the lowpass cascade.
func (c *Crossover) Low() *biquad.Chain { return c.low }

// High returns the highpass cascade.
func (c *Crossover) High() *biquad.Chain { return c.high }

// Freq returns the split frequency in Hz.
func (c *Crossover) Freq() float64 { return c.freq }

// Reset clears the filter state.
func (c *Crossover) Reset() {
	c.low.Reset()
	c.high.Reset()
}

// Stereo runs one LR4 crossover per channel at the same frequency.
type Stereo struct {
	ch [2]*Crossover
}

// NewStereo designs an LR4 stereo crossover at freq Hz.
func NewStereo(freq, sampleRate float64) (*Stereo, error) {
	var s Stereo
	for i := range s.ch {
		c, err := New(freq, Order, sampleRate)
		if err != nil {
			return nil, err
		}
		s.ch[i] = c
	}
	return &s, nil
}

// Split writes the low bands of left/right to lowL/lowR and the high bands
// to highL/highR, with the aliasing rules of [Crossover.ProcessBlock].
func (s *Stereo) Split(left, right, lowL, lowR, highL, highR []float64) {
	s.ch[0].ProcessBlock(left, lowL, highL)
	s.ch[1].ProcessBlock(right, lowR, highR)
}

// Freq returns the split frequency in Hz.
func (s *Stereo) Freq() float64 { return s.ch[0].freq }

// Reset clears both channels.
func (s *Stereo) Reset() {
	s.ch[0].Reset()
	s.ch[1].Reset()
}
