package biquad

import "github.com/cwbudde/algo-kick/dsp/core"

// Coefficients of one second-order section with a0 normalised to 1:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Section runs one biquad in transposed direct form II.
type Section struct {
	Coefficients

	z1, z2 float64
}

// NewSection returns a section with cleared state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters x.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.z1
	s.z1 = s.B1*x - s.A1*y + s.z2
	s.z2 = s.B2*x - s.A2*y
	return y
}

// ProcessBlock filters buf in place. State is held in locals for the loop
// and denormals are flushed once per block.
func (s *Section) ProcessBlock(buf []float64) {
	c := s.Coefficients
	z1, z2 := s.z1, s.z2

	for i, x := range buf {
		y := c.B0*x + z1
		z1 = c.B1*x - c.A1*y + z2
		z2 = c.B2*x - c.A2*y
		buf[i] = y
	}

	s.z1 = core.FlushDenormals(z1)
	s.z2 = core.FlushDenormals(z2)
}

// Reset clears the delay line.
func (s *Section) Reset() {
	s.z1, s.z2 = 0, 0
}

// State returns the delay line as [z1, z2].
func (s *Section) State() [2]float64 {
	return [2]float64{s.z1, s.z2}
}
