package biquad

// Chain runs sections in series.
type Chain struct {
	sections []Section
}

// NewChain builds a cascade with one section per coefficient set.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i, k := range coeffs {
		c.sections[i].Coefficients = k
	}
	return c
}

// ProcessSample filters x through every section.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters buf in place, one section at a time.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears every section.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Len returns the number of sections.
func (c *Chain) Len() int { return len(c.sections) }

// Order returns the filter order, two per section.
func (c *Chain) Order() int { return 2 * len(c.sections) }
