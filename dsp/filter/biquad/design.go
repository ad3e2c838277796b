package biquad

import "math"

const defaultQ = 1 / math.Sqrt2

// Lowpass designs an RBJ cookbook lowpass at freq (Hz) with quality factor q.
// Invalid frequencies yield zero coefficients (silence).
func Lowpass(freq, q, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalize(
		(1-cw)/2, 1-cw, (1-cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

// Highpass designs an RBJ cookbook highpass at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalize(
		(1+cw)/2, -(1 + cw), (1+cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

// ButterworthQ returns the Q of the index-th pole pair of an even-order
// Butterworth filter.
func ButterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}

// ButterworthLP designs an even-order lowpass Butterworth cascade.
// Odd or non-positive orders return nil.
func ButterworthLP(freq float64, order int, sampleRate float64) []Coefficients {
	return butterworth(freq, order, sampleRate, Lowpass)
}

// ButterworthHP designs an even-order highpass Butterworth cascade.
func ButterworthHP(freq float64, order int, sampleRate float64) []Coefficients {
	return butterworth(freq, order, sampleRate, Highpass)
}

// LinkwitzRileyLP designs a lowpass Linkwitz-Riley cascade of the given
// order, built as two identical Butterworth cascades of half the order.
// The order must be a multiple of four; LR4 gives -6.02 dB at freq and
// sums flat with [LinkwitzRileyHP] without polarity correction.
func LinkwitzRileyLP(freq float64, order int, sampleRate float64) []Coefficients {
	return linkwitzRiley(freq, order, sampleRate, ButterworthLP)
}

// LinkwitzRileyHP designs the highpass counterpart of [LinkwitzRileyLP].
func LinkwitzRileyHP(freq float64, order int, sampleRate float64) []Coefficients {
	return linkwitzRiley(freq, order, sampleRate, ButterworthHP)
}

func butterworth(freq float64, order int, sampleRate float64, section func(f, q, sr float64) Coefficients) []Coefficients {
	if order <= 0 || order%2 != 0 {
		return nil
	}
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return nil
	}

	n2 := order / 2
	sections := make([]Coefficients, 0, n2)
	for i := n2 - 1; i >= 0; i-- {
		sections = append(sections, section(freq, ButterworthQ(order, i), sampleRate))
	}

	return sections
}

func linkwitzRiley(freq float64, order int, sampleRate float64, bw func(float64, int, float64) []Coefficients) []Coefficients {
	if order <= 0 || order%4 != 0 {
		return nil
	}

	half := bw(freq, order/2, sampleRate)
	if half == nil {
		return nil
	}

	sections := make([]Coefficients, 0, 2*len(half))
	sections = append(sections, half...)
	sections = append(sections, half...)

	return sections
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalize(b0, b1, b2, a0, a1, a2 float64) Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Coefficients{}
	}

	return Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
