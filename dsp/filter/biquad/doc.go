// Package biquad provides second-order IIR sections, cascades of them, and
// the small set of coefficient designs the kick engine needs: RBJ lowpass and
// highpass, Butterworth cascades and Linkwitz-Riley crossover cascades.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain].
package biquad
