// Package filter provides the stereo state-variable filter used for the
// noise and reverb tone stages. Subpackages hold the biquad runtime and the
// Linkwitz-Riley crossover.
package filter
