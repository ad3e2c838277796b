// Package crossover provides Linkwitz-Riley crossover networks for splitting
// an audio signal into complementary lowpass and highpass bands.
//
// The [Crossover] type implements a mono two-way crossover of order 4k
// (LR4, LR8, ...), for which LP + HP is allpass without polarity correction.
// [Stereo] pairs two of them with identical tuning for a left/right signal.
//
// Linkwitz-Riley filters are constructed by cascading two identical
// Butterworth filters, producing -6.02 dB at the crossover frequency.
//
// Example:
//
//	xo, _ := crossover.NewStereo(120, 44100) // LR4 at 120 Hz
//	xo.Split(left, right, lowL, lowR, highL, highR)
package crossover
