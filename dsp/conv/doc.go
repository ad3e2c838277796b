// Package conv provides convolution routines for real-time impulse-response
// processing.
//
// [Partitioned] is a uniformly partitioned overlap-save convolver: the kernel
// is split into block-sized partitions whose spectra are multiplied against a
// frequency-domain delay line of past input spectra. Cost per block is one
// forward FFT, one inverse FFT and one complex multiply-accumulate per
// partition, independent of where in the kernel the energy sits. Latency is
// one partition.
//
//	c, err := conv.NewPartitioned(ir, 128)
//	...
//	c.Process(out, in) // any length; output is delayed by c.Latency()
package conv
