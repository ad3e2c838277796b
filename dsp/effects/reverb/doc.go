// Package reverb provides the send-return convolution reverb of the kick
// engine: a stereo wrapper around uniformly partitioned FFT convolution with
// impulse-response normalisation and a dry/wet mix.
package reverb
