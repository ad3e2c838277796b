// Package engine implements the two-voice drum engine: a kick voice and a
// looping noise voice driven by a beat clock, a convolution reverb send and
// a master bus with multiband dynamics, saturation and a limiter.
//
// Signal flow per block:
//
//	kick  -> [waveshaper blend] -> kick OTT ----+------------------+
//	noise -> lowpass -> highpass ---------------+                  |
//	                                            +-> convolution -> lowpass -> highpass -> gain
//	master = kick + noise + reverb -> master OTT -> [waveshaper blend] -> pre-gain -> limiter
//
// An Engine is single-threaded. Setters must not be called while Process
// runs on the same instance; hosts that drive Process from an audio thread
// serialize access themselves.
package engine
