// Package dynamics provides the dynamics processors of the kick engine.
//
// Included processors:
//   - BandCompressor: stereo upward/downward soft-knee compressor whose
//     ratios scale with an amount knob.
//   - OTT: three-band upward/downward processor built from two LR4
//     crossovers and three BandCompressors, with amount-scaled makeup.
//   - Limiter: stereo-linked brick-wall peak limiter.
//
// Gain computation runs in the log2 domain; build with -tags fastmath to use
// algo-approx approximations for the log/exp pair.
package dynamics
