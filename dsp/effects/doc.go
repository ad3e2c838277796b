// Package effects provides the waveshaping distortion used in the kick and
// master chains.
//
// Subpackages:
//   - github.com/cwbudde/algo-kick/dsp/effects/dynamics
//   - github.com/cwbudde/algo-kick/dsp/effects/reverb
//
// Build with -tags fastmath to replace exact transcendental functions with
// algo-approx approximations in the hot loops.
package effects
