package reverb

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-kick/dsp/conv"
	"github.com/cwbudde/algo-kick/dsp/core"
)

// ErrInvalidLayout is returned when an impulse response's sample count does
// not cover lengthPerChannel*numChannels.
var ErrInvalidLayout = errors.New("reverb: invalid impulse response layout")

// normTarget is the RMS-style level an impulse response is normalised to:
// kernel *= normTarget / sqrt(total energy).
const normTarget = 0.125

// StereoConvolution convolves a stereo signal with a stereo or mono impulse
// response. Left uses IR channel 0; right uses channel 1, or channel 0 when
// the IR is mono. Without an IR the wet path is silent.
type StereoConvolution struct {
	blockSize  int
	sampleRate float64

	left, right *conv.Partitioned

	dry, wet float64

	scratch core.Stereo
}

// NewStereoConvolution returns an empty convolver that partitions impulse
// responses into blocks of blockSize samples. Mix defaults to dry 0, wet 1.
func NewStereoConvolution(blockSize int) *StereoConvolution {
	if blockSize <= 0 {
		blockSize = core.DefaultProcessorConfig().BlockSize
	}

	return &StereoConvolution{
		blockSize:  blockSize,
		sampleRate: core.DefaultProcessorConfig().SampleRate,
		wet:        1,
		scratch:    core.NewStereo(blockSize),
	}
}

// Prepare records the sample rate and clears the convolution history.
func (c *StereoConvolution) Prepare(sampleRate float64) {
	if sampleRate > 0 && core.IsFinite(sampleRate) {
		c.sampleRate = sampleRate
	}
	c.Reset()
}

// SetMix sets the dry and wet levels.
func (c *StereoConvolution) SetMix(dry, wet float64) {
	if core.IsFinite(dry) {
		c.dry = dry
	}
	if core.IsFinite(wet) {
		c.wet = wet
	}
}

// Mix returns the dry and wet levels.
func (c *StereoConvolution) Mix() (dry, wet float64) { return c.dry, c.wet }

// Loaded reports whether an impulse response is installed.
func (c *StereoConvolution) Loaded() bool { return c.left != nil }

// Latency returns the wet-path delay in samples.
func (c *StereoConvolution) Latency() int {
	if c.left == nil {
		return 0
	}
	return c.left.Latency()
}

// LoadImpulseResponse installs a new impulse response. samples holds
// numChannels consecutive runs of lengthPerChannel samples (channel 0 first).
// The kernels are normalised to a fixed energy. On error the previous
// impulse response stays active.
func (c *StereoConvolution) LoadImpulseResponse(samples []float64, lengthPerChannel, numChannels int) error {
	if lengthPerChannel <= 0 || numChannels <= 0 || len(samples) < lengthPerChannel*numChannels {
		return fmt.Errorf("%w: %d samples for %d x %d", ErrInvalidLayout, len(samples), numChannels, lengthPerChannel)
	}

	kl := append([]float64(nil), samples[:lengthPerChannel]...)
	kr := kl
	if numChannels > 1 {
		kr = append([]float64(nil), samples[lengthPerChannel:2*lengthPerChannel]...)
	}

	energy := sumSquares(kl)
	if numChannels > 1 {
		energy += sumSquares(kr)
	}
	if energy > 0 {
		scale := normTarget / math.Sqrt(energy)
		for i := range kl {
			kl[i] *= scale
		}
		if numChannels > 1 {
			for i := range kr {
				kr[i] *= scale
			}
		}
	}

	left, err := conv.NewPartitioned(kl, c.blockSize)
	if err != nil {
		return fmt.Errorf("reverb: left channel: %w", err)
	}

	right, err := conv.NewPartitioned(kr, c.blockSize)
	if err != nil {
		return fmt.Errorf("reverb: right channel: %w", err)
	}

	c.left, c.right = left, right

	return nil
}

// Reset clears the convolution history, keeping the impulse response.
func (c *StereoConvolution) Reset() {
	if c.left != nil {
		c.left.Reset()
		c.right.Reset()
	}
}

// Process replaces left and right with dry*input + wet*(input ⊛ IR).
func (c *StereoConvolution) Process(left, right []float64) {
	n := min(len(left), len(right))
	for start := 0; start < n; start += c.blockSize {
		end := min(start+c.blockSize, n)
		c.processChunk(left[start:end], right[start:end])
	}
}

func (c *StereoConvolution) processChunk(left, right []float64) {
	wetBuf := c.scratch.Head(len(left))

	if c.left == nil {
		wetBuf.Zero()
	} else {
		// Process only fails on a length mismatch, which Head rules out.
		_ = c.left.Process(wetBuf.L, left)
		_ = c.right.Process(wetBuf.R, right)
	}

	dry, wet := c.dry, c.wet
	for i := range left {
		left[i] = dry*left[i] + wet*wetBuf.L[i]
		right[i] = dry*right[i] + wet*wetBuf.R[i]
	}
}

func sumSquares(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}
	return s
}
