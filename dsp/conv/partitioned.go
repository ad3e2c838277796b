package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Partitioned implements uniformly partitioned overlap-save convolution for
// streaming use. Process accepts any number of samples per call; output is
// delayed by exactly one partition ([Partitioned.Latency]).
//
// All buffers are allocated in [NewPartitioned]; Process does not allocate.
type Partitioned struct {
	kernelLen int
	partSize  int
	fftSize   int
	parts     int

	plan *algofft.Plan[complex128]

	irSpectra [][]complex128 // per partition, fftSize bins
	fdl       [][]complex128 // frequency-domain delay line of input spectra
	fdlPos    int

	inHist   []float64 // previous block | current block
	outBlock []float64
	fill     int

	spec []complex128
	acc  []complex128
}

// NewPartitioned builds a convolver for kernel with the given partition size.
// The partition size is rounded up to a power of two.
func NewPartitioned(kernel []float64, blockSize int) (*Partitioned, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBlockSize, blockSize)
	}

	partSize := nextPowerOf2(blockSize)
	fftSize := 2 * partSize
	parts := (len(kernel) + partSize - 1) / partSize

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	p := &Partitioned{
		kernelLen: len(kernel),
		partSize:  partSize,
		fftSize:   fftSize,
		parts:     parts,
		plan:      plan,
		irSpectra: make([][]complex128, parts),
		fdl:       make([][]complex128, parts),
		inHist:    make([]float64, fftSize),
		outBlock:  make([]float64, partSize),
		spec:      make([]complex128, fftSize),
		acc:       make([]complex128, fftSize),
	}

	for k := range parts {
		start := k * partSize
		end := min(start+partSize, len(kernel))

		clear(p.spec)
		for i, v := range kernel[start:end] {
			p.spec[i] = complex(v, 0)
		}

		p.irSpectra[k] = make([]complex128, fftSize)
		if err := plan.Forward(p.irSpectra[k], p.spec); err != nil {
			return nil, fmt.Errorf("conv: failed to compute partition %d spectrum: %w", k, err)
		}

		p.fdl[k] = make([]complex128, fftSize)
	}

	return p, nil
}

// Latency returns the input-to-output delay in samples.
func (p *Partitioned) Latency() int { return p.partSize }

// KernelLen returns the kernel length.
func (p *Partitioned) KernelLen() int { return p.kernelLen }

// Partitions returns the number of kernel partitions.
func (p *Partitioned) Partitions() int { return p.parts }

// Process convolves src into dst. dst and src must have equal length and may
// be the same slice.
func (p *Partitioned) Process(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("%w: dst %d, src %d", ErrLengthMismatch, len(dst), len(src))
	}

	b := p.partSize
	for i, x := range src {
		p.inHist[b+p.fill] = x
		dst[i] = p.outBlock[p.fill]
		p.fill++

		if p.fill == b {
			p.fill = 0
			if err := p.runBlock(); err != nil {
				return err
			}
		}
	}

	return nil
}

// Reset clears the input history and delay line, keeping the kernel.
func (p *Partitioned) Reset() {
	clear(p.inHist)
	clear(p.outBlock)
	for _, s := range p.fdl {
		clear(s)
	}
	p.fdlPos = 0
	p.fill = 0
}

func (p *Partitioned) runBlock() error {
	b := p.partSize

	for i, v := range p.inHist {
		p.spec[i] = complex(v, 0)
	}

	if err := p.plan.Forward(p.fdl[p.fdlPos], p.spec); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	clear(p.acc)

	for k := range p.parts {
		x := p.fdl[(p.fdlPos-k+p.parts)%p.parts]
		h := p.irSpectra[k]
		for i := range p.acc {
			p.acc[i] += x[i] * h[i]
		}
	}

	if err := p.plan.Inverse(p.acc, p.acc); err != nil {
		return fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	// The second half of the circular result is free of wrap-around.
	for i := range b {
		p.outBlock[i] = real(p.acc[b+i])
	}

	copy(p.inHist[:b], p.inHist[b:])
	p.fdlPos = (p.fdlPos + 1) % p.parts

	return nil
}
