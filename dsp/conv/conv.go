package conv

import (
	"errors"
	"math/bits"
)

var (
	// ErrEmptyKernel is returned for a zero-length impulse response.
	ErrEmptyKernel = errors.New("conv: empty kernel")
	// ErrInvalidBlockSize is returned for a non-positive block size.
	ErrInvalidBlockSize = errors.New("conv: invalid block size")
	// ErrLengthMismatch is returned when input and output lengths differ.
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// nextPowerOf2 returns the smallest power of two >= n, and 1 for n < 2.
func nextPowerOf2(n int) int {
	if n < 2 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
