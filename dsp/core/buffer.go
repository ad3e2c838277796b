package core

// Stereo holds one slice per channel. Processors allocate a Stereo once in
// their constructor and take Head views of it per block.
type Stereo struct {
	L, R []float64
}

// NewStereo allocates n zeroed frames per channel.
func NewStereo(n int) Stereo {
	n = max(n, 0)
	return Stereo{L: make([]float64, n), R: make([]float64, n)}
}

// Frames returns the channel length.
func (s Stereo) Frames() int { return len(s.L) }

// Head returns the first n frames, sharing storage with s. n is clamped to
// [0, Frames()].
func (s Stereo) Head(n int) Stereo {
	n = max(0, min(n, len(s.L)))
	return Stereo{L: s.L[:n], R: s.R[:n]}
}

// Zero clears both channels.
func (s Stereo) Zero() {
	clear(s.L)
	clear(s.R)
}

// CopyFrom copies src into s up to the shorter length and returns the
// number of frames copied.
func (s Stereo) CopyFrom(src Stereo) int {
	n := copy(s.L, src.L)
	copy(s.R[:n], src.R)
	return n
}
