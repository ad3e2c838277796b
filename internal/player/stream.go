// Package player streams an engine to the system audio device.
package player

import (
	"encoding/binary"
	"math"
	"sync"
)

const (
	channels       = 2
	bytesPerSample = 4
	frameBytes     = channels * bytesPerSample
)

// Source renders stereo audio in place.
type Source interface {
	Process(left, right []float64)
}

// Stream adapts a Source to an io.Reader of interleaved float32
// little-endian stereo frames. Rendering and Do share a mutex, so control
// code may change the source between blocks but never during one.
type Stream struct {
	mu  sync.Mutex
	src Source

	left, right []float64
	pending     []byte
	rendered    []byte
	frames      int64
}

// NewStream renders src in blocks of blockSize frames.
func NewStream(src Source, blockSize int) *Stream {
	if blockSize <= 0 {
		blockSize = 128
	}
	return &Stream{
		src:      src,
		left:     make([]float64, blockSize),
		right:    make([]float64, blockSize),
		rendered: make([]byte, blockSize*frameBytes),
	}
}

// Read fills p with rendered frames. It never returns an error.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for n < len(p) {
		if len(s.pending) == 0 {
			s.renderBlock()
		}
		c := copy(p[n:], s.pending)
		s.pending = s.pending[c:]
		n += c
	}
	return n, nil
}

// Do runs fn while no block is being rendered.
func (s *Stream) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Frames returns the number of frames rendered so far.
func (s *Stream) Frames() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func (s *Stream) renderBlock() {
	s.src.Process(s.left, s.right)

	buf := s.rendered
	for i := range s.left {
		binary.LittleEndian.PutUint32(buf[i*frameBytes:], math.Float32bits(float32(s.left[i])))
		binary.LittleEndian.PutUint32(buf[i*frameBytes+bytesPerSample:], math.Float32bits(float32(s.right[i])))
	}
	s.pending = buf
	s.frames += int64(len(s.left))
}
