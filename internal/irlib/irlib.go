// Package irlib reads IRLB impulse response libraries.
//
// An IRLB file is a small header, a sequence of IR-- chunks and an INDX
// chunk listing each IR's offset and summary metadata:
//
//	"IRLB" u16 version u32 count u64 indexOffset
//	"IR--" u64 size { "META" u32 size meta | "AUDI" u32 size f16 samples | other }
//	"INDX" u64 size { u64 offset f64 rate u32 channels u32 length str name str category }
//
// Integers and floats are little-endian; strings carry a u16 byte length.
// AUDI samples are interleaved IEEE 754 half floats.
package irlib

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// Version is the only supported format version.
const Version = 1

var (
	// ErrMagic is returned when the stream is not an IRLB file.
	ErrMagic = errors.New("irlib: not an IRLB file")
	// ErrVersion is returned for unknown format versions.
	ErrVersion = errors.New("irlib: unsupported version")
	// ErrChunk is returned for a missing or malformed chunk.
	ErrChunk = errors.New("irlib: malformed chunk")
)

var (
	magicFile  = [4]byte{'I', 'R', 'L', 'B'}
	magicIndex = [4]byte{'I', 'N', 'D', 'X'}
	magicIR    = [4]byte{'I', 'R', '-', '-'}
	magicMeta  = [4]byte{'M', 'E', 'T', 'A'}
	magicAudio = [4]byte{'A', 'U', 'D', 'I'}
)

// IR is one decoded impulse response.
type IR struct {
	Name        string
	Description string
	Category    string
	Tags        []string
	SampleRate  float64

	// Channels[ch] holds the samples of channel ch.
	Channels [][]float64
}

// Frames returns the length of each channel.
func (ir *IR) Frames() int {
	if len(ir.Channels) == 0 {
		return 0
	}
	return len(ir.Channels[0])
}

// Planar returns the channels concatenated channel by channel.
func (ir *IR) Planar() []float64 {
	out := make([]float64, 0, ir.Frames()*len(ir.Channels))
	for _, ch := range ir.Channels {
		out = append(out, ch...)
	}
	return out
}

// Library is the decoded content of an IRLB file.
type Library struct {
	IRs []IR
	// Skipped counts index entries whose IR chunk could not be decoded.
	Skipped int
}

// Names returns the IR names in library order.
func (lib *Library) Names() []string {
	names := make([]string, len(lib.IRs))
	for i := range lib.IRs {
		names[i] = lib.IRs[i].Name
	}
	return names
}

// Get returns the IR at index, or nil if out of range.
func (lib *Library) Get(index int) *IR {
	if index < 0 || index >= len(lib.IRs) {
		return nil
	}
	return &lib.IRs[index]
}

// ReadFile reads the library at path.
func ReadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("irlib: %w", err)
	}
	defer f.Close()

	lib, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

type indexEntry struct {
	offset     uint64
	sampleRate float64
	channels   uint32
	length     uint32
	name       string
	category   string
}

// Read decodes a library from r. Entries whose IR chunk is damaged are
// skipped and counted in Library.Skipped; a damaged header or index fails
// the whole read.
func Read(r io.ReadSeeker) (*Library, error) {
	in := &reader{r: r}

	var magic [4]byte
	in.read(&magic)
	if in.err != nil {
		return nil, fmt.Errorf("irlib: header: %w", in.err)
	}
	if magic != magicFile {
		return nil, ErrMagic
	}

	var (
		version     uint16
		count       uint32
		indexOffset uint64
	)
	in.read(&version)
	in.read(&count)
	in.read(&indexOffset)
	if in.err != nil {
		return nil, fmt.Errorf("irlib: header: %w", in.err)
	}
	if version != Version {
		return nil, fmt.Errorf("%w %d", ErrVersion, version)
	}

	entries, err := readIndex(r, indexOffset, count)
	if err != nil {
		return nil, err
	}

	lib := &Library{IRs: make([]IR, 0, len(entries))}
	for _, e := range entries {
		ir, err := readIR(r, e)
		if err != nil {
			lib.Skipped++
			continue
		}
		lib.IRs = append(lib.IRs, ir)
	}

	return lib, nil
}

func readIndex(r io.ReadSeeker, offset uint64, count uint32) ([]indexEntry, error) {
	if _, err := r.Seek(int64(offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("irlib: seek index: %w", err)
	}

	in := &reader{r: bufio.NewReader(r)}

	var (
		magic [4]byte
		size  uint64
	)
	in.read(&magic)
	in.read(&size)
	if in.err != nil {
		return nil, fmt.Errorf("irlib: index: %w", in.err)
	}
	if magic != magicIndex {
		return nil, fmt.Errorf("%w: expected INDX, got %q", ErrChunk, magic[:])
	}

	entries := make([]indexEntry, 0, min(count, 1024))
	start := in.n
	for in.n-start < size {
		var e indexEntry
		in.read(&e.offset)
		in.read(&e.sampleRate)
		in.read(&e.channels)
		in.read(&e.length)
		e.name = in.string()
		e.category = in.string()
		if in.err != nil {
			return nil, fmt.Errorf("irlib: index entry %d: %w", len(entries), in.err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func readIR(r io.ReadSeeker, e indexEntry) (IR, error) {
	if _, err := r.Seek(int64(e.offset), io.SeekStart); err != nil {
		return IR{}, fmt.Errorf("irlib: seek %q: %w", e.name, err)
	}

	in := &reader{r: bufio.NewReader(r)}

	var (
		magic [4]byte
		size  uint64
	)
	in.read(&magic)
	in.read(&size)
	if in.err != nil {
		return IR{}, in.err
	}
	if magic != magicIR {
		return IR{}, fmt.Errorf("%w: expected IR-- at %d, got %q", ErrChunk, e.offset, magic[:])
	}

	ir := IR{Name: e.name, Category: e.category, SampleRate: e.sampleRate}
	channels := int(e.channels)
	var audio []byte

	start := in.n
	for in.n-start < size {
		var (
			sub     [4]byte
			subSize uint32
		)
		in.read(&sub)
		in.read(&subSize)
		if in.err != nil {
			return IR{}, in.err
		}

		switch sub {
		case magicMeta:
			var length uint32
			in.read(&ir.SampleRate)
			in.read(&e.channels)
			in.read(&length)
			ir.Name = in.string()
			ir.Description = in.string()
			ir.Category = in.string()

			var tags uint16
			in.read(&tags)
			for range tags {
				ir.Tags = append(ir.Tags, in.string())
			}
			channels = int(e.channels)

		case magicAudio:
			audio = make([]byte, subSize)
			in.read(audio)

		default:
			in.skip(int64(subSize))
		}

		if in.err != nil {
			return IR{}, fmt.Errorf("irlib: %q sub-chunk %q: %w", e.name, sub[:], in.err)
		}
	}

	if channels <= 0 || len(audio) < 2*channels {
		return IR{}, fmt.Errorf("%w: %q has no audio", ErrChunk, e.name)
	}
	ir.Channels = decodeInterleaved(audio, channels)

	return ir, nil
}

func decodeInterleaved(raw []byte, channels int) [][]float64 {
	frames := len(raw) / 2 / channels
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}

	for i := range frames * channels {
		h := binary.LittleEndian.Uint16(raw[2*i:])
		out[i%channels][i/channels] = float64(halfToFloat32(h))
	}
	return out
}

// halfToFloat32 widens an IEEE 754 binary16 value.
func halfToFloat32(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h) & 0x3ff

	switch {
	case exp == 0 && frac == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		// Subnormal: value is frac * 2^-24.
		v := float32(frac) * (1.0 / (1 << 24))
		if sign != 0 {
			v = -v
		}
		return v
	case exp == 0x1f:
		return math.Float32frombits(sign | 0x7f800000 | frac<<13)
	default:
		return math.Float32frombits(sign | (exp+112)<<23 | frac<<13)
	}
}

// reader decodes little-endian values and keeps the first error.
type reader struct {
	r   io.Reader
	n   uint64
	err error
}

func (in *reader) read(v any) {
	if in.err != nil {
		return
	}
	if err := binary.Read(in.r, binary.LittleEndian, v); err != nil {
		in.err = err
		return
	}
	in.n += uint64(binary.Size(v))
}

func (in *reader) string() string {
	var n uint16
	in.read(&n)
	if in.err != nil || n == 0 {
		return ""
	}

	buf := make([]byte, n)
	in.read(buf)
	return string(buf)
}

func (in *reader) skip(n int64) {
	if in.err != nil {
		return
	}
	copied, err := io.CopyN(io.Discard, in.r, n)
	in.n += uint64(copied)
	if err != nil {
		in.err = err
	}
}
