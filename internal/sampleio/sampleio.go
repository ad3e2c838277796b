// Package sampleio reads and writes PCM WAV files as float64 sample data.
package sampleio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrFormat is returned for files that are not integer PCM WAV.
	ErrFormat = errors.New("sampleio: unsupported WAV format")
	// ErrSampleRate is returned when a file's rate differs from the
	// requested processing rate.
	ErrSampleRate = errors.New("sampleio: sample rate mismatch")
)

const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// Clip is decoded audio stored per channel.
type Clip struct {
	SampleRate int
	Channels   [][]float64
}

// Frames returns the number of frames per channel.
func (c *Clip) Frames() int {
	if len(c.Channels) == 0 {
		return 0
	}
	return len(c.Channels[0])
}

// Mono returns the average of all channels.
func (c *Clip) Mono() []float64 {
	out := make([]float64, c.Frames())
	if len(c.Channels) == 0 {
		return out
	}

	scale := 1 / float64(len(c.Channels))
	for _, ch := range c.Channels {
		for i, v := range ch {
			out[i] += v * scale
		}
	}
	return out
}

// Planar returns the channels concatenated channel by channel, the layout
// expected by impulse response loaders.
func (c *Clip) Planar() []float64 {
	out := make([]float64, 0, c.Frames()*len(c.Channels))
	for _, ch := range c.Channels {
		out = append(out, ch...)
	}
	return out
}

// Decode reads an integer PCM WAV stream.
func Decode(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrFormat
	}
	if dec.WavAudioFormat != wavFormatPCM && dec.WavAudioFormat != wavFormatExtensible {
		return nil, fmt.Errorf("%w: audio format %d", ErrFormat, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("sampleio: decode PCM: %w", err)
	}

	numCh := buf.Format.NumChannels
	if numCh <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrFormat, numCh)
	}

	toFloat, err := sampleScaler(buf.SourceBitDepth)
	if err != nil {
		return nil, err
	}

	frames := len(buf.Data) / numCh
	clip := &Clip{
		SampleRate: buf.Format.SampleRate,
		Channels:   make([][]float64, numCh),
	}
	for ch := range clip.Channels {
		data := make([]float64, frames)
		for i := range data {
			data[i] = toFloat(buf.Data[i*numCh+ch])
		}
		clip.Channels[ch] = data
	}

	return clip, nil
}

// ReadFile decodes the WAV file at path. A non-zero sampleRate rejects
// files recorded at any other rate with ErrSampleRate.
func ReadFile(path string, sampleRate int) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sampleio: %w", err)
	}
	defer f.Close()

	clip, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sampleRate > 0 && clip.SampleRate != sampleRate {
		return nil, fmt.Errorf("%s: %w: file %d Hz, engine %d Hz", path, ErrSampleRate, clip.SampleRate, sampleRate)
	}

	return clip, nil
}

// Encode writes left and right as a stereo PCM WAV stream with the given
// bit depth (16, 24 or 32). Samples are clipped to [-1, 1].
func Encode(w io.WriteSeeker, sampleRate, bitDepth int, left, right []float64) error {
	if bitDepth != 16 && bitDepth != 24 && bitDepth != 32 {
		return fmt.Errorf("%w: bit depth %d", ErrFormat, bitDepth)
	}

	frames := min(len(left), len(right))
	full := float64(audio.IntMaxSignedValue(bitDepth))

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, 2*frames),
		SourceBitDepth: bitDepth,
	}
	for i := range frames {
		buf.Data[2*i] = quantize(left[i], full)
		buf.Data[2*i+1] = quantize(right[i], full)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 2, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("sampleio: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("sampleio: finalize: %w", err)
	}

	return nil
}

// WriteFile creates path and writes a stereo WAV file to it.
func WriteFile(path string, sampleRate, bitDepth int, left, right []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sampleio: %w", err)
	}

	if err := Encode(f, sampleRate, bitDepth, left, right); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func sampleScaler(bitDepth int) (func(int) float64, error) {
	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned.
		return func(v int) float64 { return float64(v-128) / 128 }, nil
	case 16, 24, 32:
		scale := 1 / math.Ldexp(1, bitDepth-1)
		return func(v int) float64 { return float64(v) * scale }, nil
	default:
		return nil, fmt.Errorf("%w: bit depth %d", ErrFormat, bitDepth)
	}
}

func quantize(x, full float64) int {
	if math.IsNaN(x) {
		return 0
	}
	x = math.Max(-1, math.Min(1, x))
	return int(math.Round(x * full))
}
