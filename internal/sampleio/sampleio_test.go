package sampleio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-kick/internal/testutil"
)

func TestWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		bitDepth int
		eps      float64
	}{
		{16, 2.0 / 32767},
		{24, 2.0 / 8388607},
	}

	left := testutil.DeterministicSine(440, 48000, 0.8, 2000)
	right := testutil.DeterministicNoise(5, 0.5, 2000)

	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "out.wav")
		if err := WriteFile(path, 48000, tt.bitDepth, left, right); err != nil {
			t.Fatalf("%d-bit WriteFile: %v", tt.bitDepth, err)
		}

		clip, err := ReadFile(path, 48000)
		if err != nil {
			t.Fatalf("%d-bit ReadFile: %v", tt.bitDepth, err)
		}
		if clip.SampleRate != 48000 || len(clip.Channels) != 2 || clip.Frames() != 2000 {
			t.Fatalf("%d-bit: rate=%d channels=%d frames=%d", tt.bitDepth, clip.SampleRate, len(clip.Channels), clip.Frames())
		}
		testutil.RequireSliceNearlyEqual(t, clip.Channels[0], left, tt.eps)
		testutil.RequireSliceNearlyEqual(t, clip.Channels[1], right, tt.eps)
	}
}

func TestWriteClips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	if err := WriteFile(path, 44100, 16, []float64{2, -3, math.NaN()}, []float64{0, 0, 0}); err != nil {
		t.Fatal(err)
	}

	clip, err := ReadFile(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	got := clip.Channels[0]
	if math.Abs(got[0]-32767.0/32768) > 1e-12 || math.Abs(got[1]+32767.0/32768) > 1e-12 || got[2] != 0 {
		t.Fatalf("clipped samples = %v", got)
	}
}

func TestReadFileSampleRateMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rate.wav")
	if err := WriteFile(path, 22050, 16, []float64{0.1}, []float64{0.1}); err != nil {
		t.Fatal(err)
	}

	_, err := ReadFile(path, 44100)
	if !errors.Is(err, ErrSampleRate) {
		t.Fatalf("err = %v, want ErrSampleRate", err)
	}
}

func TestReadFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("this is not a RIFF file at all"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := ReadFile(path, 0)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.wav"), 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not-exist", err)
	}
}

func TestEncodeRejectsBitDepth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	err := WriteFile(path, 44100, 12, []float64{0}, []float64{0})
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("err = %v, want ErrFormat", err)
	}
}

func TestClipLayouts(t *testing.T) {
	clip := &Clip{
		SampleRate: 44100,
		Channels: [][]float64{
			{1, 0.5, 0},
			{0, 0.5, 1},
		},
	}

	testutil.RequireSliceNearlyEqual(t, clip.Mono(), []float64{0.5, 0.5, 0.5}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, clip.Planar(), []float64{1, 0.5, 0, 0, 0.5, 1}, 0)

	empty := &Clip{}
	if empty.Frames() != 0 || len(empty.Mono()) != 0 || len(empty.Planar()) != 0 {
		t.Fatal("empty clip must have no frames")
	}
}
