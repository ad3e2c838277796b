package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-kick/engine"
	"github.com/cwbudde/algo-kick/internal/irlib"
	"github.com/cwbudde/algo-kick/internal/sampleio"
	"github.com/cwbudde/algo-kick/internal/tui"
)

// buildEngine creates an engine at the global rate, loads all material and
// applies the knobs.
func buildEngine(g *Globals, m Material, k Knobs, logger *slog.Logger) (*engine.Engine, tui.Names, error) {
	var names tui.Names

	if g.SampleRate <= 0 {
		return nil, names, fmt.Errorf("kickgen: invalid sample rate %d", g.SampleRate)
	}
	if g.BlockSize <= 0 {
		return nil, names, fmt.Errorf("kickgen: invalid block size %d", g.BlockSize)
	}

	params := k.Params()
	e := engine.New(
		engine.WithSampleRate(float64(g.SampleRate)),
		engine.WithBlockSize(g.BlockSize),
		engine.WithBPM(params.BPM),
	)

	for _, path := range m.Kick {
		clip, err := sampleio.ReadFile(path, g.SampleRate)
		if err != nil {
			return nil, names, fmt.Errorf("kickgen: kick: %w", err)
		}
		idx := e.LoadKickSample(clip.Mono())
		names.Kicks = append(names.Kicks, baseName(path))
		logger.Debug("loaded kick", "index", idx, "path", path, "frames", clip.Frames())
	}

	for _, path := range m.Noise {
		clip, err := sampleio.ReadFile(path, g.SampleRate)
		if err != nil {
			return nil, names, fmt.Errorf("kickgen: noise: %w", err)
		}
		idx := e.LoadNoiseSample(clip.Mono())
		names.Noises = append(names.Noises, baseName(path))
		logger.Debug("loaded noise", "index", idx, "path", path, "frames", clip.Frames())
	}

	for _, path := range m.IR {
		clip, err := sampleio.ReadFile(path, g.SampleRate)
		if err != nil {
			return nil, names, fmt.Errorf("kickgen: impulse response: %w", err)
		}
		if idx := e.LoadIR(clip.Planar(), clip.Frames(), len(clip.Channels)); idx < 0 {
			logger.Warn("skipping empty impulse response", "path", path)
			continue
		}
		names.IRs = append(names.IRs, baseName(path))
	}

	if m.IRLib != "" {
		if err := loadLibrary(e, m.IRLib, g.SampleRate, &names, logger); err != nil {
			return nil, names, err
		}
	}

	e.ApplyParams(params)
	logger.Debug("engine ready",
		"sample_rate", g.SampleRate,
		"block_size", g.BlockSize,
		"kicks", len(names.Kicks),
		"noises", len(names.Noises),
		"irs", len(names.IRs),
	)

	return e, names, nil
}

func loadLibrary(e *engine.Engine, path string, sampleRate int, names *tui.Names, logger *slog.Logger) error {
	lib, err := irlib.ReadFile(path)
	if err != nil {
		return fmt.Errorf("kickgen: %w", err)
	}
	if lib.Skipped > 0 {
		logger.Warn("library entries could not be decoded", "path", path, "skipped", lib.Skipped)
	}

	for i := range lib.IRs {
		ir := &lib.IRs[i]
		if int(ir.SampleRate) != sampleRate {
			logger.Warn("skipping impulse response at another rate",
				"name", ir.Name, "rate", ir.SampleRate, "want", sampleRate)
			continue
		}
		if idx := e.LoadIR(ir.Planar(), ir.Frames(), len(ir.Channels)); idx < 0 {
			logger.Warn("skipping empty impulse response", "name", ir.Name)
			continue
		}
		names.IRs = append(names.IRs, ir.Name)
	}
	return nil
}

func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
