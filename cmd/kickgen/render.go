package main

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-kick/internal/sampleio"
)

// RenderCmd renders a fixed number of beats of the looping transport.
type RenderCmd struct {
	Material `embed:""`
	Knobs    `embed:""`

	Output   string  `arg:"" type:"path" help:"Output WAV file."`
	Beats    int     `default:"16" help:"Number of beats to render."`
	Tail     float64 `default:"1" help:"Seconds rendered after the last beat with the transport stopped."`
	BitDepth int     `default:"24" enum:"16,24,32" help:"Output bit depth (16, 24 or 32)."`
}

func (c *RenderCmd) Run(g *Globals, logger *slog.Logger) error {
	if c.Beats <= 0 {
		return fmt.Errorf("kickgen: beats must be positive, got %d", c.Beats)
	}
	if c.Tail < 0 {
		return fmt.Errorf("kickgen: tail must not be negative, got %g", c.Tail)
	}

	e, _, err := buildEngine(g, c.Material, c.Knobs, logger)
	if err != nil {
		return err
	}

	spb := e.Snapshot().SamplesPerBeat
	loopFrames := c.Beats * spb
	tailFrames := int(c.Tail * e.SampleRate())
	left := make([]float64, loopFrames+tailFrames)
	right := make([]float64, len(left))

	e.SetLooping(true)
	e.Process(left[:loopFrames], right[:loopFrames])
	e.SetLooping(false)
	e.Process(left[loopFrames:], right[loopFrames:])

	st := e.Snapshot()
	logger.Info("rendered",
		"output", c.Output,
		"frames", len(left),
		"beats", st.Beats,
		"kick_triggers", st.KickTriggers,
		"noise_triggers", st.NoiseTriggers,
		"peak", max(vecmath.MaxAbs(left), vecmath.MaxAbs(right)),
	)

	return sampleio.WriteFile(c.Output, g.SampleRate, c.BitDepth, left, right)
}
