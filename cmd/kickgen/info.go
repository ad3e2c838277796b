package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// InfoCmd loads the material and prints what the engine would use.
type InfoCmd struct {
	Material `embed:""`
	Knobs    `embed:""`
}

func (c *InfoCmd) Run(g *Globals, logger *slog.Logger) error {
	return c.write(os.Stdout, g, logger)
}

func (c *InfoCmd) write(w io.Writer, g *Globals, logger *slog.Logger) error {
	e, names, err := buildEngine(g, c.Material, c.Knobs, logger)
	if err != nil {
		return err
	}

	st := e.Snapshot()
	fmt.Fprintf(w, "sample rate:      %d Hz\n", g.SampleRate)
	fmt.Fprintf(w, "block size:       %d\n", e.BlockSize())
	fmt.Fprintf(w, "samples per beat: %d\n", st.SamplesPerBeat)

	list := func(title string, items []string, active int) {
		fmt.Fprintf(w, "%s (%d):\n", title, len(items))
		for i, name := range items {
			marker := " "
			if i == active {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s %2d %s\n", marker, i, name)
		}
	}
	list("kicks", names.Kicks, st.KickSample)
	list("noises", names.Noises, st.NoiseSample)
	list("impulse responses", names.IRs, st.ActiveIR)

	preset, err := json.MarshalIndent(e.Params(), "", "  ")
	if err != nil {
		return fmt.Errorf("kickgen: preset: %w", err)
	}
	fmt.Fprintf(w, "preset:\n%s\n", preset)
	return nil
}
