package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-kick/engine"
	"github.com/cwbudde/algo-kick/internal/player"
	"github.com/cwbudde/algo-kick/internal/tui"
)

// PlayCmd plays the engine on the default audio device.
type PlayCmd struct {
	Material `embed:""`
	Knobs    `embed:""`

	Buffer  time.Duration `default:"30ms" help:"Output device buffer duration."`
	NoTUI   bool          `name:"no-tui" help:"Start looping immediately and run until interrupted."`
	LogFile string        `default:"kickgen.log" type:"path" help:"Log destination while the control surface is active."`
}

// streamHost serialises engine access with the audio callback.
type streamHost struct {
	stream *player.Stream
	e      *engine.Engine
}

func (h streamHost) Do(fn func(e *engine.Engine)) {
	h.stream.Do(func() { fn(h.e) })
}

func (c *PlayCmd) Run(g *Globals, logger *slog.Logger) error {
	if !c.NoTUI {
		f, err := os.Create(c.LogFile)
		if err != nil {
			return fmt.Errorf("kickgen: log file: %w", err)
		}
		defer f.Close()
		logger = newLogger(f, g.Verbose)
	}

	e, names, err := buildEngine(g, c.Material, c.Knobs, logger)
	if err != nil {
		return err
	}

	stream := player.NewStream(e, e.BlockSize())
	out, err := player.Open(g.SampleRate, stream, c.Buffer)
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil {
			logger.Error("closing audio output", "err", err)
		}
	}()
	out.Play()
	logger.Info("audio started", "sample_rate", g.SampleRate, "buffer", c.Buffer)

	host := streamHost{stream: stream, e: e}
	if c.NoTUI {
		return runHeadless(host, logger)
	}

	if _, err := tea.NewProgram(tui.NewModel(host, names), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("kickgen: control surface: %w", err)
	}
	if err := out.Err(); err != nil {
		return fmt.Errorf("kickgen: audio output: %w", err)
	}
	logger.Info("stopped", "frames", stream.Frames())
	return nil
}

func runHeadless(host streamHost, logger *slog.Logger) error {
	host.Do(func(e *engine.Engine) { e.SetLooping(true) })
	logger.Info("looping, press Ctrl+C to stop")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	<-sig

	host.Do(func(e *engine.Engine) { e.SetLooping(false) })
	logger.Info("stopped", "frames", host.stream.Frames())
	return nil
}
