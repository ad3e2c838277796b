// Command kickgen renders and plays the two-voice kick/noise loop.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var version = "dev"

// CLI is the command-line surface.
type CLI struct {
	Globals

	Render RenderCmd `cmd:"" help:"Render the loop to a WAV file."`
	Play   PlayCmd   `cmd:"" help:"Play the loop live with a terminal control surface."`
	Info   InfoCmd   `cmd:"" help:"Describe the loaded material and print the effective preset."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, options()...)

	logger := newLogger(os.Stderr, cli.Verbose)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals, logger))
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("kickgen"),
		kong.Description("Two-voice sample drum loop with convolution reverb and a multiband master chain."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON),
		kong.Vars{"version": version},
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
