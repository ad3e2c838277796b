package engine

import "github.com/cwbudde/algo-kick/dsp/core"

// DefaultBPM is the tempo of a new engine.
const DefaultBPM = 140.0

type config struct {
	core.ProcessorConfig
	bpm float64
}

// Option configures an Engine at construction time.
type Option func(*config)

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(c *config) {
		core.WithSampleRate(sampleRate)(&c.ProcessorConfig)
	}
}

// WithBlockSize sets the largest block rendered in one pass. Longer Process
// calls are split into chunks of this size.
func WithBlockSize(blockSize int) Option {
	return func(c *config) {
		core.WithBlockSize(blockSize)(&c.ProcessorConfig)
	}
}

// WithBPM sets the initial tempo. Non-positive values are ignored.
func WithBPM(bpm float64) Option {
	return func(c *config) {
		if bpm > 0 && core.IsFinite(bpm) {
			c.bpm = bpm
		}
	}
}

func applyOptions(opts ...Option) config {
	cfg := config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		bpm:             DefaultBPM,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
