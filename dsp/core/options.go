package core

// ProcessorConfig defines the fixed processing settings chosen once at setup.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption adjusts a ProcessorConfig. Invalid values leave the field
// unchanged.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the real-time defaults: 44.1 kHz and the
// 128-frame block an AudioWorklet render quantum delivers.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		BlockSize:  128,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 && IsFinite(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}
