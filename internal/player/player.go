package player

import (
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// DefaultBufferSize is the device buffer requested from the driver.
const DefaultBufferSize = 30 * time.Millisecond

// Player plays a Stream on the default output device.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
}

// Open initialises the audio device for sampleRate and attaches stream.
// Only one Player may exist per process.
func Open(sampleRate int, stream *Stream, bufferSize time.Duration) (*Player, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("player: open device: %w", err)
	}
	<-ready

	return &Player{ctx: ctx, player: ctx.NewPlayer(stream)}, nil
}

// Play starts playback.
func (p *Player) Play() { p.player.Play() }

// Pause stops pulling frames from the stream.
func (p *Player) Pause() { p.player.Pause() }

// Close stops playback and releases the player.
func (p *Player) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("player: close: %w", err)
	}
	return nil
}

// IsPlaying reports whether the device is pulling frames.
func (p *Player) IsPlaying() bool { return p.player.IsPlaying() }

// Err returns the first device error, if any.
func (p *Player) Err() error {
	if err := p.ctx.Err(); err != nil {
		return err
	}
	return p.player.Err()
}
