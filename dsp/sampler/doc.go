// Package sampler provides a mono sample voice with looping, an anti-click
// tail fade and a linear release envelope.
//
// A [Voice] owns an append-only set of immutable waveforms addressed by the
// index [Voice.Load] returns. One waveform is active at a time; [Voice.Render]
// plays it from a cursor and duplicates the mono output to both channels.
//
// Playback is an explicit state machine:
//
//	Idle      --Trigger-->  Playing
//	Playing   --Stop------> Releasing (release > 0) | Idle (release == 0)
//	Playing   --end-------> Idle (not looping) | Playing from 0 (looping)
//	Releasing --env==0----> Idle
//	any       --Trigger-->  Playing (envelope 1, position 0)
//	any       --Select--->  Idle
package sampler
