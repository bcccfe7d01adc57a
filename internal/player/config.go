package player

import "time"

const (
	DefaultTick     = 250 * time.Millisecond
	DefaultSpeed    = 1.0
	DefaultSeekStep = 5 * time.Second
)

type Config struct {
	Tick     time.Duration
	Speed    float64
	SeekStep time.Duration

	// HoldAtEnd keeps Run alive after the end of the recording so that a
	// seek can resume playback.
	HoldAtEnd bool
}
