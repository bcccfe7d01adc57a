// Package player drives the playback position of a loaded recording.
package player

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/yammut/guacplay/internal/playertime"
	"github.com/yammut/guacplay/internal/recording"
)

var (
	ErrNoRecording  = errors.New("recording is required")
	ErrInvalidSpeed = errors.New("playback speed must be positive")
)

type Controller struct {
	config *Config
	rec    *recording.Recording

	mu       sync.RWMutex
	position time.Duration
	paused   bool
	done     bool
	closed   bool
	events   chan Event
}

func NewController(cfg *Config, rec *recording.Recording) (*Controller, error) {
	if rec == nil {
		return nil, ErrNoRecording
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Speed == 0 {
		cfg.Speed = DefaultSpeed
	}
	if !(cfg.Speed > 0) {
		return nil, ErrInvalidSpeed
	}
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.SeekStep <= 0 {
		cfg.SeekStep = DefaultSeekStep
	}

	return &Controller{
		config: cfg,
		rec:    rec,
		events: make(chan Event, 256),
	}, nil
}

func (c *Controller) Events() <-chan Event {
	return c.events
}

// Run advances playback every tick until the end of the recording is reached
// or ctx is cancelled. With HoldAtEnd set, reaching the end does not return:
// Run idles until a seek moves the position back or ctx is cancelled. The
// events channel is closed when Run returns.
func (c *Controller) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		c.mu.Lock()
		c.closed = true
		close(c.events)
		c.mu.Unlock()
	}()

	slog.Debug("playback started",
		"duration", c.rec.Duration(),
		"speed", c.config.Speed,
		"tick", c.config.Tick)

	if c.finished() {
		c.emit(Event{Type: EventTypeDone, Position: c.rec.Duration(), Frame: len(c.rec.Frames) - 1})
		if !c.config.HoldAtEnd {
			return nil
		}
	}

	ticker := time.NewTicker(c.config.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.emit(Event{Type: EventTypeError, Err: ctx.Err()})
			return ctx.Err()
		case <-ticker.C:
		}

		ev, ok := c.advance(time.Duration(float64(c.config.Tick) * c.config.Speed))
		if !ok {
			continue
		}
		c.emit(ev)
		if ev.Type == EventTypeDone {
			slog.Debug("playback finished", "position", ev.Position)
			if !c.config.HoldAtEnd {
				return nil
			}
		}
	}
}

// advance moves the position forward by d unless playback is paused or has
// reached the end.
func (c *Controller) advance(d time.Duration) (Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paused || c.done {
		return Event{}, false
	}
	c.position = c.clamp(c.position + d)
	ev := Event{Type: EventTypeProgress, Position: c.position, Frame: c.rec.FrameAt(c.position)}
	if c.position >= c.rec.Duration() {
		c.done = true
		ev.Type = EventTypeDone
	}
	return ev, true
}

func (c *Controller) finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.position >= c.rec.Duration() {
		c.done = true
	}
	return c.done
}

// TogglePause pauses or resumes playback and reports whether it is now paused.
func (c *Controller) TogglePause() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = !c.paused
	return c.paused
}

// Seek moves the position by delta, clamped to the recording.
func (c *Controller) Seek(delta time.Duration) {
	c.mu.Lock()
	ev := c.seekLocked(c.position + delta)
	c.mu.Unlock()

	c.emit(ev)
}

// SeekTo moves the position to pos, clamped to the recording.
func (c *Controller) SeekTo(pos time.Duration) {
	c.mu.Lock()
	ev := c.seekLocked(pos)
	c.mu.Unlock()

	c.emit(ev)
}

// seekLocked must be called with c.mu held. Seeking before the end resumes a
// finished playback.
func (c *Controller) seekLocked(pos time.Duration) Event {
	c.position = c.clamp(pos)
	c.done = c.position >= c.rec.Duration()
	return Event{Type: EventTypeSeek, Position: c.position, Frame: c.rec.FrameAt(c.position)}
}

// SeekStep is the configured distance of a single seek.
func (c *Controller) SeekStep() time.Duration {
	return c.config.SeekStep
}

func (c *Controller) clamp(pos time.Duration) time.Duration {
	if pos < 0 {
		return 0
	}
	if d := c.rec.Duration(); pos > d {
		return d
	}
	return pos
}

func (c *Controller) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d := c.rec.Duration()
	percent := 100.0
	if d > 0 {
		percent = float64(c.position) / float64(d) * 100
	}
	return &Snapshot{
		SchemaVersion: 1,
		PositionMs:    c.position.Milliseconds(),
		DurationMs:    d.Milliseconds(),
		Position:      playertime.FormatDuration(c.position),
		Duration:      playertime.FormatDuration(d),
		Frame:         c.rec.FrameAt(c.position),
		Frames:        len(c.rec.Frames),
		Percent:       percent,
		Speed:         c.config.Speed,
		Paused:        c.paused,
		Done:          c.done,
	}
}

// emit never blocks; events are dropped when the buffer is full or Run has
// returned.
func (c *Controller) emit(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.events <- e:
	default:
	}
}
