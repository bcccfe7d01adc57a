// Package recording reads Guacamole session recordings and indexes their
// frames for playback.
package recording

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/yammut/guacplay/internal/playertime"
)

// ErrNoFrames is returned for recordings that contain no sync instruction.
var ErrNoFrames = errors.New("recording contains no frames")

const opcodeSync = "sync"

// Frame marks a sync instruction in the recording.
type Frame struct {
	// Timestamp is the sync timestamp in milliseconds, as recorded.
	Timestamp int64
	// Offset is the playback position of the frame relative to the first one.
	Offset time.Duration
	// Instructions is the number of instructions since the previous frame.
	Instructions int
}

type Recording struct {
	Frames       []Frame
	Instructions int
	Opcodes      map[string]int
}

// Open loads the recording stored at path.
func Open(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Load reads every instruction from r. Frame offsets never decrease: a sync
// timestamp earlier than its predecessor is placed at the predecessor's
// offset.
func Load(r io.Reader) (*Recording, error) {
	dec := NewDecoder(r)
	rec := &Recording{Opcodes: make(map[string]int)}

	pending := 0
	for {
		ins, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec.Instructions++
		rec.Opcodes[ins.Opcode]++
		pending++

		if ins.Opcode != opcodeSync {
			continue
		}
		ts, err := syncTimestamp(ins)
		if err != nil {
			return nil, fmt.Errorf("%w at offset %d: %w", ErrMalformed, dec.Offset(), err)
		}
		rec.addFrame(ts, pending)
		pending = 0
	}

	if len(rec.Frames) == 0 {
		return nil, ErrNoFrames
	}

	slog.Debug("recording loaded",
		"frames", len(rec.Frames),
		"instructions", rec.Instructions,
		"duration", rec.Duration())
	return rec, nil
}

func syncTimestamp(ins Instruction) (int64, error) {
	if len(ins.Args) == 0 {
		return 0, errors.New("sync without timestamp")
	}
	ts, err := strconv.ParseInt(ins.Args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sync timestamp %q: %w", ins.Args[0], err)
	}
	return ts, nil
}

func (r *Recording) addFrame(ts int64, instructions int) {
	var offset time.Duration
	if n := len(r.Frames); n > 0 {
		offset = time.Duration(ts-r.Frames[0].Timestamp) * time.Millisecond
		if prev := r.Frames[n-1].Offset; offset < prev {
			offset = prev
		}
	}
	r.Frames = append(r.Frames, Frame{
		Timestamp:    ts,
		Offset:       offset,
		Instructions: instructions,
	})
}

// Duration is the playback length of the recording.
func (r *Recording) Duration() time.Duration {
	if len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1].Offset
}

// FrameAt returns the index of the last frame at or before position.
func (r *Recording) FrameAt(position time.Duration) int {
	i := sort.Search(len(r.Frames), func(i int) bool {
		return r.Frames[i].Offset > position
	})
	if i == 0 {
		return 0
	}
	return i - 1
}

type Summary struct {
	SchemaVersion int            `json:"schema_version"`
	Frames        int            `json:"frames"`
	Instructions  int            `json:"instructions"`
	StartMs       int64          `json:"start_ms"`
	DurationMs    int64          `json:"duration_ms"`
	Duration      string         `json:"duration"`
	Opcodes       map[string]int `json:"opcodes"`
}

func (r *Recording) Summary() *Summary {
	var start int64
	if len(r.Frames) > 0 {
		start = r.Frames[0].Timestamp
	}
	d := r.Duration()
	return &Summary{
		SchemaVersion: 1,
		Frames:        len(r.Frames),
		Instructions:  r.Instructions,
		StartMs:       start,
		DurationMs:    d.Milliseconds(),
		Duration:      playertime.FormatDuration(d),
		Opcodes:       r.Opcodes,
	}
}
