package recording

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "4.size,1.0,4.1024,3.768;" +
	"4.sync,13.1700000000000;" +
	"3.png,2.14,1.0,1.0,1.0;4.blob,1.0,4.AAAA;" +
	"4.sync,13.1700000001500;" +
	"4.sync,13.1700003661000;"

func TestLoad(t *testing.T) {
	rec, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	require.Len(t, rec.Frames, 3)
	assert.Equal(t, 6, rec.Instructions)
	assert.Equal(t, 3, rec.Opcodes["sync"])
	assert.Equal(t, 1, rec.Opcodes["blob"])

	assert.Equal(t, Frame{Timestamp: 1700000000000, Offset: 0, Instructions: 2}, rec.Frames[0])
	assert.Equal(t, 1500*time.Millisecond, rec.Frames[1].Offset)
	assert.Equal(t, 3, rec.Frames[1].Instructions)
	assert.Equal(t, 3661*time.Second, rec.Duration())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(strings.NewReader("4.size,1.0,4.1024,3.768;"))
	assert.ErrorIs(t, err, ErrNoFrames)

	_, err = Load(strings.NewReader("4.sync;"))
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = Load(strings.NewReader("4.sync,3.abc;"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoad_TimestampGoesBackwards(t *testing.T) {
	rec, err := Load(strings.NewReader("4.sync,4.2000;4.sync,4.5000;4.sync,4.4000;"))
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, rec.Frames[1].Offset)
	assert.Equal(t, 3*time.Second, rec.Frames[2].Offset)
	assert.Equal(t, 3*time.Second, rec.Duration())
}

func TestRecording_FrameAt(t *testing.T) {
	rec, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	tests := []struct {
		pos  time.Duration
		want int
	}{
		{-time.Second, 0},
		{0, 0},
		{time.Second, 0},
		{1500 * time.Millisecond, 1},
		{time.Hour, 1},
		{3661 * time.Second, 2},
		{10 * time.Hour, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rec.FrameAt(tt.pos), "FrameAt(%v)", tt.pos)
	}
}

func TestRecording_Summary(t *testing.T) {
	rec, err := Load(strings.NewReader(sample))
	require.NoError(t, err)

	b, err := json.Marshal(rec.Summary())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, float64(1), m["schema_version"])
	assert.Equal(t, float64(3), m["frames"])
	assert.Equal(t, float64(3661000), m["duration_ms"])
	assert.Equal(t, "01:01:01", m["duration"])
	assert.Contains(t, m, "opcodes")
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.guac")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	rec, err := Open(path)
	require.NoError(t, err)
	assert.Len(t, rec.Frames, 3)

	_, err = Open(filepath.Join(t.TempDir(), "missing.guac"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
