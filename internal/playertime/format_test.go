package playertime

import (
	"math"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	second = 1000.0
	minute = 60 * second
	hour   = 60 * minute
	day    = 24 * hour
)

func TestZeroPad(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{0, "00"},
		{5, "05"},
		{9, "09"},
		{10, "10"},
		{59, "59"},
		{100, "100"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ZeroPad(tt.value), "ZeroPad(%d)", tt.value)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name string
		ms   float64
		want string
	}{
		{"zero", 0, "00:00"},
		{"sub-second", 999, "00:00"},
		{"fraction floors", 59999.9, "00:59"},
		{"seconds only", 59000, "00:59"},
		{"one minute", 60000, "01:00"},
		{"just under an hour", 3599000, "59:59"},
		{"one hour", 3600000, "01:00:00"},
		{"hour minute second", 3661000, "01:01:01"},
		{"just under a day", day - 1, "23:59:59"},
		{"one day", 86400000, "1:00:00:00"},
		{"day and an hour", 90000000, "1:01:00:00"},
		{"day and a second", day + second, "1:00:00:01"},
		{"ten days", 10 * day, "10:00:00:00"},
		{"hundred days", 100*day + 2*hour + 3*minute + 4*second, "100:02:03:04"},
		{"NaN", math.NaN(), "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.ms))
		})
	}
}

func TestFormatOptional(t *testing.T) {
	assert.Equal(t, "00:00", FormatOptional(nil))

	v := 3661000.0
	assert.Equal(t, "01:01:01", FormatOptional(&v))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", FormatDuration(0))
	assert.Equal(t, "00:01", FormatDuration(1999*time.Millisecond))
	assert.Equal(t, "01:30:00", FormatDuration(90*time.Minute))
	assert.Equal(t, "2:00:00:00", FormatDuration(48*time.Hour))
}

func TestFormatTime_Huge(t *testing.T) {
	got := FormatTime(math.Inf(1))
	require.NotEmpty(t, got)
	assert.Regexp(t, `^[0-9]+(:[0-9]{2}){3}$`, got)
}

func TestFormatTime_Shape(t *testing.T) {
	shape := regexp.MustCompile(`^[0-9]{1,2}(:[0-9]{2})+$`)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 5000; i++ {
		ms := float64(rng.Int63n(int64(99 * day)))
		got := FormatTime(ms)
		require.Regexp(t, shape, got, "FormatTime(%v)", ms)
		require.Contains(t, got, ":")
	}
}

func TestFormatTime_GroupCount(t *testing.T) {
	tests := []struct {
		ms     float64
		groups int
	}{
		{0, 2},
		{hour - second, 2},
		{hour, 3},
		{day - second, 3},
		{day, 4},
		{1000 * day, 4},
	}
	for _, tt := range tests {
		got := FormatTime(tt.ms)
		assert.Len(t, strings.Split(got, ":"), tt.groups, "FormatTime(%v) = %q", tt.ms, got)
	}
}

func TestFormatTime_OrderWithinBand(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		a := float64(rng.Int63n(int64(30 * day)))
		b := float64(rng.Int63n(int64(30 * day)))
		if a > b {
			a, b = b, a
		}
		fa, fb := FormatTime(a), FormatTime(b)
		if len(fa) != len(fb) {
			continue
		}
		require.LessOrEqual(t, fa, fb, "FormatTime(%v)=%q FormatTime(%v)=%q", a, fa, b, fb)
		if math.Floor(a/second) < math.Floor(b/second) {
			require.Less(t, fa, fb)
		}
	}
}

func TestFormatTime_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				assert.Equal(t, "01:01:01", FormatTime(3661000))
			}
		}()
	}
	wg.Wait()
}
