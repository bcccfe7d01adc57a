// Package playertime formats playback positions and recording durations for
// display in the recording player.
package playertime

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// placeValues holds the divisors of the day, hour, minute and second groups,
// most significant first. The day group has no upper bound and keeps
// whatever remains after the lower groups are extracted.
var placeValues = [...]int{1, 24, 60, 60}

const (
	dayGroup = 0

	// minGroups is the number of trailing groups (minutes and seconds) that
	// are rendered even when zero.
	minGroups = 2
)

// ZeroPad returns the decimal representation of value, with a single leading
// zero if value is one digit. value must not be negative.
func ZeroPad(value int) string {
	if value > 9 {
		return strconv.Itoa(value)
	}
	return "0" + strconv.Itoa(value)
}

// FormatTime formats the given quantity of milliseconds as days, hours,
// minutes and whole seconds separated by colons ("D:HH:MM:SS"). Hours are
// included only if the quantity is at least one hour, and days only if it is
// at least one day. Every group is two digits except a leading day count.
//
// ms must not be negative. NaN is treated as zero.
func FormatTime(ms float64) string {
	if math.IsNaN(ms) {
		ms = 0
	}
	return formatSeconds(wholeSeconds(ms))
}

// FormatOptional formats ms like FormatTime, treating a missing value as zero.
func FormatOptional(ms *float64) string {
	if ms == nil {
		return FormatTime(0)
	}
	return FormatTime(*ms)
}

// FormatDuration formats d like FormatTime formats its millisecond count.
func FormatDuration(d time.Duration) string {
	return formatSeconds(int(d / time.Second))
}

func wholeSeconds(ms float64) int {
	s := math.Floor(ms / 1000)
	if s >= math.MaxInt {
		return math.MaxInt
	}
	return int(s)
}

func formatSeconds(seconds int) string {
	groups := split(seconds)

	first := 0
	for first < len(groups)-minGroups && groups[first] == 0 {
		first++
	}

	var b strings.Builder
	for i := first; i < len(groups); i++ {
		if i > first {
			b.WriteByte(':')
		}
		if i == dayGroup {
			b.WriteString(strconv.Itoa(groups[i]))
			continue
		}
		b.WriteString(ZeroPad(groups[i]))
	}
	return b.String()
}

// split breaks seconds into day, hour, minute and second groups.
func split(seconds int) [len(placeValues)]int {
	var groups [len(placeValues)]int
	for i := len(placeValues) - 1; i > dayGroup; i-- {
		groups[i] = seconds % placeValues[i]
		seconds /= placeValues[i]
	}
	groups[dayGroup] = seconds
	return groups
}
