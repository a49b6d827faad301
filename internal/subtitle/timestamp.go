package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// SRT timestamp grammar. Hours are unbounded, not wrapped at 24.
var timestampRegex = regexp.MustCompile(`^(\d+):(\d{2}):(\d{2}),(\d{3})$`)

// FormatTimestamp renders a duration as an SRT timestamp (HH:MM:SS,mmm).
// The fractional-second component is truncated to the millisecond, never
// rounded, so formatting and parsing round-trip at millisecond granularity.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d / time.Millisecond
	hours := ms / 3600000
	minutes := (ms / 60000) % 60
	seconds := (ms / 1000) % 60
	millis := ms % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// ParseTimestamp parses an SRT timestamp back into a duration. It returns
// a *FormatError if the input does not match the timestamp grammar.
func ParseTimestamp(s string) (time.Duration, error) {
	matches := timestampRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, &FormatError{Input: s, Reason: "expected HH:MM:SS,mmm"}
	}

	h, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, &FormatError{Input: s, Reason: "hours out of range"}
	}
	m, _ := strconv.Atoi(matches[2])
	sec, _ := strconv.Atoi(matches[3])
	ms, _ := strconv.Atoi(matches[4])

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
