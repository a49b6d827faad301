package subtitle

import (
	"fmt"
	"time"
)

// Segment is a single timed text unit. Start and End are offsets from the
// beginning of the media. Text may contain embedded line breaks.
type Segment struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

// FormatError reports a malformed timestamp or subtitle block.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed subtitle input %q: %s", e.Input, e.Reason)
}
