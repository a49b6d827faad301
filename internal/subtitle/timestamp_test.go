package subtitle

import (
	"errors"
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "00:00:00,000"},
		{"milliseconds only", 234 * time.Millisecond, "00:00:00,234"},
		{"full components", 3661*time.Second + 234*time.Millisecond, "01:01:01,234"},
		{"hours beyond a day", 25*time.Hour + 30*time.Minute, "25:30:00,000"},
		{"negative clamps to zero", -5 * time.Second, "00:00:00,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.d); got != tt.want {
				t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatTimestampTruncatesMilliseconds(t *testing.T) {
	// 1.2399s must render 239ms, not round up to 240.
	d := time.Duration(1.2399 * float64(time.Second))
	if got := FormatTimestamp(d); got != "00:00:01,239" {
		t.Errorf("FormatTimestamp(1.2399s) = %q, want %q", got, "00:00:01,239")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Duration
	}{
		{"zero", "00:00:00,000", 0},
		{"typical", "01:01:01,234", 3661*time.Second + 234*time.Millisecond},
		{"unbounded hours", "100:00:05,500", 100*time.Hour + 5*time.Second + 500*time.Millisecond},
		{"single digit hour field", "9:59:59,999", 9*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) returned error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimestampRejectsMalformedInput(t *testing.T) {
	inputs := []string{
		"",
		"00:00:00",
		"00:00:00.000",
		"00:0:00,000",
		"00:00:00,00",
		"0000,000",
		"ab:cd:ef,ghi",
		" 00:00:00,000",
	}

	for _, input := range inputs {
		_, err := ParseTimestamp(input)
		if err == nil {
			t.Errorf("ParseTimestamp(%q) succeeded, want format error", input)
			continue
		}
		var formatErr *FormatError
		if !errors.As(err, &formatErr) {
			t.Errorf("ParseTimestamp(%q) returned %T, want *FormatError", input, err)
		}
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	durations := []time.Duration{
		0,
		1 * time.Millisecond,
		999 * time.Millisecond,
		3661*time.Second + 234*time.Millisecond,
		48*time.Hour + 30*time.Minute + 15*time.Second + 42*time.Millisecond,
	}

	for _, d := range durations {
		got, err := ParseTimestamp(FormatTimestamp(d))
		if err != nil {
			t.Fatalf("round trip of %v failed: %v", d, err)
		}
		if got != d {
			t.Errorf("round trip of %v yielded %v", d, got)
		}
	}
}
