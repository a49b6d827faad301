package subtitle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestMarshal(t *testing.T) {
	segments := []Segment{
		{Start: 1 * time.Second, End: 4 * time.Second, Text: "Hello, world!"},
		{Start: 5500 * time.Millisecond, End: 8200 * time.Millisecond, Text: "Two lines\nof text.  "},
	}

	want := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
Two lines
of text.

`
	if got := Marshal(segments); got != want {
		t.Errorf("Marshal() = %q, want %q", got, want)
	}
}

func TestMarshalRenumbersIndices(t *testing.T) {
	segments := []Segment{
		{Index: 42, Start: 0, End: time.Second, Text: "a"},
		{Index: 7, Start: 2 * time.Second, End: 3 * time.Second, Text: "b"},
	}

	out := Marshal(segments)
	lines := strings.Split(out, "\n")
	if lines[0] != "1" {
		t.Errorf("first block index = %q, want %q", lines[0], "1")
	}
	if lines[4] != "2" {
		t.Errorf("second block index = %q, want %q", lines[4], "2")
	}
}

func TestMarshalEmptySequence(t *testing.T) {
	if got := Marshal(nil); got != "" {
		t.Errorf("Marshal(nil) = %q, want empty string", got)
	}
}

func TestParse(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:05,500 --> 00:00:08,200
This is a test.
With multiple lines.
`
	segments := Parse(content)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	if segments[0].Start != 1*time.Second {
		t.Errorf("segment 0: expected start 1s, got %v", segments[0].Start)
	}
	if segments[0].End != 4*time.Second {
		t.Errorf("segment 0: expected end 4s, got %v", segments[0].End)
	}
	if segments[0].Text != "Hello, world!" {
		t.Errorf("segment 0: expected 'Hello, world!', got %q", segments[0].Text)
	}

	expectedText := "This is a test.\nWith multiple lines."
	if segments[1].Text != expectedText {
		t.Errorf("segment 1: expected %q, got %q", expectedText, segments[1].Text)
	}
}

func TestParseDiscardsRecoveredIndex(t *testing.T) {
	content := `99
00:00:01,000 --> 00:00:02,000
a

not-a-number
00:00:03,000 --> 00:00:04,000
b
`
	segments := Parse(content)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Index != 1 || segments[1].Index != 2 {
		t.Errorf("expected sequence indices 1,2, got %d,%d",
			segments[0].Index, segments[1].Index)
	}
}

func TestParseSkipsMalformedBlocks(t *testing.T) {
	content := `1
00:00:01,000 --> 00:00:02,000
good one

2
missing separator line
this block has no timing

3
00:00:bad,000 --> 00:00:05,000
undecodable start

4
00:00:06,000 --> 00:00:07,000

5
00:00:08,000 --> 00:00:09,000
good two
`
	segments := Parse(content)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "good one" {
		t.Errorf("segment 0: got %q", segments[0].Text)
	}
	if segments[1].Text != "good two" {
		t.Errorf("segment 1: got %q", segments[1].Text)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, content := range []string{"", "\n\n", "just some prose\nwithout timing"} {
		if segments := Parse(content); len(segments) != 0 {
			t.Errorf("Parse(%q) yielded %d segments, want 0", content, len(segments))
		}
	}
}

func TestParsePreservesBlockOrder(t *testing.T) {
	// Out-of-order timing is accepted as-is; the parser does not reorder.
	content := `1
00:00:10,000 --> 00:00:12,000
later

2
00:00:01,000 --> 00:00:02,000
earlier
`
	segments := Parse(content)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "later" || segments[1].Text != "earlier" {
		t.Errorf("parser reordered blocks: %q, %q", segments[0].Text, segments[1].Text)
	}
}

func TestSerializeParseRoundTrip(t *testing.T) {
	original := []Segment{
		{Start: 0, End: 1500 * time.Millisecond, Text: "first"},
		{Start: 2 * time.Second, End: 4 * time.Second, Text: "second\nwith a break"},
		{Start: 3661*time.Second + 234*time.Millisecond, End: 3700 * time.Second, Text: "third"},
	}

	parsed := Parse(Marshal(original))
	if len(parsed) != len(original) {
		t.Fatalf("expected %d segments, got %d", len(original), len(parsed))
	}

	for i := range original {
		if parsed[i].Start != original[i].Start {
			t.Errorf("segment %d: start %v, want %v", i, parsed[i].Start, original[i].Start)
		}
		if parsed[i].End != original[i].End {
			t.Errorf("segment %d: end %v, want %v", i, parsed[i].End, original[i].End)
		}
		if parsed[i].Text != original[i].Text {
			t.Errorf("segment %d: text %q, want %q", i, parsed[i].Text, original[i].Text)
		}
	}
}

func TestWriteAndReadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "out.srt")

	content := Marshal([]Segment{
		{Start: time.Second, End: 2 * time.Second, Text: "hello"},
	})

	if err := WriteFile(path, content); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got != content {
		t.Errorf("ReadFile = %q, want %q", got, content)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.srt"))
	if err == nil {
		t.Error("expected error for missing file")
	}
	if !os.IsNotExist(err) && !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("unexpected error: %v", err)
	}
}
