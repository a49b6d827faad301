package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const separator = "-->"

// Marshal renders segments as SRT text in sequence order. Indices are
// renumbered from 1 regardless of any index on the input segments, and the
// last block is followed by a trailing blank line. Timing is not validated;
// ordering and overlap are the caller's responsibility.
func Marshal(segments []Segment) string {
	var sb strings.Builder
	for i, seg := range segments {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			FormatTimestamp(seg.Start),
			separator,
			FormatTimestamp(seg.End)))
		sb.WriteString(strings.TrimSpace(seg.Text))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// Parse recovers segments from SRT text. It is deliberately tolerant of
// hand-edited input: a block with fewer than 3 lines, a missing timing
// separator, or an undecodable timestamp is skipped without error. Block
// order is preserved as encountered and the block's own index line is
// discarded; the position in the returned slice is the segment's index.
func Parse(content string) []Segment {
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var segments []Segment
	for _, block := range strings.Split(strings.TrimSpace(content), "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}

		timing := lines[1]
		if !strings.Contains(timing, separator) {
			continue
		}

		parts := strings.SplitN(timing, separator, 2)
		start, err := ParseTimestamp(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}
		end, err := ParseTimestamp(strings.TrimSpace(parts[1]))
		if err != nil {
			continue
		}

		segments = append(segments, Segment{
			Index: len(segments) + 1,
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(strings.Join(lines[2:], "\n")),
		})
	}

	return segments
}

// WriteFile writes SRT text to path, creating parent directories as needed.
func WriteFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// ReadFile reads SRT text from path.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read subtitle file: %w", err)
	}
	return string(data), nil
}
