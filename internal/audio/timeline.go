package audio

import (
	"fmt"
	"time"
)

// Synthesized speech is assembled at a fixed layout; clips from backends
// that produce something else are decoded to match before appending.
const (
	TimelineSampleRate = 24000
	TimelineChannels   = 1
)

// Clip is decoded audio: interleaved signed 16-bit little-endian PCM.
type Clip struct {
	PCM        []byte
	SampleRate int
	Channels   int
}

// Duration derives the clip length from its sample count and rate.
func (c *Clip) Duration() time.Duration {
	if c == nil || c.SampleRate <= 0 || c.Channels <= 0 {
		return 0
	}
	samples := len(c.PCM) / (2 * c.Channels)
	return time.Duration(samples) * time.Second / time.Duration(c.SampleRate)
}

// Timeline is the accumulated output of synthesis: an append-only PCM
// buffer plus a cursor tracking the declared end time of the last segment
// processed. The cursor is what gap computation runs against; it is advanced
// by the caller with SetCursor and is independent of how much audio has
// actually been appended, so the assembled audio drifts when synthesized
// clips run shorter or longer than their subtitle slot.
type Timeline struct {
	pcm        []byte
	sampleRate int
	channels   int
	cursor     time.Duration
}

func NewTimeline(sampleRate, channels int) *Timeline {
	return &Timeline{
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// Gap returns the distance from the cursor to the given segment start.
// A non-positive gap means the segment starts at or before the cursor.
func (t *Timeline) Gap(start time.Duration) time.Duration {
	return start - t.cursor
}

// AppendSilence appends d of silence. Non-positive durations are ignored.
func (t *Timeline) AppendSilence(d time.Duration) {
	if d <= 0 {
		return
	}
	samples := int(d * time.Duration(t.sampleRate) / time.Second)
	t.pcm = append(t.pcm, make([]byte, samples*t.channels*2)...)
}

// Append appends a clip's samples. The clip must already match the
// timeline's layout.
func (t *Timeline) Append(clip *Clip) error {
	if clip == nil {
		return fmt.Errorf("nil clip")
	}
	if clip.SampleRate != t.sampleRate || clip.Channels != t.channels {
		return fmt.Errorf(
			"clip layout %dHz/%dch does not match timeline %dHz/%dch",
			clip.SampleRate, clip.Channels, t.sampleRate, t.channels,
		)
	}
	t.pcm = append(t.pcm, clip.PCM...)
	return nil
}

// SetCursor moves the cursor to the declared end time of the segment just
// processed, regardless of how much audio it contributed.
func (t *Timeline) SetCursor(end time.Duration) {
	t.cursor = end
}

func (t *Timeline) Cursor() time.Duration {
	return t.cursor
}

func (t *Timeline) SampleRate() int {
	return t.sampleRate
}

func (t *Timeline) Channels() int {
	return t.channels
}

// Duration is the length of audio actually assembled so far.
func (t *Timeline) Duration() time.Duration {
	if t.sampleRate <= 0 || t.channels <= 0 {
		return 0
	}
	samples := len(t.pcm) / (2 * t.channels)
	return time.Duration(samples) * time.Second / time.Duration(t.sampleRate)
}

// PCM returns the assembled buffer.
func (t *Timeline) PCM() []byte {
	return t.pcm
}
