package audio

import (
	"testing"
	"time"
)

// pcmClip builds a timeline-layout clip of the given duration filled with
// a non-zero sample value so silence and speech are distinguishable.
func pcmClip(d time.Duration) *Clip {
	samples := int(d * TimelineSampleRate / time.Second)
	pcm := make([]byte, samples*TimelineChannels*2)
	for i := range pcm {
		pcm[i] = 0x7f
	}
	return &Clip{
		PCM:        pcm,
		SampleRate: TimelineSampleRate,
		Channels:   TimelineChannels,
	}
}

func TestClipDuration(t *testing.T) {
	clip := pcmClip(1500 * time.Millisecond)
	if got := clip.Duration(); got != 1500*time.Millisecond {
		t.Errorf("Duration() = %v, want 1.5s", got)
	}

	var nilClip *Clip
	if got := nilClip.Duration(); got != 0 {
		t.Errorf("nil clip Duration() = %v, want 0", got)
	}
}

func TestTimelineGapAndSilence(t *testing.T) {
	tl := NewTimeline(TimelineSampleRate, TimelineChannels)

	if gap := tl.Gap(3 * time.Second); gap != 3*time.Second {
		t.Errorf("Gap(3s) with cursor 0 = %v, want 3s", gap)
	}

	tl.AppendSilence(2 * time.Second)
	if got := tl.Duration(); got != 2*time.Second {
		t.Errorf("Duration after 2s silence = %v, want 2s", got)
	}

	for _, b := range tl.PCM() {
		if b != 0 {
			t.Fatal("silence buffer contains non-zero samples")
		}
	}
}

func TestTimelineIgnoresNonPositiveSilence(t *testing.T) {
	tl := NewTimeline(TimelineSampleRate, TimelineChannels)
	tl.AppendSilence(0)
	tl.AppendSilence(-500 * time.Millisecond)
	if got := tl.Duration(); got != 0 {
		t.Errorf("Duration = %v, want 0", got)
	}
}

func TestTimelineAppend(t *testing.T) {
	tl := NewTimeline(TimelineSampleRate, TimelineChannels)

	if err := tl.Append(pcmClip(time.Second)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if got := tl.Duration(); got != time.Second {
		t.Errorf("Duration = %v, want 1s", got)
	}
}

func TestTimelineAppendRejectsLayoutMismatch(t *testing.T) {
	tl := NewTimeline(TimelineSampleRate, TimelineChannels)

	clip := &Clip{PCM: make([]byte, 4), SampleRate: 44100, Channels: 2}
	if err := tl.Append(clip); err == nil {
		t.Error("expected error for layout mismatch")
	}
	if err := tl.Append(nil); err == nil {
		t.Error("expected error for nil clip")
	}
}

func TestTimelineCursorIsIndependentOfAppendedAudio(t *testing.T) {
	tl := NewTimeline(TimelineSampleRate, TimelineChannels)

	// Append one second of audio, then declare the segment ended at 5s.
	if err := tl.Append(pcmClip(time.Second)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	tl.SetCursor(5 * time.Second)

	if got := tl.Cursor(); got != 5*time.Second {
		t.Errorf("Cursor = %v, want 5s", got)
	}
	if got := tl.Duration(); got != time.Second {
		t.Errorf("Duration = %v, want 1s", got)
	}
	// The next segment at 7s owes 2s of silence against the declared end,
	// not 6s against the assembled audio.
	if gap := tl.Gap(7 * time.Second); gap != 2*time.Second {
		t.Errorf("Gap(7s) = %v, want 2s", gap)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"out.mp3", FormatMP3},
		{"out.wav", FormatWAV},
		{"OUT.WAV", FormatWAV},
		{"out.ogg", FormatMP3},
		{"out", FormatMP3},
		{"dir.wav/out.flac", FormatMP3},
	}

	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
