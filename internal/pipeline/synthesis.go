package pipeline

import (
	"context"
	"fmt"

	"github.com/khmerdub/subvoice/internal/audio"
	"github.com/khmerdub/subvoice/internal/subtitle"
	"github.com/khmerdub/subvoice/internal/tts"
)

// TimelineEncoder writes an assembled timeline to the destination file.
type TimelineEncoder func(
	ctx context.Context,
	tl *audio.Timeline,
	outputPath string,
	format audio.Format,
) error

// SynthesisConfig wires the collaborators for one voice-generation run.
type SynthesisConfig struct {
	SubtitleText string
	OutputPath   string
	Synthesizer  tts.Synthesizer
	// Encoder defaults to audio.EncodeTimeline when nil.
	Encoder TimelineEncoder
}

// Synthesis reconstructs a continuous audio track from subtitle text: one
// synthesis call per segment, silence for positive gaps, and a cursor that
// always advances to the segment's declared end time. Clip durations are
// never reconciled against the subtitle slot, so the assembled track
// drifts relative to the original timing; that is accepted, not corrected.
type Synthesis struct {
	cfg     SynthesisConfig
	emitter *emitter
}

func NewSynthesis(cfg SynthesisConfig) (*Synthesis, error) {
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if cfg.Synthesizer == nil {
		return nil, fmt.Errorf("synthesizer is required")
	}
	if cfg.Encoder == nil {
		cfg.Encoder = audio.EncodeTimeline
	}

	return &Synthesis{
		cfg:     cfg,
		emitter: newEmitter(),
	}, nil
}

// Events returns the task's event channel. It is closed after the
// terminal event.
func (s *Synthesis) Events() <-chan Event {
	return s.emitter.events
}

// Start launches the task. It must be called at most once.
func (s *Synthesis) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Synthesis) run(ctx context.Context) {
	s.emitter.progress("Generating voice audio based on timeline...")

	segments := subtitle.Parse(s.cfg.SubtitleText)
	if len(segments) == 0 {
		s.emitter.progress("No valid subtitle segments found")
		s.emitter.done("Nothing to synthesize, no output produced", "")
		return
	}

	tl, err := s.assemble(ctx, segments)
	if err != nil {
		s.emitter.fail(err)
		return
	}

	format := audio.FormatFromPath(s.cfg.OutputPath)
	if err := s.cfg.Encoder(ctx, tl, s.cfg.OutputPath, format); err != nil {
		s.emitter.fail(&ResourceError{Path: s.cfg.OutputPath, Err: err})
		return
	}

	s.emitter.progress(fmt.Sprintf("Voice audio saved to %s", s.cfg.OutputPath))
	s.emitter.done("Synthesis complete", s.cfg.OutputPath)
}

// assemble walks the segments in order, keeping the timeline cursor on
// each segment's declared end time. Positive gaps become silence; a
// segment starting at or before the cursor gets its clip appended
// immediately, losing its intended start time. A failed synthesis call
// contributes no audio but still moves the cursor.
func (s *Synthesis) assemble(
	ctx context.Context,
	segments []subtitle.Segment,
) (*audio.Timeline, error) {
	tl := audio.NewTimeline(audio.TimelineSampleRate, audio.TimelineChannels)

	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, &ExternalServiceError{Op: "synthesis canceled", Err: err}
		}

		if gap := tl.Gap(seg.Start); gap > 0 {
			tl.AppendSilence(gap)
		}

		clip, err := s.cfg.Synthesizer.Synthesize(ctx, seg.Text)
		if err != nil {
			s.emitter.progress(fmt.Sprintf(
				"Warning: skipping segment %d due to synthesis error: %v", i+1, err,
			))
		} else if err := tl.Append(clip); err != nil {
			s.emitter.progress(fmt.Sprintf(
				"Warning: skipping segment %d, unusable clip: %v", i+1, err,
			))
		}

		tl.SetCursor(seg.End)
	}

	return tl, nil
}
