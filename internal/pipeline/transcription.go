package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/khmerdub/subvoice/internal/audio"
	"github.com/khmerdub/subvoice/internal/subtitle"
	"github.com/khmerdub/subvoice/internal/transcribe"
	"github.com/khmerdub/subvoice/internal/translate"
	"github.com/khmerdub/subvoice/internal/video"
)

// State identifies where a transcription task is in its lifecycle.
type State string

const (
	StateIdle         State = "idle"
	StateExtracting   State = "extracting"
	StateTranscribing State = "transcribing"
	StateTranslating  State = "translating"
	StateSerializing  State = "serializing"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// TranscriptionConfig wires the collaborators for one transcription run.
// Every handle is owned by this run; nothing is shared across tasks.
type TranscriptionConfig struct {
	MediaPath  string
	OutputPath string
	Extractor  video.Processor
	Transcriber transcribe.Transcriber
	Translator  translate.Translator
}

// Transcription turns a media file into translated subtitle text: extract
// audio, transcribe, translate each segment in order, serialize SRT. It
// runs as a single asynchronous task reporting through its event channel.
type Transcription struct {
	cfg     TranscriptionConfig
	emitter *emitter
	state   State
}

func NewTranscription(cfg TranscriptionConfig) (*Transcription, error) {
	if cfg.MediaPath == "" {
		return nil, fmt.Errorf("media path is required")
	}
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if cfg.Extractor == nil || cfg.Transcriber == nil || cfg.Translator == nil {
		return nil, fmt.Errorf("extractor, transcriber, and translator are required")
	}

	return &Transcription{
		cfg:     cfg,
		emitter: newEmitter(),
		state:   StateIdle,
	}, nil
}

// Events returns the task's event channel. It is closed after the
// terminal event.
func (t *Transcription) Events() <-chan Event {
	return t.emitter.events
}

func (t *Transcription) State() State {
	return t.state
}

// Start launches the task. It must be called at most once.
func (t *Transcription) Start(ctx context.Context) {
	go t.run(ctx)
}

func (t *Transcription) run(ctx context.Context) {
	audioPath, cleanup, err := t.extract(ctx)
	if err != nil {
		t.state = StateFailed
		t.emitter.fail(err)
		return
	}
	defer cleanup()

	result, err := t.transcribeAudio(ctx, audioPath)
	if err != nil {
		t.state = StateFailed
		t.emitter.fail(err)
		return
	}

	segments, err := t.translateSegments(ctx, result.Segments)
	if err != nil {
		t.state = StateFailed
		t.emitter.fail(err)
		return
	}

	srt, err := t.serialize(segments)
	if err != nil {
		t.state = StateFailed
		t.emitter.fail(err)
		return
	}

	t.state = StateDone
	t.emitter.done("Transcription complete", srt)
}

func (t *Transcription) extract(ctx context.Context) (string, func(), error) {
	t.state = StateExtracting
	t.emitter.progress("Extracting audio from media...")

	tempDir, err := os.MkdirTemp("", "subvoice-*")
	if err != nil {
		return "", nil, &ResourceError{Path: os.TempDir(), Err: err}
	}
	cleanup := func() { os.RemoveAll(tempDir) }

	audioPath := filepath.Join(tempDir, "audio.mp3")
	compressionOpts := audio.DefaultCompressionOptions()

	if audio.IsVideoFile(t.cfg.MediaPath) {
		extractOpts := video.ExtractAudioOptions{
			Format:     compressionOpts.Format,
			SampleRate: compressionOpts.SampleRate,
			Channels:   compressionOpts.Channels,
			Bitrate:    compressionOpts.Bitrate,
		}
		err = t.cfg.Extractor.ExtractAudio(ctx, t.cfg.MediaPath, audioPath, extractOpts)
	} else {
		err = audio.CompressAudio(ctx, t.cfg.MediaPath, audioPath, compressionOpts)
	}
	if err != nil {
		cleanup()
		return "", nil, &ExternalServiceError{Op: "audio extraction failed", Err: err}
	}

	t.emitter.progress("Audio extracted")
	return audioPath, cleanup, nil
}

func (t *Transcription) transcribeAudio(
	ctx context.Context,
	audioPath string,
) (*transcribe.Result, error) {
	t.state = StateTranscribing
	t.emitter.progress("Transcription backend ready, transcribing audio...")

	result, err := t.cfg.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, &ExternalServiceError{Op: "transcription failed", Err: err}
	}

	// A transcript with no timed segments still produces one segment
	// spanning the full media duration.
	if len(result.Segments) == 0 {
		result.Segments = []subtitle.Segment{{
			Start: 0,
			End:   result.Duration,
			Text:  result.Text,
		}}
	}

	t.emitter.progress(fmt.Sprintf("Transcribed %d segments", len(result.Segments)))
	return result, nil
}

// translateSegments translates one segment at a time, in order. A failed
// translation keeps the source text and emits a warning; it never aborts
// the task.
func (t *Transcription) translateSegments(
	ctx context.Context,
	segments []subtitle.Segment,
) ([]subtitle.Segment, error) {
	t.state = StateTranslating
	t.emitter.progress("Translating segments...")

	translated := make([]subtitle.Segment, len(segments))
	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, &ExternalServiceError{Op: "translation canceled", Err: err}
		}

		outcome := translate.TranslateSegment(ctx, t.cfg.Translator, seg.Text)
		if outcome.UsedFallback {
			t.emitter.progress(fmt.Sprintf(
				"Warning: translation failed for segment %d, keeping original text: %v",
				i+1, outcome.Err,
			))
		}

		translated[i] = subtitle.Segment{
			Start: seg.Start,
			End:   seg.End,
			Text:  outcome.Text,
		}
	}

	return translated, nil
}

func (t *Transcription) serialize(segments []subtitle.Segment) (string, error) {
	t.state = StateSerializing

	srt := subtitle.Marshal(segments)
	if err := subtitle.WriteFile(t.cfg.OutputPath, srt); err != nil {
		return "", &ResourceError{Path: t.cfg.OutputPath, Err: err}
	}

	t.emitter.progress(fmt.Sprintf("Subtitle file saved to %s", t.cfg.OutputPath))
	return srt, nil
}
