package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/khmerdub/subvoice/internal/audio"
)

// implements Synthesizer using the OpenAI Speech API. The API returns an
// encoded mp3 stream; the clip is decoded to the timeline layout through a
// scoped temporary file.
type OpenAISynthesizer struct {
	client  openai.Client
	model   string
	options Options
}

func NewOpenAISynthesizer(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAISynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "gpt-4o-mini-tts"
	}

	voice := opts.Voice
	if voice == "" {
		voice = "alloy"
	}
	opts.Voice = voice

	return &OpenAISynthesizer{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (s *OpenAISynthesizer) Synthesize(
	ctx context.Context,
	text string,
) (*audio.Clip, error) {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(s.options.Voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesis response: %w", err)
	}

	clip, err := audio.DecodeClip(
		ctx,
		data,
		".mp3",
		audio.TimelineSampleRate,
		audio.TimelineChannels,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to decode synthesized audio: %w", err)
	}

	return clip, nil
}

func (s *OpenAISynthesizer) Close() error {
	return nil
}
