package tts

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/khmerdub/subvoice/internal/audio"
)

// implements Synthesizer using Gemini native audio generation. The model
// returns raw 24kHz mono s16le PCM, which is the timeline layout, so no
// decode step is needed.
type GeminiSynthesizer struct {
	client  *genai.Client
	model   string
	options Options
}

func NewGeminiSynthesizer(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiSynthesizer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash-preview-tts"
	}

	voice := opts.Voice
	if voice == "" {
		voice = "Kore"
	}
	opts.Voice = voice

	return &GeminiSynthesizer{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (s *GeminiSynthesizer) Synthesize(
	ctx context.Context,
	text string,
) (*audio.Clip, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(text),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: s.options.Voice,
				},
			},
		},
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}

	data, err := extractAudioData(result)
	if err != nil {
		return nil, err
	}

	return &audio.Clip{
		PCM:        data,
		SampleRate: audio.TimelineSampleRate,
		Channels:   audio.TimelineChannels,
	}, nil
}

func extractAudioData(result *genai.GenerateContentResponse) ([]byte, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data, nil
			}
		}
	}

	return nil, fmt.Errorf("no audio data in Gemini response")
}

func (s *GeminiSynthesizer) Close() error {
	return nil
}
