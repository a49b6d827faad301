package tts

import (
	"context"
	"fmt"

	"github.com/khmerdub/subvoice/internal/audio"
)

// Synthesizer turns text into a decoded audio clip at the timeline layout.
// The target language and voice are fixed when the synthesizer is
// constructed; one synthesizer is selected per pipeline invocation.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (*audio.Clip, error)
}

// speech synthesis provider
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// synthesis options
type Options struct {
	Language string // target language code (e.g. "km", "es")
	Voice    string // provider-specific voice name
	Model    string
}

// creates Synthesizer based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Synthesizer, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiSynthesizer(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAISynthesizer(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported synthesis provider: %s", provider)
	}
}
