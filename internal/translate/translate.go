package translate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// interface for text translation. Implementations carry their own service
// handle and target language; one Translator is constructed per pipeline
// invocation and never shared.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// translation service provider
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

type Options struct {
	InputLanguage  string
	TargetLanguage string
	Model          string
	Prompt         string
}

// creates Translator based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Translator, error) {
	if opts.TargetLanguage == "" {
		return nil, fmt.Errorf("target language is required")
	}

	switch provider {
	case ProviderGemini:
		return NewGeminiTranslator(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranslator(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicTranslator(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported translation provider: %s", provider)
	}
}

// Outcome is the result of translating one segment. A failed call falls
// back to the source text rather than aborting; Err records what went
// wrong so the caller can surface a warning.
type Outcome struct {
	Text         string
	UsedFallback bool
	Err          error
}

// TranslateSegment translates a single segment's text, falling back to the
// original text on failure.
func TranslateSegment(
	ctx context.Context,
	translator Translator,
	text string,
) Outcome {
	translated, err := translator.Translate(ctx, text)
	if err != nil || strings.TrimSpace(translated) == "" {
		if err == nil {
			err = fmt.Errorf("empty translation")
		}
		return Outcome{Text: text, UsedFallback: true, Err: err}
	}
	return Outcome{Text: translated}
}

// BuildPrompt creates the translation prompt for LLM providers
func BuildPrompt(opts Options, text string) string {
	var sb strings.Builder

	if opts.InputLanguage != "" {
		sb.WriteString(fmt.Sprintf(
			"Translate the following %s subtitle text to %s.\n\n",
			opts.InputLanguage,
			opts.TargetLanguage,
		))
	} else {
		sb.WriteString(fmt.Sprintf(
			"Translate the following subtitle text to %s.\n\n",
			opts.TargetLanguage,
		))
	}

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString("1. Translate ONLY the text content, preserving the meaning.\n")
	sb.WriteString("2. Preserve line breaks in the same positions.\n")
	sb.WriteString("3. Return ONLY the translated text.\n")
	sb.WriteString("4. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		sb.WriteString(fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt))
	}

	sb.WriteString("Text:\n")
	sb.WriteString(text)

	return sb.String()
}

var codeFenceRegex = regexp.MustCompile("```[a-z]*\\s*")

// cleanResponse strips markdown fences and surrounding whitespace that
// models sometimes wrap around the translation.
func cleanResponse(s string) string {
	s = codeFenceRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
