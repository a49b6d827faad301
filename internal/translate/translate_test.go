package translate

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestFactoryReturnsGeminiTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Khmer"}
	translator, err := Factory(ctx, ProviderGemini, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderGemini) returned error: %v", err)
	}
	if _, ok := translator.(*GeminiTranslator); !ok {
		t.Errorf("expected *GeminiTranslator, got %T", translator)
	}
}

func TestFactoryReturnsOpenAITranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "Spanish"}
	translator, err := Factory(ctx, ProviderOpenAI, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderOpenAI) returned error: %v", err)
	}
	if _, ok := translator.(*OpenAITranslator); !ok {
		t.Errorf("expected *OpenAITranslator, got %T", translator)
	}
}

func TestFactoryReturnsAnthropicTranslator(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "French"}
	translator, err := Factory(ctx, ProviderAnthropic, "fake-key", opts)
	if err != nil {
		t.Fatalf("Factory(ProviderAnthropic) returned error: %v", err)
	}
	if _, ok := translator.(*AnthropicTranslator); !ok {
		t.Errorf("expected *AnthropicTranslator, got %T", translator)
	}
}

func TestFactoryRequiresTargetLanguage(t *testing.T) {
	ctx := context.Background()
	if _, err := Factory(ctx, ProviderGemini, "fake-key", Options{}); err == nil {
		t.Error("expected error for missing target language")
	}
}

func TestFactoryRejectsUnknownProvider(t *testing.T) {
	ctx := context.Background()
	opts := Options{TargetLanguage: "German"}
	if _, err := Factory(ctx, Provider("unknown"), "fake-key", opts); err == nil {
		t.Error("expected error for unknown provider")
	}
}

// stub translator for exercising the fallback outcome
type stubTranslator struct {
	result string
	err    error
}

func (s *stubTranslator) Translate(ctx context.Context, text string) (string, error) {
	return s.result, s.err
}

func TestTranslateSegmentSuccess(t *testing.T) {
	ctx := context.Background()
	outcome := TranslateSegment(ctx, &stubTranslator{result: "hola"}, "hello")

	if outcome.UsedFallback {
		t.Error("expected no fallback")
	}
	if outcome.Text != "hola" {
		t.Errorf("Text = %q, want %q", outcome.Text, "hola")
	}
	if outcome.Err != nil {
		t.Errorf("Err = %v, want nil", outcome.Err)
	}
}

func TestTranslateSegmentFallsBackOnError(t *testing.T) {
	ctx := context.Background()
	stub := &stubTranslator{err: fmt.Errorf("rate limited")}
	outcome := TranslateSegment(ctx, stub, "hello")

	if !outcome.UsedFallback {
		t.Error("expected fallback")
	}
	if outcome.Text != "hello" {
		t.Errorf("fallback Text = %q, want original %q", outcome.Text, "hello")
	}
	if outcome.Err == nil {
		t.Error("expected recorded error")
	}
}

func TestTranslateSegmentFallsBackOnEmptyResult(t *testing.T) {
	ctx := context.Background()
	outcome := TranslateSegment(ctx, &stubTranslator{result: "   "}, "hello")

	if !outcome.UsedFallback {
		t.Error("expected fallback for blank translation")
	}
	if outcome.Text != "hello" {
		t.Errorf("fallback Text = %q, want original", outcome.Text)
	}
}

func TestBuildPrompt(t *testing.T) {
	opts := Options{InputLanguage: "English", TargetLanguage: "Khmer"}
	prompt := BuildPrompt(opts, "Good morning")

	if !strings.Contains(prompt, "English") || !strings.Contains(prompt, "Khmer") {
		t.Errorf("prompt missing languages: %q", prompt)
	}
	if !strings.Contains(prompt, "Good morning") {
		t.Errorf("prompt missing source text: %q", prompt)
	}
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain text", "plain text"},
		{"```\nwrapped\n```", "wrapped"},
		{"```text\nwrapped\n```", "wrapped"},
		{"  padded  ", "padded"},
	}

	for _, tt := range tests {
		if got := cleanResponse(tt.input); got != tt.want {
			t.Errorf("cleanResponse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
