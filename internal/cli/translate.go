package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/khmerdub/subvoice/internal/audio"
	"github.com/khmerdub/subvoice/internal/pipeline"
	"github.com/khmerdub/subvoice/internal/transcribe"
	"github.com/khmerdub/subvoice/internal/translate"
	"github.com/khmerdub/subvoice/internal/video"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [media_file]",
	Short: "Transcribe a media file and translate the subtitles using AI",
	Long: `Transcribe the audio of a video or audio file and translate each
subtitle segment to the target language. The result is written as an
SRT file.

Segments are translated one at a time, in order. If a single segment
fails to translate, the original text is kept and a warning is printed;
the run continues.

Examples:
  subvoice translate video.mp4 --target-language khmer
  subvoice translate talk.mp3 -t spanish -o talk.es.srt
  subvoice translate video.mp4 -t japanese --provider anthropic`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		String("provider", "gemini", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		String("transcribe-provider", "openai", "Transcription provider (openai, gemini)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "Translation API key (or set the provider's env var)")
	translateCmd.Flags().
		String("transcribe-api-key", "", "Transcription API key (or set the provider's env var)")
	translateCmd.Flags().
		String("model", "", "Model for translation (provider-specific, uses sensible defaults)")
	translateCmd.Flags().
		String("transcribe-model", "", "Model for transcription (provider-specific)")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	targetLang, _ := cmd.Flags().GetString("target-language")
	providerStr, _ := cmd.Flags().GetString("provider")
	transcribeProviderStr, _ := cmd.Flags().GetString("transcribe-provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	transcribeAPIKey, _ := cmd.Flags().GetString("transcribe-api-key")
	model, _ := cmd.Flags().GetString("model")
	transcribeModel, _ := cmd.Flags().GetString("transcribe-model")
	outputPath, _ := cmd.Flags().GetString("output")
	inputLang, _ := cmd.Flags().GetString("language")

	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf(
			"unsupported file type: %s (expected audio or video file)",
			filepath.Ext(mediaPath),
		)
	}

	if inputLang != "" &&
		strings.EqualFold(
			strings.TrimSpace(inputLang),
			strings.TrimSpace(targetLang),
		) {
		return fmt.Errorf(
			"input language %q and target language %q cannot be the same",
			inputLang,
			targetLang,
		)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
		outputPath = fmt.Sprintf("%s.%s.srt", baseName, targetLang)
	}

	apiKey, err := resolveAPIKey(apiKey, providerStr)
	if err != nil {
		return err
	}
	transcribeAPIKey, err = resolveAPIKey(transcribeAPIKey, transcribeProviderStr)
	if err != nil {
		return err
	}

	transcriber, err := transcribe.Factory(
		ctx,
		transcribe.Provider(transcribeProviderStr),
		transcribeAPIKey,
		transcribe.Options{
			Language: inputLang,
			Model:    transcribeModel,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create transcriber: %w", err)
	}

	translator, err := translate.Factory(
		ctx,
		translate.Provider(providerStr),
		apiKey,
		translate.Options{
			InputLanguage:  inputLang,
			TargetLanguage: targetLang,
			Model:          model,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create translator: %w", err)
	}

	logger.Infow("Starting subtitle translation",
		"input", mediaPath,
		"output", outputPath,
		"target_language", targetLang,
		"provider", providerStr,
		"transcribe_provider", transcribeProviderStr,
	)

	task, err := pipeline.NewTranscription(pipeline.TranscriptionConfig{
		MediaPath:   mediaPath,
		OutputPath:  outputPath,
		Extractor:   video.NewProcessor(),
		Transcriber: transcriber,
		Translator:  translator,
	})
	if err != nil {
		return err
	}

	task.Start(ctx)
	if err := consumeEvents(task.Events()); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitles translated successfully: %s\n", absOutput)

	return nil
}

// resolveAPIKey falls back to the provider's environment variable when no
// key was given on the command line.
func resolveAPIKey(flagValue, provider string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	var envVar string
	switch provider {
	case "gemini":
		envVar = "GEMINI_API_KEY"
	case "openai":
		envVar = "OPENAI_API_KEY"
	case "anthropic":
		envVar = "ANTHROPIC_API_KEY"
	default:
		return "", fmt.Errorf("unsupported provider: %s", provider)
	}

	if key := os.Getenv(envVar); key != "" {
		return key, nil
	}
	return "", fmt.Errorf(
		"API key is required: use --api-key flag or set %s environment variable",
		envVar,
	)
}

// consumeEvents drains a task's event channel, logging progress and
// returning an error for a failed terminal event.
func consumeEvents(events <-chan pipeline.Event) error {
	for ev := range events {
		switch ev.Kind {
		case pipeline.EventProgress:
			logger.Infow(ev.Message)
		case pipeline.EventDone:
			logger.Infow(ev.Message)
		case pipeline.EventFailed:
			return fmt.Errorf("%s", ev.Message)
		}
	}
	return nil
}
