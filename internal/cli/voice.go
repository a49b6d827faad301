package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/khmerdub/subvoice/internal/pipeline"
	"github.com/khmerdub/subvoice/internal/subtitle"
	"github.com/khmerdub/subvoice/internal/tts"
	"github.com/spf13/cobra"
)

var voiceCmd = &cobra.Command{
	Use:   "voice [subtitle_file]",
	Short: "Generate voice-over audio from a subtitle file using AI",
	Long: `Synthesize speech for each subtitle segment and assemble a single
audio track that follows the subtitle timeline: silence fills the gaps
between segments, and each clip starts where its subtitle starts.

Output format follows the output file extension (mp3 or wav); any other
extension falls back to mp3.

Examples:
  subvoice voice video.km.srt
  subvoice voice video.km.srt -o voiceover.wav
  subvoice voice video.km.srt --provider openai --voice alloy`,
	Args: cobra.ExactArgs(1),
	RunE: runVoice,
}

func init() {
	rootCmd.AddCommand(voiceCmd)

	voiceCmd.Flags().
		String("provider", "gemini", "Speech provider (gemini, openai)")
	voiceCmd.Flags().
		StringP("api-key", "k", "", "API key (or set the provider's env var)")
	voiceCmd.Flags().
		String("voice", "", "Voice name (provider-specific, uses sensible defaults)")
	voiceCmd.Flags().
		String("model", "", "Model for speech synthesis (provider-specific)")
}

func runVoice(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	ctx := context.Background()

	providerStr, _ := cmd.Flags().GetString("provider")
	apiKey, _ := cmd.Flags().GetString("api-key")
	voice, _ := cmd.Flags().GetString("voice")
	model, _ := cmd.Flags().GetString("model")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}
	if ext := strings.ToLower(filepath.Ext(subtitlePath)); ext != ".srt" {
		return fmt.Errorf("unsupported subtitle format %q: use .srt", ext)
	}

	if outputPath == "" {
		baseName := strings.TrimSuffix(subtitlePath, filepath.Ext(subtitlePath))
		outputPath = baseName + ".mp3"
	}

	apiKey, err := resolveAPIKey(apiKey, providerStr)
	if err != nil {
		return err
	}

	subtitleText, err := subtitle.ReadFile(subtitlePath)
	if err != nil {
		return fmt.Errorf("failed to read subtitle file: %w", err)
	}

	synthesizer, err := tts.Factory(
		ctx,
		tts.Provider(providerStr),
		apiKey,
		tts.Options{
			Language: language,
			Voice:    voice,
			Model:    model,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create synthesizer: %w", err)
	}

	logger.Infow("Starting voice generation",
		"input", subtitlePath,
		"output", outputPath,
		"provider", providerStr,
	)

	task, err := pipeline.NewSynthesis(pipeline.SynthesisConfig{
		SubtitleText: subtitleText,
		OutputPath:   outputPath,
		Synthesizer:  synthesizer,
	})
	if err != nil {
		return err
	}

	task.Start(ctx)
	if err := consumeEvents(task.Events()); err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Voice audio generated successfully: %s\n", absOutput)

	return nil
}
