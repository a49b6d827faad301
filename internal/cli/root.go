package cli

import (
	"github.com/khmerdub/subvoice/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subvoice",
	Short: "AI-powered subtitle translation and voice-over for videos",
	Long: `Subvoice is a CLI tool that uses AI to translate video subtitles
and synthesize voice-over audio aligned to subtitle timelines.

It supports multiple transcription, translation, and speech providers.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Source language code (e.g., en, es, fr)")
}
