package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mentallify/assistant/internal/config"
	"github.com/mentallify/assistant/internal/logging"
	"github.com/mentallify/assistant/internal/symptom"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "selfcheck",
		Short:         "Terminal client for the Mentallify assistant",
		Long:          "Runs the guided yes/no self-check and free-text chat against a Mentallify server, falling back to built-in data when it is unreachable. Results are informational only.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("keywords", "", "Keyword YAML file (default KEYWORDS_PATH or built-in lists)")
	root.PersistentFlags().Bool("verbose", false, "Log fallbacks and transport errors to stderr")

	root.AddCommand(newChatCmd())
	root.AddCommand(newScoreCmd())
	root.SetContext(context.Background())
	return root
}

// loadConfig reads the shared environment configuration.
func loadConfig(cmd *cobra.Command) (*config.App, error) {
	return config.Load(cmd.Context())
}

func newLogger(cmd *cobra.Command, cfg *config.App) zerolog.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return logging.New("selfcheck", cfg.Env, "debug")
	}
	return zerolog.New(os.Stderr).Level(zerolog.ErrorLevel)
}

// loadKeywords prefers --keywords, then KEYWORDS_PATH, then the built-in lists.
func loadKeywords(cmd *cobra.Command, cfg *config.App, logger zerolog.Logger) symptom.KeywordSet {
	path, _ := cmd.Flags().GetString("keywords")
	if path == "" {
		path = cfg.Data.KeywordsPath
	}
	ks, err := symptom.LoadKeywords(path)
	if err != nil {
		logger.Debug().Err(err).Str("path", path).Msg("using built-in keywords")
		return symptom.DefaultKeywords()
	}
	return ks
}
