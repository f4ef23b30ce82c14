package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mathlib-ci/prsummary/internal/config"
	"github.com/mathlib-ci/prsummary/internal/logging"
	"github.com/mathlib-ci/prsummary/internal/run"
)

var rootCmd = &cobra.Command{
	Use:   "prsummary",
	Short: "AI summary and sorry tracking for Lean pull requests",
	Long: `prsummary reads a unified diff, tracks added/removed/moved "sorry"
placeholders in Lean files, asks an AI model for a map-reduce summary of
the changes, and posts the combined report as a PR comment.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := logging.New(logging.ForLevel(config.LogLevel()))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() { <-sigs; cancel() }()

		return run.New(run.OptionsFromConfig(), logger).Run(ctx)
	},
}

func main() {
	flags := rootCmd.PersistentFlags()
	flags.Int(config.KeyPRNumber, 0, "pull request number")
	flags.String(config.KeyDiffPath, "pr.diff", "path to the unified diff to analyze")
	flags.String(config.KeyGitHubRepository, "", "target repository as owner/repo")
	flags.String(config.KeyStyleGuidePath, "", "optional style guide to check the diff against")
	flags.String(config.KeyLLMModel, "", "AI model identifier")
	flags.String(config.KeyLogLevel, "info", "log level (info or debug)")

	config.Init(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("prsummary: %v", err)
	}
}
