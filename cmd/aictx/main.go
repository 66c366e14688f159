package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quietfold/aictx/internal/config"
	"github.com/quietfold/aictx/internal/core"
)

var BUILD_VERSION = "dev"

var (
	logger   *zap.Logger
	settings *config.Config
)

var rootCmd = &cobra.Command{
	Use:     "aictx",
	Short:   "aictx - persistent context injection for LLM queries",
	Version: BUILD_VERSION,
	Long: `aictx injects persistent, hierarchical context into prompts sent to a
language model.

A project-local .context.md is discovered by searching upward from the current
directory; a per-user global.md acts as a fallback. Both surface as labeled
sections of the system message. Before anything is sent, the assembled context
is scanned for secret-shaped content and checked against a token budget.

Queries run without an API credential are recorded to the local history file
instead of being sent.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		result, err := config.LoadFromFile(core.SettingsFile())
		if err != nil {
			return err
		}
		settings = result.Config

		logger, err = initializeLogger(settings.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		for _, loadErr := range result.Errors {
			logger.Warn("config file problem", zap.Error(loadErr))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// initializeLogger builds a file logger so command output stays clean for
// humans. Logs go to the data directory, not the terminal.
func initializeLogger(level string) (*zap.Logger, error) {
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}
	loggerConfig.ErrorOutputPaths = []string{
		core.LogFile(),
	}

	return loggerConfig.Build()
}

func main() {
	rootCmd.AddCommand(sendCmd, initCmd, clearCmd, showCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
