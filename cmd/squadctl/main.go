// Command squadctl is the operator CLI for the Aura squads backend.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kezzyngotho/aura/internal/config"
	"github.com/kezzyngotho/aura/internal/logging"
)

var verbose bool

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "squadctl",
	Short: "Operate the Aura squads backend",
	Long: `squadctl runs maintenance and inspection tasks against the same
storage and LLM backends the API server uses. Configuration is read from
the environment and an optional .env file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(migrateCmd, templatesCmd, classifyCmd, analyticsCmd)
}

// setup loads configuration and a logger for a subcommand
func setup() (*config.Config, *zap.Logger, error) {
	_ = godotenv.Load()
	cfg := config.Load()

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.AppEnv)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}
