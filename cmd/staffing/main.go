// Package main provides the staffing command line: CV standardization,
// consultant/tender matching and match validation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/richat-staffing/internal/config"
	"github.com/jonathan/richat-staffing/internal/logger"
)

var (
	configPath string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "staffing",
	Short: "Richat Partners staffing toolkit",
	Long: `Standardizes consultant CVs into the Richat canonical format and ranks
consultants against tenders by availability and skill fit.

Configuration is read from --config (JSON, YAML or TOML), a .env file and
STAFFING_* environment variables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable summaries")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	l, err := logger.New(loaded.LogJSON, loaded.Debug())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	cfg, log = loaded, l
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if log != nil {
		_ = log.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
