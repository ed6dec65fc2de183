// Package cmd implements the tally CLI commands.
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/config"
)

var (
	flagConfig      string
	flagLogLevel    string
	flagMetricsAddr string
	flagStrategy    string
	flagBudget      string
)

var rootCmd = &cobra.Command{
	Use:          "tally",
	Short:        "Terminal budget tracker",
	Long:         "Set a budget, log fixed and variable expenses, and watch what is left.",
	RunE:         runTUI,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/tally/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9464")
	rootCmd.PersistentFlags().StringVar(&flagStrategy, "strategy", "", "Expense calculation: simple or advanced")
	rootCmd.PersistentFlags().StringVarP(&flagBudget, "budget", "b", "", "Starting budget for this session")
}

// loadConfig reads --config or the default config file.
func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.LoadFrom(flagConfig)
	}
	return config.Load()
}

func saveConfig(cfg config.Config) error {
	if flagConfig != "" {
		return config.SaveTo(flagConfig, cfg)
	}
	return config.Save(cfg)
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

func configExists() bool {
	if flagConfig != "" {
		_, err := os.Stat(flagConfig)
		return err == nil
	}
	return config.Exists()
}
