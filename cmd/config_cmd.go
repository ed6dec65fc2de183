package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/logging"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "  Config file: %s\n", configPath())
	if configExists() {
		fmt.Fprintln(w, "  Status: loaded")
	} else {
		fmt.Fprintln(w, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [General]")
	if b, ok := cfg.DefaultBudget(); ok {
		fmt.Fprintf(w, "    Default budget:  %s\n", cli.FormatCost(b))
	} else {
		fmt.Fprintln(w, "    Default budget:  not set")
	}
	fmt.Fprintf(w, "    Strategy:        %s\n", cfg.General.Strategy)
	fmt.Fprintf(w, "    Advanced markup: %s\n", cli.FormatPercent(cfg.Markup().InexactFloat64()))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Appearance]")
	fmt.Fprintf(w, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Log]")
	fmt.Fprintf(w, "    Level: %s\n", cfg.Log.Level)
	file := cfg.Log.File
	if file == "" {
		file = logging.DefaultFile() + " (dashboard only)"
	}
	fmt.Fprintf(w, "    File:  %s\n", file)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  [Metrics]")
	if cfg.Metrics.Addr != "" {
		fmt.Fprintf(w, "    Address: %s\n", cfg.Metrics.Addr)
	} else {
		fmt.Fprintln(w, "    Address: disabled")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "  Run `tally setup` to reconfigure.")
	return nil
}
