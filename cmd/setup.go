package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, _ := loadConfig()

	themeName := cfg.Appearance.Theme
	strategy := cfg.General.Strategy
	var budget string
	if b, ok := cfg.DefaultBudget(); ok {
		budget = b.StringFixed(2)
	}

	if err := tui.NewSetupForm(&themeName, &strategy, &budget).Run(); err != nil {
		return err
	}
	if err := tui.ApplySetup(&cfg, themeName, strategy, budget); err != nil {
		return err
	}

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Saved to %s\n", configPath())
	fmt.Fprintln(w, "  Run `tally setup` anytime to reconfigure.")
	fmt.Fprintln(w)

	return nil
}
