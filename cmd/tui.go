package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/logging"
	"github.com/theirongolddev/tally/internal/tui"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// The dashboard owns the terminal, so logs go to a file.
	s, err := newSession(cmd.Context(), sessionOptions{LogFile: logging.DefaultFile()})
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	theme.SetActive(s.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Options{
		Tracker:    s.tracker,
		Feed:       s.feed,
		Config:     s.cfg,
		NeedSetup:  !configExists(),
		SaveConfig: saveConfig,
		ConfigPath: configPath(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	final, err := p.Run()
	if m, ok := final.(tui.App); ok {
		m.Close()
	} else {
		app.Close()
	}
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
