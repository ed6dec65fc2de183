package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/tracker"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

// setupValues holds the first-run answers.
type setupValues struct {
	theme    string
	strategy string
	budget   string
}

// NewSetupForm builds the first-run form. It is shared with `tally setup`.
func NewSetupForm(themeName, strategy, budget *string) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to tally").
				Description("A few preferences, then you are on the dashboard.\nRun `tally setup` anytime to change them."),

			huh.NewInput().
				Title("Default budget").
				Description("Applied when tally starts. Leave blank to set it each time.").
				Placeholder("e.g. 1500").
				Value(budget).
				Validate(validateOptionalAmount),

			huh.NewSelect[string]().
				Title("Expense calculation").
				Options(
					huh.NewOption("Simple (plain sum)", "simple"),
					huh.NewOption("Advanced (sum plus markup)", "advanced"),
				).
				Value(strategy),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(themeName),
		),
	).WithTheme(huh.ThemeDracula())
}

func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := tracker.ParseAmount(s)
	return err
}

func newSetupForm(vals *setupValues) *huh.Form {
	return NewSetupForm(&vals.theme, &vals.strategy, &vals.budget)
}

// ApplySetup stores the answers in cfg.
func ApplySetup(cfg *config.Config, themeName, strategy, budget string) error {
	cfg.Appearance.Theme = themeName
	cfg.General.Strategy = strategy

	budget = strings.TrimSpace(budget)
	if budget == "" {
		cfg.General.DefaultBudget = nil
		return nil
	}
	amount, err := tracker.ParseAmount(budget)
	if err != nil {
		return err
	}
	f := amount.InexactFloat64()
	cfg.General.DefaultBudget = &f
	return nil
}

func (a *App) saveSetupConfig() error {
	if err := ApplySetup(&a.cfg, a.setupVals.theme, a.setupVals.strategy, a.setupVals.budget); err != nil {
		return err
	}
	theme.SetActive(a.cfg.Appearance.Theme)

	if s, err := expense.StrategyByName(a.cfg.General.Strategy, a.cfg.Markup()); err == nil {
		a.tracker.SetStrategy(s)
	}
	if b, ok := a.cfg.DefaultBudget(); ok {
		if _, err := a.tracker.SetBudget(b.String()); err != nil {
			return err
		}
	}
	return a.saveConfig(a.cfg)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		if err := a.saveSetupConfig(); err != nil {
			a.modal = "Could not save settings: " + err.Error()
		}
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}
