package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/tracker"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldStrategy
	settingsFieldMarkup
	settingsFieldBudget
	settingsFieldLogLevel
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save or parse failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := a.cfg
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldStrategy:
		ti.Placeholder = strings.Join(expense.StrategyNames, " or ")
		ti.SetValue(cfg.General.Strategy)
	case settingsFieldMarkup:
		ti.Placeholder = "0.10 (fraction added by the advanced strategy)"
		ti.SetValue(cfg.Markup().String())
	case settingsFieldBudget:
		ti.Placeholder = "1500 (leave empty to clear)"
		if b, ok := cfg.DefaultBudget(); ok {
			ti.SetValue(b.StringFixed(2))
		}
	case settingsFieldLogLevel:
		ti.Placeholder = "debug, info, warn, error"
		ti.SetValue(cfg.Log.Level)
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies the edited field to the config, the live session and
// the config file.
func (a *App) settingsSave() {
	cfg := a.cfg
	val := strings.TrimSpace(a.settings.input.Value())
	a.settings.saveErr = nil

	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Valid(val) {
			a.settings.saveErr = fmt.Errorf("unknown theme %q", val)
			return
		}
		cfg.Appearance.Theme = val
		theme.SetActive(val)
	case settingsFieldStrategy:
		s, err := expense.StrategyByName(val, cfg.Markup())
		if err != nil {
			a.settings.saveErr = err
			return
		}
		cfg.General.Strategy = s.Name()
		a.tracker.SetStrategy(s)
	case settingsFieldMarkup:
		m, err := strconv.ParseFloat(val, 64)
		if err != nil || m < 0 {
			a.settings.saveErr = errors.New("markup must be a non-negative number")
			return
		}
		cfg.General.AdvancedMarkup = m
		if s, err := expense.StrategyByName(cfg.General.Strategy, cfg.Markup()); err == nil {
			a.tracker.SetStrategy(s)
		}
	case settingsFieldBudget:
		if val == "" {
			cfg.General.DefaultBudget = nil
			break
		}
		amount, err := tracker.ParseAmount(val)
		if err != nil {
			a.settings.saveErr = err
			return
		}
		f := amount.InexactFloat64()
		cfg.General.DefaultBudget = &f
	case settingsFieldLogLevel:
		lvl, err := zerolog.ParseLevel(val)
		if err != nil {
			a.settings.saveErr = err
			return
		}
		cfg.Log.Level = val
		zerolog.SetGlobalLevel(lvl)
	}

	a.cfg = cfg
	a.settings.saveErr = a.saveConfig(cfg)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	budget := "(not set)"
	if b, ok := cfg.DefaultBudget(); ok {
		budget = cli.FormatCost(b)
	}

	fields := []field{
		{"Theme", cfg.Appearance.Theme},
		{"Strategy", cfg.General.Strategy},
		{"Advanced Markup", cli.FormatPercent(cfg.Markup().InexactFloat64())},
		{"Default Budget", budget},
		{"Log Level", cfg.Log.Level},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			padLen := components.CardInnerWidth(cw) - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Not saved: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:     ") + valueStyle.Render(a.cfgPath) + "\n")
	infoBody.WriteString(labelStyle.Render("Expenses logged: ") + valueStyle.Render(cli.FormatNumber(int64(len(a.tracker.Expenses())))) + "\n")
	infoBody.WriteString(labelStyle.Render("Goals:           ") + valueStyle.Render(cli.FormatNumber(int64(len(a.tracker.Goals())))) + "\n")
	infoBody.WriteString(labelStyle.Render("Observers:       ") + valueStyle.Render(strconv.Itoa(a.tracker.Ledger().ObserverCount())))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Session", infoBody.String(), cw))

	return b.String()
}
