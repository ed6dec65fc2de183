// Package tui provides the interactive Bubble Tea dashboard for tally.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/config"
	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/feed"
	"github.com/theirongolddev/tally/internal/tracker"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

// EventMsg carries one feed event into the update loop.
type EventMsg struct {
	Event feed.Event
}

type feedClosedMsg struct{}

// Options configures a new App.
type Options struct {
	Tracker *tracker.Tracker
	Feed    *feed.Feed
	Config  config.Config

	// NeedSetup shows the first-run form before the dashboard.
	NeedSetup bool

	// SaveConfig persists preference changes. Defaults to config.Save.
	SaveConfig func(config.Config) error
	// ConfigPath is where SaveConfig writes, shown on the settings tab.
	// Defaults to config.Path().
	ConfigPath string
}

// App is the root Bubble Tea model.
type App struct {
	tracker *tracker.Tracker
	feed    *feed.Feed
	panel   *panel

	events   <-chan feed.Event
	unsub    func()
	activity []feed.Event

	cfg        config.Config
	cfgPath    string
	saveConfig func(config.Config) error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	form   *entryForm
	modal  string // validation message; any key dismisses it
	notice string

	// Per-tab state
	expState expensesState
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5
	activityLimit    = 200
)

// NewApp creates the dashboard and subscribes it to the tracker's ledger.
func NewApp(opts Options) App {
	l := opts.Tracker.Ledger()
	p := newPanel(l.Snapshot())
	l.Subscribe(p)

	save := opts.SaveConfig
	if save == nil {
		save = config.Save
	}
	path := opts.ConfigPath
	if path == "" {
		path = config.Path()
	}

	a := App{
		tracker:    opts.Tracker,
		feed:       opts.Feed,
		panel:      p,
		cfg:        opts.Config,
		cfgPath:    path,
		saveConfig: save,
		needSetup:  opts.NeedSetup,
	}

	if opts.Feed != nil {
		a.events, a.unsub = opts.Feed.Subscribe(64)
	}

	if a.needSetup {
		a.setupVals = setupValues{
			theme:    opts.Config.Appearance.Theme,
			strategy: opts.Config.General.Strategy,
		}
		a.setupForm = newSetupForm(&a.setupVals)
	}
	return a
}

// Close unsubscribes from the feed.
func (a App) Close() {
	if a.unsub != nil {
		a.unsub()
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnableMouseCellMotion}
	if a.events != nil {
		cmds = append(cmds, waitForEvent(a.events))
	}
	if a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// waitForEvent blocks until the next feed event arrives.
func waitForEvent(ch <-chan feed.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return feedClosedMsg{}
		}
		return EventMsg{Event: ev}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case EventMsg:
		a.activity = append(a.activity, msg.Event)
		if len(a.activity) > activityLimit {
			a.activity = a.activity[len(a.activity)-activityLimit:]
		}
		return a, waitForEvent(a.events)

	case feedClosedMsg:
		a.events = nil
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.modal != "" || a.form != nil || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabExpenses {
				a.expState.moveCursor(-1)
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabExpenses {
				a.expState.moveCursor(1)
				a.expState.clamp(len(a.visibleExpenses()))
			}
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	if a.form != nil {
		var cmd tea.Cmd
		f := a.form
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return a, cmd
	}
	if a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// The validation modal blocks everything until dismissed
	if a.modal != "" {
		a.modal = ""
		return a, nil
	}

	if a.form != nil {
		return a.updateForm(msg)
	}

	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case tabExpenses:
		if m, cmd, ok := a.updateExpensesKey(key); ok {
			return m, cmd
		}
	case tabSettings:
		switch key {
		case "j", "down":
			if a.settings.cursor < settingsFieldCount-1 {
				a.settings.cursor++
			}
			return a, nil
		case "k", "up":
			if a.settings.cursor > 0 {
				a.settings.cursor--
			}
			return a, nil
		case "enter":
			return a.settingsStartEdit()
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "b":
		return a.openForm(formBudget)
	case "n":
		return a.openForm(formExpense)
	case "t":
		return a.openForm(formGoal)
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.modal != "" {
		return a.viewModal()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  tally needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o e g a x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move through lists"},
			{"f", "Cycle expense kind filter"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"b", "Set budget"},
			{"n", "New expense"},
			{"t", "New savings goal"},
			{"Enter", "Next field / Submit / Edit"},
			{"Esc", "Cancel"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	notice := a.notice
	if notice == "" && len(a.activity) > 0 {
		notice = describeEvent(a.activity[len(a.activity)-1])
	}
	statusBar := components.RenderStatusBar(w, notice, a.panel.updates, a.panel.overBudget())

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	if a.form != nil {
		content = a.renderForm(cw)
	} else {
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabExpenses:
			content = a.renderExpensesTab(cw, contentH)
		case tabGoals:
			content = a.renderGoalsTab(cw)
		case tabActivity:
			content = a.renderActivityTab(cw, contentH)
		case tabSettings:
			content = a.renderSettingsTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

const (
	tabOverview = iota
	tabExpenses
	tabGoals
	tabActivity
	tabSettings
)

func kindLabel(k expense.Kind) string {
	if k == expense.Fixed {
		return "Fixed"
	}
	return "Variable"
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
