package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/tracker"
	"github.com/theirongolddev/tally/internal/tui/components"
	"github.com/theirongolddev/tally/internal/tui/theme"
)

type formKind int

const (
	formBudget formKind = iota
	formExpense
	formGoal
)

// entryForm is an inline form of text inputs. Enter advances to the next
// field and submits from the last one.
type entryForm struct {
	kind   formKind
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
}

func newFormInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	ti.Width = 32
	return ti
}

func newEntryForm(kind formKind) *entryForm {
	f := &entryForm{kind: kind}
	switch kind {
	case formBudget:
		f.title = "Set Budget"
		f.labels = []string{"Budget"}
		f.inputs = []textinput.Model{newFormInput("e.g. 1500")}
	case formExpense:
		f.title = "New Expense"
		f.labels = []string{"Name", "Amount", "Kind"}
		f.inputs = []textinput.Model{
			newFormInput("e.g. Groceries"),
			newFormInput("e.g. 42.50"),
			newFormInput("variable or fixed"),
		}
	case formGoal:
		f.title = "New Savings Goal"
		f.labels = []string{"Goal", "Amount"}
		f.inputs = []textinput.Model{
			newFormInput("e.g. Vacation"),
			newFormInput("e.g. 800"),
		}
	}
	f.inputs[0].Focus()
	return f
}

func (f *entryForm) setFocus(i int) tea.Cmd {
	if i < 0 || i >= len(f.inputs) {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[i].Focus()
}

func (f *entryForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (a App) openForm(kind formKind) (tea.Model, tea.Cmd) {
	a.form = newEntryForm(kind)
	return a, textinput.Blink
}

func (a App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := a.form

	switch msg.String() {
	case "esc":
		a.form = nil
		return a, nil
	case "tab", "down":
		return a, f.setFocus((f.focus + 1) % len(f.inputs))
	case "shift+tab", "up":
		return a, f.setFocus((f.focus - 1 + len(f.inputs)) % len(f.inputs))
	case "enter":
		if f.focus < len(f.inputs)-1 {
			return a, f.setFocus(f.focus + 1)
		}
		return a.submitForm()
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return a, cmd
}

// submitForm hands the raw input to the tracker. A validation failure opens
// the modal and leaves the form in place for correction.
func (a App) submitForm() (tea.Model, tea.Cmd) {
	f := a.form

	switch f.kind {
	case formBudget:
		amount, err := a.tracker.SetBudget(f.value(0))
		if err != nil {
			a.modal = tracker.UserMessage(err)
			return a, nil
		}
		a.notice = "Budget set to " + cli.FormatCost(amount)

	case formExpense:
		kind, err := expense.ParseKind(f.value(2))
		if err != nil {
			a.modal = fmt.Sprintf("Unknown expense kind %q. Use fixed or variable.", f.value(2))
			return a, nil
		}
		rec, err := a.tracker.AddExpense(f.value(0), f.value(1), kind)
		if err != nil {
			a.modal = tracker.UserMessage(err)
			return a, nil
		}
		a.notice = "Added " + rec.Display()

	case formGoal:
		g, err := a.tracker.SetGoal(f.value(0), f.value(1))
		if err != nil {
			a.modal = tracker.UserMessage(err)
			return a, nil
		}
		a.notice = fmt.Sprintf("Goal %s: %s", g.Name, cli.FormatCost(g.Amount))
	}

	a.form = nil
	return a, nil
}

func (a App) renderForm(cw int) string {
	t := theme.Active
	f := a.form

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	focusStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	for i, in := range f.inputs {
		label := fmt.Sprintf("%-8s", f.labels[i])
		if i == f.focus {
			b.WriteString(focusStyle.Render("▸ " + label))
		} else {
			b.WriteString(labelStyle.Render("  " + label))
		}
		b.WriteString(" ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[Enter] next/submit  [Tab] switch field  [Esc] cancel"))

	w := cw
	if w > 72 {
		w = 72
	}
	return components.ContentCard(f.title, b.String(), w)
}

func (a App) viewModal() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Background(t.Surface).
		Padding(1, 3)

	msgStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	body := msgStyle.Render(a.modal) + "\n\n" + dimStyle.Render("Press any key to continue")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}
