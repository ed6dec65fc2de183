package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/ledger"
	"github.com/theirongolddev/tally/internal/pipeline"
	"github.com/theirongolddev/tally/internal/tracker"
)

const shellHelp = `Read commands from stdin, one per line:

  budget AMOUNT                 set the budget
  expense NAME AMOUNT [KIND]    log an expense (KIND is fixed or variable)
  goal NAME AMOUNT              add a savings goal
  import FILE...                load expenses from YAML or JSON files
  strategy [simple|advanced]    show or change the calculation strategy
  summary | expenses | goals | kinds | events [N] | help | quit`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Line-oriented budget session on stdin",
	Long:  shellHelp,
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, _ []string) error {
	s, err := newSession(cmd.Context(), sessionOptions{Console: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	return newShell(s, cmd.InOrStdin(), cmd.OutOrStdout()).run()
}

type shell struct {
	s   *session
	in  *bufio.Scanner
	out io.Writer
}

// newShell subscribes a printer to the ledger so every change echoes the
// new position, the same way the dashboard panel re-renders.
func newShell(s *session, in io.Reader, out io.Writer) *shell {
	sh := &shell{s: s, in: bufio.NewScanner(in), out: out}
	s.ledger.Subscribe(ledger.ObserverFunc(sh.printPosition))
	return sh
}

func (sh *shell) printPosition(totalExpenses, budget decimal.Decimal) {
	fmt.Fprintf(sh.out, "  Expenses %s · Budget %s · Remaining %s\n",
		cli.FormatCost(totalExpenses), cli.FormatCost(budget), cli.FormatRemaining(budget.Sub(totalExpenses)))
}

func (sh *shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

func (sh *shell) run() error {
	sh.printf("tally shell. Type help for commands.\n")
	for {
		sh.printf("> ")
		if !sh.in.Scan() {
			sh.printf("\n")
			return sh.in.Err()
		}
		if quit := sh.exec(sh.in.Text()); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the shell should exit.
func (sh *shell) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]
	t := sh.s.tracker

	switch verb {
	case "quit", "exit", "q":
		return true

	case "help", "?":
		sh.printf("%s\n", shellHelp)

	case "budget":
		if _, err := t.SetBudget(strings.Join(args, "")); err != nil {
			sh.fail(err)
		}

	case "expense", "e":
		name, amount, kind := splitExpenseArgs(args)
		if _, err := t.AddExpense(name, amount, kind); err != nil {
			sh.fail(err)
		}

	case "goal":
		name, amount := splitNameAmount(args)
		g, err := t.SetGoal(name, amount)
		if err != nil {
			sh.fail(err)
			break
		}
		sh.printf("  Goal %s: %s\n", g.Name, cli.FormatCost(g.Amount))

	case "import":
		sh.importFiles(args)

	case "strategy":
		sh.strategy(args)

	case "summary":
		sh.printf("%s", cli.RenderTable(cli.SummaryTable(t.Summary())))

	case "expenses":
		sh.printf("%s", cli.RenderTable(cli.ExpenseTable("Expenses", t.Expenses())))

	case "goals":
		sh.printf("%s", cli.RenderTable(cli.GoalTable(t.Goals())))

	case "kinds":
		kinds, err := sh.s.journal.KindBreakdown()
		if err != nil {
			sh.fail(err)
			break
		}
		sh.printf("%s", cli.RenderTable(cli.KindTable(kinds)))

	case "events":
		n := 10
		if len(args) > 0 {
			if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
				n = v
			}
		}
		for _, ev := range sh.s.feed.Last(n) {
			sh.printf("  #%-4d %s %-13s total %s budget %s\n",
				ev.ID, ev.Timestamp.Local().Format("15:04:05"), ev.Type,
				cli.FormatCost(ev.Snapshot.TotalExpenses), cli.FormatCost(ev.Snapshot.Budget))
		}

	default:
		sh.printf("  Unknown command %q. Type help for commands.\n", verb)
	}
	return false
}

func (sh *shell) fail(err error) {
	sh.printf("  %s\n", tracker.UserMessage(err))
}

func (sh *shell) importFiles(paths []string) {
	if len(paths) == 0 {
		sh.printf("  Usage: import FILE...\n")
		return
	}
	result := pipeline.Load(paths, expense.Variable, nil)
	for _, f := range result.Files {
		switch {
		case f.Err != nil:
			sh.printf("  %s: %v\n", f.Path, f.Err)
		case len(f.Rejected) > 0:
			sh.printf("  %s: %d rows skipped\n", f.Path, len(f.Rejected))
		}
	}
	added := sh.s.tracker.Import(result.Records)
	sh.printf("  Imported %d expenses from %d files\n", added, result.ParsedFiles)
}

func (sh *shell) strategy(args []string) {
	t := sh.s.tracker
	if len(args) == 0 {
		sh.printf("  Strategy: %s\n", t.Strategy().Name())
		return
	}
	s, err := expense.StrategyByName(args[0], sh.s.cfg.Markup())
	if err != nil {
		sh.printf("  %v\n", err)
		return
	}
	t.SetStrategy(s)
	sh.printf("  Strategy: %s (total %s)\n", s.Name(), cli.FormatCost(s.Total(t.Expenses())))
}

// splitExpenseArgs reads NAME... AMOUNT [KIND]. The name may contain spaces.
func splitExpenseArgs(args []string) (name, amount string, kind expense.Kind) {
	kind = expense.Variable
	if n := len(args); n >= 3 {
		if k, err := expense.ParseKind(args[n-1]); err == nil {
			kind = k
			args = args[:n-1]
		}
	}
	name, amount = splitNameAmount(args)
	return name, amount, kind
}

func splitNameAmount(args []string) (name, amount string) {
	if len(args) == 0 {
		return "", ""
	}
	if len(args) == 1 {
		return "", args[0]
	}
	return strings.Join(args[:len(args)-1], " "), args[len(args)-1]
}
