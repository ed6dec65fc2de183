package cmd

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/tally/internal/cli"
	"github.com/theirongolddev/tally/internal/expense"
	"github.com/theirongolddev/tally/internal/pipeline"
)

var (
	flagTop   int
	flagQuiet bool
	flagKind  string
)

var reportCmd = &cobra.Command{
	Use:   "report FILE...",
	Short: "Load expense files and print a budget report",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().IntVar(&flagTop, "top", 5, "Number of largest expenses to list")
	reportCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	reportCmd.Flags().StringVar(&flagKind, "kind", "variable", "Kind for rows that do not name one: fixed or variable")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	defaultKind, err := expense.ParseKind(flagKind)
	if err != nil {
		return err
	}

	s, err := newSession(cmd.Context(), sessionOptions{Console: cmd.ErrOrStderr(), DefaultLevel: "warn"})
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	result := loadFiles(cmd.ErrOrStderr(), args, defaultKind)
	s.tracker.Import(result.Records)

	return writeReport(cmd.OutOrStdout(), s, result)
}

// loadFiles parses the files with progress on stderr.
func loadFiles(progress io.Writer, paths []string, defaultKind expense.Kind) *pipeline.LoadResult {
	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		fmt.Fprintf(progress, "\r  Parsing [%d/%d]", current, total)
	}

	result := pipeline.Load(paths, defaultKind, progressFn)

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(progress, "\r  Parsed %s expenses across %d files    \n",
			formatNumber(int64(len(result.Records))),
			result.ParsedFiles,
		)
		if result.RowErrors > 0 {
			fmt.Fprintf(progress, "  Skipped %d invalid rows\n", result.RowErrors)
		}
	}
	return result
}

func writeReport(w io.Writer, s *session, result *pipeline.LoadResult) error {
	if len(result.Records) == 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  No expenses found in the given files.")
		return nil
	}

	stats := s.tracker.Summary()

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(fmt.Sprintf("BUDGET REPORT  %d files", result.TotalFiles)))
	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderTable(cli.SummaryTable(stats)))

	if stats.Budget.IsPositive() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+cli.RenderBudgetBar(stats.TotalExpenses, stats.Budget, 40))
		fmt.Fprintln(w, "  Remaining "+cli.RenderRemaining(stats.Remaining))
	}

	running := make([]float64, 0, len(result.Records))
	sum := decimal.Zero
	for _, r := range result.Records {
		sum = sum.Add(r.Amount)
		running = append(running, sum.InexactFloat64())
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Running total  %s\n", cli.RenderSparkline(running))

	kinds, err := s.journal.KindBreakdown()
	if err != nil {
		return fmt.Errorf("kind breakdown: %w", err)
	}
	fmt.Fprint(w, cli.RenderTable(cli.KindTable(kinds)))
	for _, k := range kinds {
		fmt.Fprintln(w, cli.RenderHorizontalBar(k.Kind, k.Total.InexactFloat64(), stats.TotalExpenses.InexactFloat64(), 30))
	}

	top := pipeline.TopExpenses(result.Records, flagTop)
	fmt.Fprint(w, cli.RenderTable(cli.ExpenseTable(fmt.Sprintf("Top %d Expenses", len(top)), top)))

	files := cli.Table{
		Title:   "Files",
		Headers: []string{"File", "Shape", "Rows", "Skipped"},
	}
	for _, f := range result.Files {
		shape := string(f.Shape)
		if f.Err != nil {
			shape = "error"
		}
		files.Rows = append(files.Rows, []string{
			f.Path,
			shape,
			formatNumber(int64(len(f.Records))),
			formatNumber(int64(len(f.Rejected))),
		})
	}
	fmt.Fprint(w, cli.RenderTable(files))

	return nil
}

func formatNumber(n int64) string {
	return cli.FormatNumber(n)
}
