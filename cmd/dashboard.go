package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwise/internal/cli"
	"github.com/theirongolddev/spendwise/internal/model"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "This month's score, budget, categories and nudges",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	d, err := s.svc.Dashboard(cmd.Context(), s.userID)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPENDWISE  %s", d.Month.Start.Format("January 2006"))))
	fmt.Println()

	if d.Summary.Count == 0 {
		fmt.Println("  No expenses logged this month.")
		fmt.Println("  Add one with `spendwise add <item> <amount>`.")
		fmt.Println()
	}

	rows := [][]string{
		{"Smart Spend Score", fmt.Sprintf("%d  %s", d.Score, scoreText(d.Score, d.ScoreLabel))},
		{"---"},
		{"Spent", cli.FormatMoney(d.Summary.Total)},
		{"Needs", cli.FormatMoney(d.Summary.NeedsTotal)},
		{"Wants", cli.FormatMoney(d.Summary.WantsTotal)},
		{"Expenses", cli.FormatNumber(int64(d.Summary.Count))},
		{"---"},
	}
	if d.Budget.MonthlyBudget > 0 {
		rows = append(rows,
			[]string{"Budget", cli.FormatMoney(d.Budget.MonthlyBudget)},
			[]string{"Used", cli.RenderBudgetBar(d.Budget.Spent, d.Budget.MonthlyBudget, 20)},
			[]string{"Remaining", remainingText(d.Budget.Remaining)},
		)
	} else {
		rows = append(rows, []string{"Budget", cli.Muted("not set (spendwise budget <amount>)")})
	}
	rows = append(rows, []string{"Days left", fmt.Sprintf("%d", d.Budget.DaysRemaining)})

	history, err := s.svc.ScoreHistory(cmd.Context(), s.userID, 12)
	if err != nil {
		return err
	}
	if len(history) > 1 {
		scores := make([]float64, len(history))
		for i, h := range history {
			// newest first; the sparkline reads left to right
			scores[len(history)-1-i] = float64(h.SmartSpendScore)
		}
		rows = append(rows, []string{"Score trend",
			fmt.Sprintf("%s  %s to %s", cli.RenderSparkline(scores), history[len(history)-1].Month, history[0].Month)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	if len(d.Stats) > 0 {
		fmt.Println()
		fmt.Print(renderCategoryTable(d.Stats))
	}

	if d.Impulsive {
		fmt.Println()
		fmt.Println("  " + cli.Warn("Several wants in a row this week. Pause before the next one."))
	}

	if len(d.Nudges) > 0 {
		fmt.Println()
		fmt.Println("  Nudges")
		for _, n := range d.Nudges {
			fmt.Printf("    • %s\n", n.Message)
		}
	}

	printNewBadges(d.NewBadges)
	fmt.Println()
	return nil
}

func scoreText(score int, label string) string {
	switch {
	case score >= 80:
		return cli.Good(label)
	case score >= 40:
		return cli.Warn(label)
	default:
		return cli.Bad(label)
	}
}

func remainingText(remaining float64) string {
	if remaining < 0 {
		return cli.Bad(cli.FormatMoney(-remaining) + " over")
	}
	return cli.Good(cli.FormatMoney(remaining))
}

func renderCategoryTable(stats []model.CategoryStats) string {
	peak := 0.0
	rows := make([][]string, 0, len(stats))
	for _, cs := range stats {
		peak = max(peak, cs.Total)
		rows = append(rows, []string{
			string(cs.Category),
			cli.FormatMoney(cs.Total),
			cli.FormatPercent(cs.Percentage),
			cli.FormatNumber(int64(cs.Count)),
			cli.FormatMoney(cs.NeedsTotal),
			cli.FormatMoney(cs.WantsTotal),
		})
	}
	out := cli.RenderTable(cli.Table{
		Title:   "By Category",
		Headers: []string{"Category", "Total", "Share", "Count", "Needs", "Wants"},
		Rows:    rows,
	})
	out += "\n"
	for _, cs := range stats {
		out += cli.RenderHorizontalBar(string(cs.Category), cs.Total, peak, 30) + "\n"
	}
	return out
}

func printNewBadges(awards []model.BadgeAward) {
	if len(awards) == 0 {
		return
	}
	fmt.Println()
	for _, a := range awards {
		fmt.Printf("  %s %s: %s\n", cli.Good("★ New badge!"), a.Name, a.Description)
	}
}
