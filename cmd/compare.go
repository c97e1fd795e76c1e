package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwise/internal/cli"
	"github.com/theirongolddev/spendwise/internal/model"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Week-over-week and month-over-month spending",
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	in, err := s.svc.Insights(cmd.Context(), s.userID)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPENDING COMPARISON"))
	fmt.Println()
	fmt.Print(renderComparison("This week vs last week", in.Weekly))
	fmt.Println()
	fmt.Print(renderComparison("This month vs last month", in.Monthly))

	if len(in.WeekDaily) > 0 {
		vals := make([]float64, len(in.WeekDaily))
		for i, d := range in.WeekDaily {
			vals[i] = d.Total
		}
		fmt.Printf("\n  This week  %s\n", cli.RenderSparkline(vals))
	}

	weeks, err := s.svc.PeriodHistory(cmd.Context(), s.userID, model.PeriodWeek, 8)
	if err != nil {
		return err
	}
	if len(weeks) > 1 {
		rows := make([][]string, 0, len(weeks))
		for _, w := range weeks {
			rows = append(rows, []string{cli.FormatShortDate(w.Start), cli.FormatMoney(w.Total)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Recent Weeks",
			Headers: []string{"Week of", "Spent"},
			Rows:    rows,
		}))
	}

	printNewBadges(in.NewBadges)
	fmt.Println()
	return nil
}

func renderComparison(title string, cmp model.PeriodComparison) string {
	rows := [][]string{
		{"Total",
			cli.FormatMoney(cmp.Current.Total),
			cli.FormatMoney(cmp.Previous.Total),
			changeText(cmp.TotalChange, cli.FormatDelta(cmp.TotalChange)),
			changeText(cmp.TotalChange, cli.FormatChangePercent(cmp.TotalChangePercent)),
		},
		{"---"},
	}
	for _, cat := range model.Categories {
		ch, ok := cmp.CategoryChanges[cat]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			string(cat),
			cli.FormatMoney(cmp.Current.Categories[cat]),
			cli.FormatMoney(cmp.Previous.Categories[cat]),
			changeText(ch.Amount, cli.FormatDelta(ch.Amount)),
			changeText(ch.Amount, cli.FormatChangePercent(ch.Percent)),
		})
	}

	verdict := cli.Bad("Spending went up.")
	switch {
	case cmp.TotalChange == 0:
		verdict = cli.Muted("Spending held steady.")
	case cmp.Improvement:
		verdict = cli.Good("You spent less. Nice work.")
	}

	return cli.RenderTable(cli.Table{
		Title: fmt.Sprintf("%s  (%s to %s)", title,
			cli.FormatShortDate(cmp.Current.Start), cli.FormatShortDate(cmp.Current.End)),
		Headers: []string{"", "Current", "Previous", "Change", "%"},
		Rows:    rows,
	}) + "  " + verdict + "\n"
}

// changeText colors a change: spending less is good.
func changeText(delta float64, s string) string {
	switch {
	case delta < 0:
		return cli.Good(s)
	case delta > 0:
		return cli.Bad(s)
	default:
		return s
	}
}
