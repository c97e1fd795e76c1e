package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwise/internal/cli"
	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/pipeline"
	"github.com/theirongolddev/spendwise/internal/tracker"
)

var (
	flagAddCategory string
	flagAddType     string
	flagAddDate     string

	flagHistorySearch   string
	flagHistoryCategory string
	flagHistorySort     string
	flagHistoryAsc      bool
	flagHistoryLimit    int
)

var addCmd = &cobra.Command{
	Use:   "add <item> <amount>",
	Short: "Log an expense",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, search and sort expenses",
	RunE:  runHistory,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", string(model.CategoryOther), "Category: "+categoryList())
	addCmd.Flags().StringVarP(&flagAddType, "type", "t", string(model.ExpenseWant), "need or want")
	addCmd.Flags().StringVarP(&flagAddDate, "date", "d", "", "Date as YYYY-MM-DD (default today)")

	historyCmd.Flags().StringVarP(&flagHistorySearch, "search", "s", "", "Case-insensitive item name search")
	historyCmd.Flags().StringVarP(&flagHistoryCategory, "category", "c", "all", "Filter by category")
	historyCmd.Flags().StringVar(&flagHistorySort, "sort", string(pipeline.SortByDate), "Sort by date or amount")
	historyCmd.Flags().BoolVar(&flagHistoryAsc, "asc", false, "Sort ascending")
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 0, "Show at most n expenses (0 for all)")

	historyCmd.AddCommand(historyDeleteCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(historyCmd)
}

func categoryList() string {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(s), "$"), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	date := flagAddDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	e, err := s.svc.AddExpense(cmd.Context(), s.userID, tracker.ExpenseInput{
		ItemName: args[0],
		Amount:   amount,
		Category: flagAddCategory,
		Type:     flagAddType,
		Date:     date,
	})
	if err != nil {
		return err
	}

	fmt.Printf("  Added %s  %s  %s/%s  %s\n",
		e.ItemName, cli.FormatMoney(e.Amount), e.Category, e.Type, cli.FormatDate(e.Date))
	if !flagQuiet {
		fmt.Println(cli.Muted("  id " + e.ID))
	}
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	sortBy := pipeline.SortField(flagHistorySort)
	if sortBy != pipeline.SortByDate && sortBy != pipeline.SortByAmount {
		return fmt.Errorf("unknown sort %q (want date or amount)", flagHistorySort)
	}

	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	expenses, err := s.svc.History(cmd.Context(), s.userID, tracker.HistoryQuery{
		Search:   flagHistorySearch,
		Category: flagHistoryCategory,
		SortBy:   sortBy,
		Desc:     !flagHistoryAsc,
	})
	if err != nil {
		return err
	}

	if len(expenses) == 0 {
		fmt.Println("\n  No expenses match.")
		return nil
	}

	total := len(expenses)
	if flagHistoryLimit > 0 && len(expenses) > flagHistoryLimit {
		expenses = expenses[:flagHistoryLimit]
	}

	summary := pipeline.Summarize(expenses)
	rows := make([][]string, 0, len(expenses)+2)
	for _, e := range expenses {
		rows = append(rows, []string{
			e.Date.Format("2006-01-02"),
			e.ItemName,
			string(e.Category),
			string(e.Type),
			cli.FormatMoney(e.Amount),
			e.ID,
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "Total", "", "", cli.FormatMoney(summary.Total), ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Expenses (%d of %d)", len(expenses), total),
		Headers: []string{"Date", "Item", "Category", "Type", "Amount", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.svc.DeleteExpense(cmd.Context(), s.userID, args[0]); err != nil {
		return err
	}
	fmt.Printf("  Deleted expense %s\n", args[0])
	return nil
}
