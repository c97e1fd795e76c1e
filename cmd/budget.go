package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwise/internal/cli"
	"github.com/theirongolddev/spendwise/internal/config"
)

var budgetCmd = &cobra.Command{
	Use:   "budget [amount]",
	Short: "Show or set the monthly budget",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if len(args) == 1 {
		amount, err := parseAmount(args[0])
		if err != nil {
			return err
		}
		if err := s.svc.SetBudget(cmd.Context(), s.userID, amount); err != nil {
			return err
		}

		// openSession syncs the configured budget on every run.
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		cfg.Budget.Monthly = &amount
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("  Monthly budget set to %s\n", cli.FormatMoney(amount))
		return nil
	}

	d, err := s.svc.Dashboard(cmd.Context(), s.userID)
	if err != nil {
		return err
	}
	if d.Budget.MonthlyBudget <= 0 {
		fmt.Println("  No monthly budget set. Use `spendwise budget <amount>`.")
		return nil
	}
	fmt.Printf("  Budget     %s\n", cli.FormatMoney(d.Budget.MonthlyBudget))
	fmt.Printf("  Spent      %s\n", cli.FormatMoney(d.Budget.Spent))
	fmt.Printf("  Remaining  %s\n", remainingText(d.Budget.Remaining))
	fmt.Printf("  Used       %s\n", cli.RenderBudgetBar(d.Budget.Spent, d.Budget.MonthlyBudget, 30))
	fmt.Printf("  Days left  %d\n", d.Budget.DaysRemaining)
	return nil
}
