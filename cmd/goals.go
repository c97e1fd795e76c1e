package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwise/internal/cli"
	"github.com/theirongolddev/spendwise/internal/insight"
	"github.com/theirongolddev/spendwise/internal/tracker"
)

var (
	flagGoalSaved    float64
	flagGoalDeadline string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List savings goals",
	RunE:  runGoals,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <title> <target>",
	Short: "Add a savings goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsAdd,
}

var goalsProgressCmd = &cobra.Command{
	Use:   "progress <id> <saved>",
	Short: "Set how much has been saved toward a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsProgress,
}

var goalsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsDelete,
}

func init() {
	goalsAddCmd.Flags().Float64Var(&flagGoalSaved, "saved", 0, "Amount already saved")
	goalsAddCmd.Flags().StringVar(&flagGoalDeadline, "deadline", "", "Deadline as YYYY-MM-DD")

	goalsCmd.AddCommand(goalsAddCmd, goalsProgressCmd, goalsDeleteCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoals(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	goals, err := s.svc.Goals(cmd.Context(), s.userID)
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("\n  No goals yet. Add one with `spendwise goals add <title> <target>`.")
		return nil
	}

	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		deadline := ""
		if g.Deadline != nil {
			deadline = cli.FormatDate(*g.Deadline)
		}
		p := g.Progress()
		rows = append(rows, []string{
			g.Title,
			cli.FormatMoney(g.CurrentAmount) + " / " + cli.FormatMoney(g.TargetAmount),
			tierText(p, cli.FormatPercent(p)),
			deadline,
			g.ID,
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Savings Goals",
		Headers: []string{"Goal", "Saved", "Progress", "Deadline", "ID"},
		Rows:    rows,
	}))
	return nil
}

// tierText colors a progress value by goal tier.
func tierText(progress float64, s string) string {
	switch insight.GoalTier(progress) {
	case insight.TierComplete, insight.TierClose:
		return cli.Good(s)
	case insight.TierHalfway:
		return cli.Warn(s)
	default:
		return cli.Muted(s)
	}
}

func runGoalsAdd(cmd *cobra.Command, args []string) error {
	target, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	g, err := s.svc.AddGoal(cmd.Context(), s.userID, tracker.GoalInput{
		Title:    args[0],
		Target:   target,
		Current:  flagGoalSaved,
		Deadline: flagGoalDeadline,
	})
	if err != nil {
		return err
	}
	fmt.Printf("  Added goal %q (%s)  id %s\n", g.Title, cli.FormatMoney(g.TargetAmount), g.ID)
	return nil
}

func runGoalsProgress(cmd *cobra.Command, args []string) error {
	saved, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.svc.UpdateGoalProgress(cmd.Context(), s.userID, args[0], saved); err != nil {
		return err
	}
	fmt.Printf("  Goal %s now at %s\n", args[0], cli.FormatMoney(saved))
	return nil
}

func runGoalsDelete(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.svc.DeleteGoal(cmd.Context(), s.userID, args[0]); err != nil {
		return err
	}
	fmt.Printf("  Deleted goal %s\n", args[0])
	return nil
}
