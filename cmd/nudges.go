package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwise/internal/cli"
)

var flagNudgeLimit int

var nudgesCmd = &cobra.Command{
	Use:   "nudges",
	Short: "List saved nudges, newest first",
	RunE:  runNudges,
}

var nudgesReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a nudge as read",
	Args:  cobra.ExactArgs(1),
	RunE:  runNudgesRead,
}

func init() {
	nudgesCmd.Flags().IntVarP(&flagNudgeLimit, "limit", "n", 20, "Show at most n nudges")
	nudgesCmd.AddCommand(nudgesReadCmd)
	rootCmd.AddCommand(nudgesCmd)
}

func runNudges(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	nudges, err := s.svc.Nudges(cmd.Context(), s.userID, flagNudgeLimit)
	if err != nil {
		return err
	}
	if len(nudges) == 0 {
		fmt.Println("\n  No nudges yet. Run `spendwise dashboard` to generate some.")
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(nudges))
	for _, n := range nudges {
		mark := cli.Warn("●")
		if n.IsRead {
			mark = cli.Muted("○")
		}
		rows = append(rows, []string{mark, n.Message, cli.FormatRelative(n.CreatedAt, now), n.ID})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Nudges",
		Headers: []string{"", "Message", "When", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runNudgesRead(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.svc.MarkNudgeRead(cmd.Context(), s.userID, args[0]); err != nil {
		return err
	}
	fmt.Printf("  Marked nudge %s as read\n", args[0])
	return nil
}
