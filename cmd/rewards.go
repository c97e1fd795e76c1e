package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwise/internal/cli"
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Points, badges and certificates",
	RunE:  runRewards,
}

func init() {
	rootCmd.AddCommand(rewardsCmd)
}

func runRewards(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	r, err := s.svc.Rewards(cmd.Context(), s.userID)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REWARDS  %s points", cli.FormatNumber(int64(r.Points)))))
	fmt.Println()
	fmt.Printf("  %d badges earned, %s expenses logged\n\n", len(r.Earned), cli.FormatNumber(int64(r.ExpenseCount)))

	now := time.Now()
	rows := make([][]string, 0, len(r.Catalog))
	for _, st := range r.Catalog {
		status := cli.Muted("locked")
		desc := st.Info.Requirement
		if desc == "" {
			desc = st.Info.Description
		}
		if st.Earned {
			status = cli.Good("earned")
			desc = st.Info.Description
			if st.EarnedAt != nil {
				status += " " + cli.Muted(cli.FormatRelative(*st.EarnedAt, now))
			}
		}
		rows = append(rows, []string{st.Info.Name, desc, status})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Badges",
		Headers: []string{"Badge", "How", "Status"},
		Rows:    rows,
	}))

	if len(r.Certificates) > 0 {
		certRows := make([][]string, 0, len(r.Certificates))
		for _, c := range r.Certificates {
			certRows = append(certRows, []string{c.BadgeName, c.RecipientName, cli.FormatDate(c.IssuedAt), c.ID})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Certificates",
			Headers: []string{"Badge", "Awarded to", "Issued", "Certificate"},
			Rows:    certRows,
		}))
	}
	fmt.Println()
	return nil
}
