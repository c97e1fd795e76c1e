package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwise/internal/cli"
	"github.com/theirongolddev/spendwise/internal/tracker"
)

var flagImportForce bool

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Bulk import expenses from JSONL and CSV files",
	Long: "Import every .jsonl and .csv file under dir. Files unchanged since the last\n" +
		"import are skipped, and rows already stored are never duplicated.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportForce, "force", false, "Reparse files even if unchanged")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), newLogger())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", args[0])
	}
	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%10 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing %s", cli.RenderProgressBar(current, total, 24))
		}
	}

	res, err := s.svc.Import(cmd.Context(), s.userID, args[0], tracker.ImportOptions{
		Force:    flagImportForce,
		Progress: progressFn,
	})
	if err != nil {
		return err
	}
	if !flagQuiet && res.Parsed > 0 {
		fmt.Fprintln(os.Stderr)
	}

	fmt.Printf("  Imported %s new expenses from %d files (%d unchanged)\n",
		cli.FormatNumber(int64(res.Inserted)), res.Files, res.Unchanged)
	if dup := res.Rows - res.Inserted; dup > 0 {
		fmt.Printf("  %s rows were already stored\n", cli.FormatNumber(int64(dup)))
	}
	if res.ParseErrors > 0 {
		fmt.Fprintf(os.Stderr, "  %d rows could not be parsed\n", res.ParseErrors)
	}
	if res.FileErrors > 0 {
		fmt.Fprintf(os.Stderr, "  %d files could not be read\n", res.FileErrors)
	}
	return nil
}
