// Package cmd implements the spendwise CLI commands.
package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/spendwise/internal/cli"
	"github.com/theirongolddev/spendwise/internal/config"
	"github.com/theirongolddev/spendwise/internal/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadEffective()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    User id:  %s\n", cfg.General.UserID)
	if cfg.General.Name != "" {
		fmt.Printf("    Name:     %s\n", cfg.General.Name)
	}
	fmt.Printf("    Database: %s\n", cfg.DBPath())
	fmt.Println()

	fmt.Println("  [Budget]")
	if cfg.Budget.Monthly != nil {
		fmt.Printf("    Monthly budget: %s\n", cli.FormatMoney(*cfg.Budget.Monthly))
	} else {
		fmt.Println("    Monthly budget: not set")
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:       %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Schedule:      %s\n", cfg.Daemon.Schedule)
	fmt.Printf("    Events buffer: %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh:     %v\n", cfg.TUI.AutoRefresh)
	fmt.Printf("    Refresh interval: %ds\n", cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	if len(cfg.Badges.Overrides) > 0 {
		fmt.Println("  [Badges]")
		types := make([]string, 0, len(cfg.Badges.Overrides))
		for t := range cfg.Badges.Overrides {
			types = append(types, string(t))
		}
		sort.Strings(types)
		catalog := cfg.Catalog()
		for _, t := range types {
			info := catalog.Lookup(model.BadgeType(t))
			fmt.Printf("    %-18s %s\n", t, info.Name)
		}
		fmt.Println()
	}

	fmt.Printf("  Environment overrides: %s, %s, %s, %s\n",
		config.EnvUser, config.EnvDB, config.EnvBudget, config.EnvDaemonAddr)
	fmt.Println("  Run `spendwise setup` to reconfigure.")
	return nil
}
