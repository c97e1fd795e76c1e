package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwise/internal/tui/theme"
)

// StatusInfo is what the bottom bar shows besides the key hints.
type StatusInfo struct {
	DataAge     string
	Spent       float64
	Budget      float64 // zero hides the budget indicator
	Refreshing  bool
	AutoRefresh bool
	Flash       string // transient message such as "Expense added"
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, info StatusInfo) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)
	flashStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	left := " [?]help  [a]dd  [r]efresh  [q]uit"
	if info.Flash != "" {
		left += "  " + flashStyle.Render(info.Flash)
	}

	var right []string
	if info.Budget > 0 && width >= 120 {
		right = append(right, CompactBudgetBar("Budget", info.Spent, info.Budget, 28))
	}
	switch {
	case info.Refreshing:
		right = append(right, dimStyle.Render("refreshing..."))
	case info.AutoRefresh:
		right = append(right, dimStyle.Render("auto"))
	}
	if info.DataAge != "" {
		right = append(right, fmt.Sprintf("Data: %s ", info.DataAge))
	}
	rightStr := strings.Join(right, "  ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + rightStr)
}
