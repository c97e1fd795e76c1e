package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwise/internal/cli"
	"github.com/theirongolddev/spendwise/internal/tui/components"
	"github.com/theirongolddev/spendwise/internal/tui/theme"
)

func (a App) renderCategoriesTab(cw int) string {
	t := theme.Active
	d := a.data.dash
	if d == nil || len(d.Stats) == 0 {
		return components.ContentCard("Categories",
			lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No spending recorded this month."), cw)
	}

	innerW := components.CardInnerWidth(cw)

	bars := make([]components.Bar, 0, len(d.Stats))
	for _, cs := range d.Stats {
		bars = append(bars, components.Bar{
			Label: string(cs.Category),
			Value: cs.Total,
			Note:  fmt.Sprintf("%s  %5.1f%%", cli.FormatMoneyShort(cs.Total), cs.Percentage),
			Color: t.CategoryColor(cs.Category),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	needStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	wantStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)

	const numW = 11
	compact := a.isCompactLayout()
	nameW := innerW - 4*numW - 4
	if compact {
		nameW = innerW - 2*numW - 2
	}
	nameW = max(nameW, 10)

	var table strings.Builder
	if compact {
		table.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s", nameW, "Category", numW, "Total", numW, "Count")))
	} else {
		table.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %*s",
			nameW, "Category", numW, "Total", numW, "Count", numW, "Needs", numW, "Wants")))
	}
	table.WriteString("\n")
	table.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	table.WriteString("\n")

	for _, cs := range d.Stats {
		nameStyle := lipgloss.NewStyle().Foreground(t.CategoryColor(cs.Category)).Background(t.Surface)
		table.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, string(cs.Category))))
		table.WriteString(rowStyle.Render(fmt.Sprintf(" %*s %*s",
			numW, cli.FormatMoney(cs.Total),
			numW, cli.FormatNumber(int64(cs.Count)))))
		if !compact {
			table.WriteString(needStyle.Render(fmt.Sprintf(" %*s", numW, cli.FormatMoney(cs.NeedsTotal))))
			table.WriteString(wantStyle.Render(fmt.Sprintf(" %*s", numW, cli.FormatMoney(cs.WantsTotal))))
		}
		table.WriteString("\n")
	}

	// Needs vs wants across the month
	s := d.Summary
	var split strings.Builder
	if s.Total > 0 {
		barW := max(10, innerW-24)
		needW := int(s.NeedsTotal / s.Total * float64(barW))
		split.WriteString(needStyle.Render(strings.Repeat("█", needW)))
		split.WriteString(wantStyle.Render(strings.Repeat("█", barW-needW)))
		split.WriteString("\n")
	}
	split.WriteString(needStyle.Render("■ Needs ") + rowStyle.Render(cli.FormatMoney(s.NeedsTotal)))
	split.WriteString(mutedStyle.Render("   "))
	split.WriteString(wantStyle.Render("■ Wants ") + rowStyle.Render(cli.FormatMoney(s.WantsTotal)))

	var b strings.Builder
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Where It Went (%s)", d.Month.Start.Format("January")),
		components.HorizontalBars(bars, innerW), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("By Category", table.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Needs vs Wants", split.String(), cw))
	return b.String()
}
