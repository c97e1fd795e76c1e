package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwise/internal/cli"
	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/tui/components"
	"github.com/theirongolddev/spendwise/internal/tui/theme"
)

func (a App) renderCompareTab(cw int) string {
	t := theme.Active
	ins := a.data.ins
	if ins == nil {
		return components.ContentCard("Compare", "No data yet.", cw)
	}

	var b strings.Builder

	cards := []components.Metric{
		comparisonMetric("This Week", ins.Weekly),
		comparisonMetric("This Month", ins.Monthly),
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Week over Week", renderComparison(ins.Weekly, components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Month over Month", renderComparison(ins.Monthly, components.CardInnerWidth(cw)), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Week over Week", renderComparison(ins.Weekly, components.CardInnerWidth(halves[0])), halves[0]),
			components.ContentCard("Month over Month", renderComparison(ins.Monthly, components.CardInnerWidth(halves[1])), halves[1]),
		}))
	}
	b.WriteString("\n")

	if len(ins.WeekDaily) > 0 {
		vals := make([]float64, len(ins.WeekDaily))
		labels := make([]string, len(ins.WeekDaily))
		for i, d := range ins.WeekDaily {
			vals[i] = d.Total
			labels[i] = d.Date.Format("Mon")[:2]
		}
		b.WriteString(components.ContentCard("This Week by Day",
			components.BarChart(vals, labels, t.Cyan, components.CardInnerWidth(cw), 6), cw))
	}
	return b.String()
}

func comparisonMetric(label string, cmp model.PeriodComparison) components.Metric {
	t := theme.Active
	m := components.Metric{
		Label: label,
		Value: cli.FormatMoney(cmp.Current.Total),
		Delta: "vs " + cli.FormatMoney(cmp.Previous.Total),
	}
	if cmp.Previous.Total > 0 {
		m.Delta += " (" + cli.FormatChangePercent(cmp.TotalChangePercent) + ")"
	}
	if cmp.Improvement {
		m.Color = t.GreenBright
	} else {
		m.Color = t.Orange
	}
	return m
}

// renderComparison lists the per-category change between two periods,
// in category order.
func renderComparison(cmp model.PeriodComparison, innerW int) string {
	t := theme.Active

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	downStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	upStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s → %s",
		cli.FormatShortDate(cmp.Current.Start), cli.FormatShortDate(cmp.Current.End))))
	b.WriteString("\n")

	const numW = 12
	nameW := max(8, innerW-2*numW-2)
	rows := 0
	for _, cat := range model.Categories {
		ch, ok := cmp.CategoryChanges[cat]
		if !ok {
			continue
		}
		style := rowStyle
		switch {
		case ch.Amount < 0:
			style = downStyle
		case ch.Amount > 0:
			style = upStyle
		}
		nameStyle := lipgloss.NewStyle().Foreground(t.CategoryColor(cat)).Background(t.Surface)
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, string(cat))))
		b.WriteString(style.Render(fmt.Sprintf(" %*s %*s", numW, cli.FormatDelta(ch.Amount), numW, cli.FormatChangePercent(ch.Percent))))
		b.WriteString("\n")
		rows++
	}
	if rows == 0 {
		b.WriteString(mutedStyle.Render("No spending in either period."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case cmp.TotalChange == 0:
		b.WriteString(rowStyle.Bold(true).Render("Spending unchanged."))
	case cmp.Improvement:
		b.WriteString(downStyle.Bold(true).Render(fmt.Sprintf("Spending down %s. Nice work.", cli.FormatMoney(-cmp.TotalChange))))
	default:
		b.WriteString(upStyle.Bold(true).Render(fmt.Sprintf("Spending up %s.", cli.FormatMoney(cmp.TotalChange))))
	}
	return b.String()
}
