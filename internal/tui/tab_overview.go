package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwise/internal/cli"
	"github.com/theirongolddev/spendwise/internal/tui/components"
	"github.com/theirongolddev/spendwise/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	d := a.data.dash
	if d == nil {
		return components.ContentCard("Overview", "No data yet.", cw)
	}
	var b strings.Builder

	// Row 1: Metric cards
	budgetLeft := components.Metric{Label: "Budget Left", Value: "not set", Delta: "set one in Settings"}
	if d.Budget.MonthlyBudget > 0 {
		budgetLeft.Value = cli.FormatMoney(d.Budget.Remaining)
		budgetLeft.Delta = "of " + cli.FormatMoney(d.Budget.MonthlyBudget)
		budgetLeft.Color = components.ColorForPct(d.Budget.BudgetUsedPercent / 100)
	}

	spentDelta := fmt.Sprintf("%d expenses", d.Summary.Count)
	if ins := a.data.ins; ins != nil && ins.Monthly.Previous.Total > 0 {
		spentDelta += " (" + cli.FormatChangePercent(ins.Monthly.TotalChangePercent) + ")"
	}

	cards := []components.Metric{
		{Label: "Spent", Value: cli.FormatMoney(d.Summary.Total), Delta: spentDelta},
		budgetLeft,
		{Label: "Smart Score", Value: fmt.Sprintf("%d", d.Score), Delta: d.ScoreLabel, Color: components.ColorForScore(d.Score)},
		{Label: "Days Left", Value: fmt.Sprintf("%d", d.Budget.DaysRemaining), Delta: d.Month.Start.Format("January")},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)

	// Row 2: Budget bar
	if d.Budget.MonthlyBudget > 0 {
		var body strings.Builder
		left := fmt.Sprintf("%s left", cli.FormatMoney(d.Budget.Remaining))
		if d.Budget.Remaining < 0 {
			left = fmt.Sprintf("%s over", cli.FormatMoney(-d.Budget.Remaining))
		}
		barW := max(10, innerW-30)
		body.WriteString(components.BudgetBar("Month", d.Budget.Spent, d.Budget.MonthlyBudget, 8, barW, left))
		if d.Budget.DaysRemaining > 0 && d.Budget.Remaining > 0 {
			perDay := d.Budget.Remaining / float64(d.Budget.DaysRemaining)
			body.WriteString("\n")
			body.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render(fmt.Sprintf("You can spend %s a day for the rest of the month.", cli.FormatMoney(perDay))))
		}
		b.WriteString(components.ContentCard("Budget", body.String(), cw))
		b.WriteString("\n")
	}

	// Row 3: Daily spending chart
	if len(d.Daily) > 0 {
		vals := make([]float64, len(d.Daily))
		for i, day := range d.Daily {
			vals[i] = day.Total
		}
		chartH := 10
		if a.isCompactLayout() {
			chartH = 7
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Daily Spending (%s)", d.Month.Start.Format("Jan 2006")),
			components.BarChart(vals, chartDateLabels(d.Daily), t.Blue, innerW, chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 4: Nudges + recent expenses
	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Nudges", a.renderNudges(cw), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Recent", a.renderRecent(cw), cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Nudges", a.renderNudges(halves[0]), halves[0]),
			components.ContentCard("Recent", a.renderRecent(halves[1]), halves[1]),
		}))
	}

	return b.String()
}

func (a App) renderNudges(outerW int) string {
	t := theme.Active
	d := a.data.dash
	innerW := components.CardInnerWidth(outerW)

	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	bulletStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)

	var lines []string
	if d.Impulsive {
		lines = append(lines, warnStyle.Render(truncStr("! Several wants in a row this week. Pause before the next one.", innerW)))
	}
	for _, n := range d.Nudges {
		lines = append(lines, bulletStyle.Render("• ")+textStyle.Render(truncStr(n.Message, innerW-2)))
	}
	if len(lines) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("Nothing to flag. Keep it up.")
	}
	return strings.Join(lines, "\n")
}

func (a App) renderRecent(outerW int) string {
	t := theme.Active
	d := a.data.dash
	innerW := components.CardInnerWidth(outerW)

	if len(d.Recent) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No expenses this month. Press [a] to add one.")
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	const dateW, amountW = 7, 11
	nameW := max(6, innerW-dateW-amountW-4)

	lines := make([]string, 0, len(d.Recent))
	for _, e := range d.Recent {
		catStyle := lipgloss.NewStyle().Foreground(t.CategoryColor(e.Category)).Background(t.Surface)
		lines = append(lines,
			dateStyle.Render(fmt.Sprintf("%-*s", dateW, cli.FormatShortDate(e.Date)))+
				spaceStyle.Render(" ")+
				catStyle.Render("■")+
				spaceStyle.Render(" ")+
				nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(e.ItemName, nameW)))+
				spaceStyle.Render(" ")+
				amountStyle.Render(fmt.Sprintf("%*s", amountW-1, cli.FormatMoney(e.Amount))))
	}
	return strings.Join(lines, "\n")
}
