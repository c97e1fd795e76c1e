package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/spendwise/internal/cli"
	"github.com/theirongolddev/spendwise/internal/insight"
	"github.com/theirongolddev/spendwise/internal/tui/components"
	"github.com/theirongolddev/spendwise/internal/tui/theme"
)

func (a App) renderBadgesTab(cw int) string {
	t := theme.Active
	r := a.data.rewards
	if r == nil {
		return components.ContentCard("Badges", "No data yet.", cw)
	}

	var b strings.Builder

	earned := 0
	for _, st := range r.Catalog {
		if st.Earned {
			earned++
		}
	}
	cards := []components.Metric{
		{Label: "Points", Value: cli.FormatNumber(int64(r.Points)), Delta: "100 per badge, 5 per expense", Color: t.AccentBright},
		{Label: "Badges", Value: fmt.Sprintf("%d / %d", earned, len(r.Catalog)), Delta: "earned"},
		{Label: "Expenses Logged", Value: cli.FormatNumber(int64(r.ExpenseCount)), Delta: "all time"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Badge Catalog", a.renderCatalog(components.CardInnerWidth(cw)), cw))
	b.WriteString("\n")

	if len(r.Certificates) > 0 && !a.isCompactLayout() {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			components.ContentCard("Savings Goals", a.renderGoals(components.CardInnerWidth(halves[0])), halves[0]),
			components.ContentCard("Certificates", a.renderCertificates(components.CardInnerWidth(halves[1])), halves[1]),
		}))
		return b.String()
	}
	b.WriteString(components.ContentCard("Savings Goals", a.renderGoals(components.CardInnerWidth(cw)), cw))
	if len(r.Certificates) > 0 {
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Certificates", a.renderCertificates(components.CardInnerWidth(cw)), cw))
	}
	return b.String()
}

func (a App) renderCatalog(innerW int) string {
	t := theme.Active
	r := a.data.rewards

	earnedStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
	lockedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dateStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface)

	const nameW, dateW = 22, 8
	descW := max(10, innerW-nameW-dateW-4)

	lines := make([]string, 0, len(r.Catalog))
	for _, st := range r.Catalog {
		mark, name := lockedStyle.Render("○ "), lockedStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(st.Info.Name, nameW)))
		desc := st.Info.Requirement
		if desc == "" {
			desc = st.Info.Description
		}
		date := ""
		if st.Earned {
			mark = earnedStyle.Render("● ")
			name = nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(st.Info.Name, nameW)))
			desc = st.Info.Description
			if st.EarnedAt != nil {
				date = cli.FormatShortDate(*st.EarnedAt)
			}
		}
		lines = append(lines, mark+name+
			descStyle.Render(" "+fmt.Sprintf("%-*s", descW, truncStr(desc, descW)))+
			dateStyle.Render(fmt.Sprintf(" %*s", dateW, date)))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderGoals(innerW int) string {
	t := theme.Active
	if len(a.data.goals) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("No goals yet. Add one with `spendwise goals add`.")
	}

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	doneStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	barW := max(10, min(40, innerW-8))
	var b strings.Builder
	for i, g := range a.data.goals {
		if i > 0 {
			b.WriteString("\n")
		}
		p := g.Progress()
		header := titleStyle.Render(truncStr(g.Title, innerW/2)) +
			mutedStyle.Render(fmt.Sprintf("  %s of %s", cli.FormatMoney(g.CurrentAmount), cli.FormatMoney(g.TargetAmount)))
		if g.Deadline != nil {
			header += mutedStyle.Render("  by " + cli.FormatDate(*g.Deadline))
		}
		b.WriteString(header)
		b.WriteString("\n")
		b.WriteString(components.ProgressBar(p/100, barW))
		if insight.GoalTier(p) == insight.TierComplete {
			b.WriteString(doneStyle.Render("  done"))
		} else {
			b.WriteString(mutedStyle.Render("  " + insight.GoalTier(p)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderCertificates(innerW int) string {
	t := theme.Active
	nameStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	lines := make([]string, 0, len(a.data.rewards.Certificates))
	for _, c := range a.data.rewards.Certificates {
		lines = append(lines, nameStyle.Render("✦ "+truncStr(c.BadgeName, innerW/2))+
			mutedStyle.Render(fmt.Sprintf("  %s, %s", truncStr(c.RecipientName, 20), cli.FormatDate(c.IssuedAt))))
	}
	return strings.Join(lines, "\n")
}
