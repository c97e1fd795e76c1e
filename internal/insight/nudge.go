package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/pipeline"
)

// MaxNudges caps the number of nudges produced per refresh.
const MaxNudges = 4

// FallbackNudge is returned when no other rule fires.
const FallbackNudge = "Great spending habits! Keep tracking your expenses to maintain financial awareness."

// Nudges produces up to MaxNudges advisory messages. Earlier rules take
// priority when the list is truncated. stats must come from
// pipeline.CategoryStats over the same expenses; it is only read.
func Nudges(expenses []model.Expense, monthlyBudget float64, stats []model.CategoryStats) []string {
	sum := pipeline.Summarize(expenses)
	byCat := make(map[model.Category]model.CategoryStats, len(stats))
	for _, cs := range stats {
		byCat[cs.Category] = cs
	}

	var out []string

	if monthlyBudget > 0 {
		usage := sum.Total / monthlyBudget * 100
		switch {
		case usage > 90:
			out = append(out, fmt.Sprintf("You've used %s%% of your monthly budget. Consider cutting back on non-essentials.", whole(usage)))
		case usage > 75:
			out = append(out, fmt.Sprintf("You're at %s%% of your budget. Great job staying mindful!", whole(usage)))
		}
	}

	for _, cat := range model.Categories {
		cs := byCat[cat]
		if cs.Percentage > 40 && cs.Total > 0 {
			out = append(out, concentrationNudge(cat, cs.Percentage))
		}
	}

	for _, cat := range model.Categories {
		cs := byCat[cat]
		if cs.WantsTotal > cs.NeedsTotal && cs.WantsTotal > 100 {
			out = append(out, fmt.Sprintf("In %s, you're spending more on wants ($%s) than needs. Try redirecting some to savings.", cat, whole(cs.WantsTotal)))
		}
	}

	if sum.Total > 0 && sum.WantsTotal > 0.5*sum.Total {
		out = append(out, "Over 50% of your spending is on wants. Small changes can lead to big savings!")
	}

	if len(out) == 0 {
		out = append(out, FallbackNudge)
	}
	if len(out) > MaxNudges {
		out = out[:MaxNudges]
	}
	return out
}

func concentrationNudge(cat model.Category, pct float64) string {
	switch cat {
	case model.CategoryFood:
		return fmt.Sprintf("Your %s spending is %s%% of total expenses. Try meal planning to reduce dining out costs.", strings.ToLower(string(cat)), whole(pct))
	case model.CategoryShopping:
		return fmt.Sprintf("Shopping is taking up %s%% of your budget. Consider the 24-hour rule before purchasing.", whole(pct))
	default:
		return fmt.Sprintf("%s spending is high at %s%%. Look for ways to optimize these expenses.", cat, whole(pct))
	}
}

// whole formats v with no decimals, rounding half away from zero.
func whole(v float64) string {
	return fmt.Sprintf("%.0f", math.Round(v))
}
