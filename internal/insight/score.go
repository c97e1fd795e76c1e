// Package insight computes the Smart Spend Score, advisory nudges and badge
// eligibility from in-memory expense snapshots. Every function is pure.
package insight

import (
	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/pipeline"
)

// Score labels.
const (
	LabelExcellent        = "Excellent"
	LabelGood             = "Good"
	LabelFair             = "Fair"
	LabelNeedsImprovement = "Needs Improvement"
)

// Score rates a month of spending from 0 to 100 with an additive penalty
// model. All penalties are summed before the result is clamped.
func Score(expenses []model.Expense, monthlyBudget float64, previous []model.Expense) int {
	if len(expenses) == 0 {
		return 100
	}

	sum := pipeline.Summarize(expenses)
	score := 100

	if monthlyBudget > 0 {
		usage := sum.Total / monthlyBudget * 100
		switch {
		case usage > 100:
			score -= 30
		case usage > 90:
			score -= 20
		case usage > 80:
			score -= 10
		}
	}

	if sum.Total > 0 {
		wantsShare := sum.WantsTotal / sum.Total * 100
		switch {
		case wantsShare > 60:
			score -= 20
		case wantsShare > 40:
			score -= 10
		}
	}

	for _, cs := range pipeline.CategoryStats(expenses) {
		if cs.Percentage > 40 {
			score -= 10
		}
	}

	if len(previous) > 0 {
		prevTotal := pipeline.Summarize(previous).Total
		var increase float64
		if prevTotal > 0 {
			increase = (sum.Total - prevTotal) / prevTotal * 100
		}
		switch {
		case increase > 30:
			score -= 15
		case increase > 20:
			score -= 10
		}
	}

	return clamp(score, 0, 100)
}

// ScoreLabel names the band a score falls in.
func ScoreLabel(score int) string {
	switch {
	case score >= 80:
		return LabelExcellent
	case score >= 60:
		return LabelGood
	case score >= 40:
		return LabelFair
	default:
		return LabelNeedsImprovement
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
