package insight

import "github.com/theirongolddev/spendwise/internal/model"

// Goal progress tiers.
const (
	TierComplete = "complete"
	TierClose    = "close"
	TierHalfway  = "halfway"
	TierStarted  = "started"
)

// DetectImpulsive reports whether the most recent spending looks impulsive:
// at least 3 of the first 5 expenses (newest first) are wants under 50.
func DetectImpulsive(expenses []model.Expense) bool {
	n := 0
	for i, e := range expenses {
		if i == 5 {
			break
		}
		if e.Type == model.ExpenseWant && e.Amount < 50 {
			n++
		}
	}
	return n >= 3
}

// Points is the reward score shown on the rewards page.
func Points(badges, expenses int) int {
	return badges*100 + expenses*5
}

// GoalTier buckets a goal progress percentage.
func GoalTier(progress float64) string {
	switch {
	case progress >= 100:
		return TierComplete
	case progress >= 75:
		return TierClose
	case progress >= 50:
		return TierHalfway
	default:
		return TierStarted
	}
}
