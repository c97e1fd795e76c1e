package pipeline

import (
	"time"

	"github.com/theirongolddev/spendwise/internal/model"
)

// Compare computes the change between the current and previous period of the
// given kind, both resolved relative to now. A flat total counts as an
// improvement.
func Compare(current, previous []model.Expense, kind model.PeriodKind, now time.Time) model.PeriodComparison {
	cur := model.PeriodData{Period: RangeFor(kind, now, 0), Breakdown: Aggregate(current)}
	prev := model.PeriodData{Period: RangeFor(kind, now, 1), Breakdown: Aggregate(previous)}

	cmp := model.PeriodComparison{
		Kind:            kind,
		Current:         cur,
		Previous:        prev,
		TotalChange:     cur.Total - prev.Total,
		CategoryChanges: make(map[model.Category]model.CategoryChange),
	}
	cmp.TotalChangePercent = percentChange(cmp.TotalChange, prev.Total)
	cmp.Improvement = cmp.TotalChange <= 0

	for cat := range unionKeys(cur.Categories, prev.Categories) {
		delta := cur.Categories[cat] - prev.Categories[cat]
		cmp.CategoryChanges[cat] = model.CategoryChange{
			Amount:  delta,
			Percent: percentChange(delta, prev.Categories[cat]),
		}
	}
	return cmp
}

// ComparePeriods splits a full expense history into the current and previous
// period of the given kind and compares them.
func ComparePeriods(expenses []model.Expense, kind model.PeriodKind, now time.Time) model.PeriodComparison {
	current := FilterByPeriod(expenses, RangeFor(kind, now, 0))
	previous := FilterByPeriod(expenses, RangeFor(kind, now, 1))
	return Compare(current, previous, kind, now)
}

func percentChange(delta, base float64) float64 {
	if base == 0 {
		return 0
	}
	return delta / base * 100
}

func unionKeys(a, b map[model.Category]float64) map[model.Category]struct{} {
	keys := make(map[model.Category]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}
	return keys
}
