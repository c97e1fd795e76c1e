// Package pipeline turns expense snapshots into period ranges, aggregates and
// comparisons, and loads expense exports for import.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/spendwise/internal/model"

	"github.com/shopspring/decimal"
)

// Aggregate sums an expense set overall and per category. Only categories
// present in the input appear in the breakdown.
func Aggregate(expenses []model.Expense) model.Breakdown {
	total := decimal.Zero
	sums := make(map[model.Category]decimal.Decimal)

	for _, e := range expenses {
		amt := decimal.NewFromFloat(e.Amount)
		total = total.Add(amt)
		sums[e.Category] = sums[e.Category].Add(amt)
	}

	b := model.Breakdown{
		Total:      total.InexactFloat64(),
		Categories: make(map[model.Category]float64, len(sums)),
	}
	for cat, sum := range sums {
		b.Categories[cat] = sum.InexactFloat64()
	}
	return b
}

// CategoryStats computes one record per fixed category, sorted by total
// descending. Equal totals keep enumeration order. Expenses with unknown
// categories are skipped.
func CategoryStats(expenses []model.Expense) []model.CategoryStats {
	type bucket struct {
		needs, wants decimal.Decimal
		count        int
	}
	buckets := make([]bucket, len(model.Categories))
	overall := decimal.Zero

	for _, e := range expenses {
		idx := e.Category.Index()
		if idx < 0 {
			continue
		}
		amt := decimal.NewFromFloat(e.Amount)
		if e.Type == model.ExpenseNeed {
			buckets[idx].needs = buckets[idx].needs.Add(amt)
		} else {
			buckets[idx].wants = buckets[idx].wants.Add(amt)
		}
		buckets[idx].count++
		overall = overall.Add(amt)
	}

	stats := make([]model.CategoryStats, len(model.Categories))
	for i, cat := range model.Categories {
		bk := buckets[i]
		total := bk.needs.Add(bk.wants)
		cs := model.CategoryStats{
			Category:   cat,
			Total:      total.InexactFloat64(),
			Count:      bk.count,
			NeedsTotal: bk.needs.InexactFloat64(),
			WantsTotal: bk.wants.InexactFloat64(),
		}
		if overall.IsPositive() {
			cs.Percentage = total.Div(overall).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		stats[i] = cs
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Total > stats[j].Total
	})
	return stats
}

// Summarize computes the overall need/want split.
func Summarize(expenses []model.Expense) model.Summary {
	needs, wants := decimal.Zero, decimal.Zero
	for _, e := range expenses {
		amt := decimal.NewFromFloat(e.Amount)
		if e.Type == model.ExpenseNeed {
			needs = needs.Add(amt)
		} else {
			wants = wants.Add(amt)
		}
	}
	return model.Summary{
		Total:      needs.Add(wants).InexactFloat64(),
		NeedsTotal: needs.InexactFloat64(),
		WantsTotal: wants.InexactFloat64(),
		Count:      len(expenses),
	}
}

// AggregateDays computes per-day spending within the period, oldest first.
// Days without expenses are included as zeros so charts show gaps.
func AggregateDays(expenses []model.Expense, p model.Period) []model.DailySpend {
	type dayAcc struct {
		total decimal.Decimal
		count int
	}
	dayMap := make(map[string]*dayAcc)

	for _, e := range FilterByPeriod(expenses, p) {
		key := e.Date.Format("2006-01-02")
		acc, ok := dayMap[key]
		if !ok {
			acc = &dayAcc{}
			dayMap[key] = acc
		}
		acc.total = acc.total.Add(decimal.NewFromFloat(e.Amount))
		acc.count++
	}

	var days []model.DailySpend
	for day := startOfDay(p.Start); !day.After(p.End); day = day.AddDate(0, 0, 1) {
		ds := model.DailySpend{Date: day}
		if acc, ok := dayMap[day.Format("2006-01-02")]; ok {
			ds.Total = acc.total.InexactFloat64()
			ds.Count = acc.count
		}
		days = append(days, ds)
	}
	return days
}

// DaysRemaining returns the number of calendar days left in p after now,
// counting today.
func DaysRemaining(p model.Period, now time.Time) int {
	if now.After(p.End) {
		return 0
	}
	n := 0
	for day := startOfDay(now); !day.After(p.End); day = day.AddDate(0, 0, 1) {
		n++
	}
	return n
}
