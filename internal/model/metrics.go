package model

import "time"

// CategoryStats holds the totals for one category over an expense set.
type CategoryStats struct {
	Category   Category `json:"category"`
	Total      float64  `json:"total"`
	Percentage float64  `json:"percentage"` // share of overall total, 0-100
	Count      int      `json:"count"`
	NeedsTotal float64  `json:"needs_total"`
	WantsTotal float64  `json:"wants_total"`
}

// Breakdown is the total of an expense set plus per-category sums for the
// categories that actually appear in it.
type Breakdown struct {
	Total      float64              `json:"total"`
	Categories map[Category]float64 `json:"category_breakdown"`
}

// Summary holds the need/want split across an expense set.
type Summary struct {
	Total      float64 `json:"total"`
	NeedsTotal float64 `json:"needs_total"`
	WantsTotal float64 `json:"wants_total"`
	Count      int     `json:"count"`
}

// DailySpend holds spending for a single calendar day.
type DailySpend struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
	Count int       `json:"count"`
}

// PeriodKind selects calendar weeks or calendar months.
type PeriodKind string

// Period kinds.
const (
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
)

// Period is an inclusive time range.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the period, inclusive on both ends.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// PeriodData is one side of a period comparison.
type PeriodData struct {
	Period
	Breakdown
}

// CategoryChange is the delta for one category between two periods.
type CategoryChange struct {
	Amount  float64 `json:"amount"`
	Percent float64 `json:"percent"`
}

// PeriodComparison holds current and previous period data with their deltas.
type PeriodComparison struct {
	Kind               PeriodKind                  `json:"period_type"`
	Current            PeriodData                  `json:"current_period"`
	Previous           PeriodData                  `json:"previous_period"`
	TotalChange        float64                     `json:"total_change"`
	TotalChangePercent float64                     `json:"total_change_percent"`
	CategoryChanges    map[Category]CategoryChange `json:"category_changes"`
	Improvement        bool                        `json:"improvement"`
}
