package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/pipeline"
)

// BadgeInfo is the display data for one badge type. In the super saver
// descriptions, PercentPlaceholder is replaced with the rounded reduction.
type BadgeInfo struct {
	Name        string `toml:"name" json:"name"`
	Description string `toml:"description" json:"description"`
	Requirement string `toml:"requirement" json:"requirement,omitempty"`
}

// PercentPlaceholder marks where a super saver description shows the
// percentage. Any other text, including a literal %, is left as written.
const PercentPlaceholder = "{percent}"

// Catalog maps badge types to display data.
type Catalog map[model.BadgeType]BadgeInfo

// DefaultCatalog returns the built-in badge names and descriptions.
func DefaultCatalog() Catalog {
	return Catalog{
		model.BadgeBudgetKeeper: {
			Name: "Budget Keeper", Description: "Stayed within monthly budget",
			Requirement: "Keep spending under budget for a month",
		},
		model.BadgeSmartSpender: {
			Name: "Smart Spender", Description: "Prioritized needs over wants",
			Requirement: "Spend 60% or more on needs",
		},
		model.BadgeTrackingChampion: {
			Name: "Tracking Champion", Description: "Logged 20+ expenses",
			Requirement: "Log 20 or more expenses",
		},
		model.BadgeSaverOfWeek: {
			Name: "Saver of the Week", Description: "Reduced spending compared to last week",
			Requirement: "Spend less than last week",
		},
		model.BadgeSaverOfMonth: {
			Name: "Saver of the Month", Description: "Reduced spending compared to last month",
			Requirement: "Spend less than last month",
		},
		model.BadgeSuperSaverWeek: {
			Name: "Super Saver (Week)", Description: "Reduced spending by {percent}% this week",
			Requirement: "Cut weekly spending by 20% or more",
		},
		model.BadgeSuperSaverMonth: {
			Name: "Super Saver (Month)", Description: "Reduced spending by {percent}% this month",
			Requirement: "Cut monthly spending by 20% or more",
		},
		model.BadgeSavingsStreak: {
			Name: "Savings Streak", Description: "Build a consistent savings habit",
			Requirement: "Save consistently for 3 months",
		},
	}
}

// Merge returns a copy of c with non-empty override fields applied.
func (c Catalog) Merge(overrides Catalog) Catalog {
	out := make(Catalog, len(c)+len(overrides))
	for k, v := range c {
		out[k] = v
	}
	for k, o := range overrides {
		cur := out[k]
		if o.Name != "" {
			cur.Name = o.Name
		}
		if o.Description != "" {
			cur.Description = o.Description
		}
		if o.Requirement != "" {
			cur.Requirement = o.Requirement
		}
		out[k] = cur
	}
	return out
}

// Lookup returns the display data for t. Unknown types fall back to the type
// string as name and an empty description.
func (c Catalog) Lookup(t model.BadgeType) BadgeInfo {
	if info, ok := c[t]; ok {
		return info
	}
	return BadgeInfo{Name: string(t)}
}

// EarnedSet holds the badge types a user already has.
type EarnedSet map[model.BadgeType]struct{}

// NewEarnedSet builds an EarnedSet from stored badges.
func NewEarnedSet(badges []model.Badge) EarnedSet {
	s := make(EarnedSet, len(badges))
	for _, b := range badges {
		s[b.Type] = struct{}{}
	}
	return s
}

// Has reports whether t was already earned.
func (s EarnedSet) Has(t model.BadgeType) bool {
	_, ok := s[t]
	return ok
}

// Evaluator decides badge eligibility against a fixed catalog.
type Evaluator struct {
	catalog Catalog
}

// NewEvaluator returns an evaluator using catalog for display data. A nil
// catalog behaves as an empty one.
func NewEvaluator(catalog Catalog) *Evaluator {
	return &Evaluator{catalog: catalog}
}

// Award builds a BadgeAward for t.
func (ev *Evaluator) Award(t model.BadgeType) model.BadgeAward {
	info := ev.catalog.Lookup(t)
	return model.BadgeAward{Type: t, Name: info.Name, Description: info.Description}
}

// ActivityBadges returns the threshold badges newly earned by a month of
// expenses.
func (ev *Evaluator) ActivityBadges(expenses []model.Expense, monthlyBudget float64, earned EarnedSet) []model.BadgeAward {
	sum := pipeline.Summarize(expenses)

	var out []model.BadgeAward
	add := func(t model.BadgeType, ok bool) {
		if ok && !earned.Has(t) {
			out = append(out, ev.Award(t))
		}
	}

	add(model.BadgeBudgetKeeper, monthlyBudget > 0 && sum.Total <= monthlyBudget)
	add(model.BadgeSmartSpender, sum.Total > 0 && sum.NeedsTotal > 0.6*sum.Total)
	add(model.BadgeTrackingChampion, sum.Count >= 20)
	return out
}

// ComparisonBadges returns the saver badges newly earned from the weekly and
// monthly comparisons.
func (ev *Evaluator) ComparisonBadges(weekly, monthly model.PeriodComparison, earned EarnedSet) []model.BadgeAward {
	var out []model.BadgeAward
	add := func(a model.BadgeAward, ok bool) {
		if ok && !earned.Has(a.Type) {
			out = append(out, a)
		}
	}

	add(ev.Award(model.BadgeSaverOfWeek), weekly.Improvement && weekly.Previous.Total > 0)
	add(ev.Award(model.BadgeSaverOfMonth), monthly.Improvement && monthly.Previous.Total > 0)
	add(ev.superSaver(model.BadgeSuperSaverWeek, weekly), weekly.Improvement && math.Abs(weekly.TotalChangePercent) >= 20)
	add(ev.superSaver(model.BadgeSuperSaverMonth, monthly), monthly.Improvement && math.Abs(monthly.TotalChangePercent) >= 20)
	return out
}

func (ev *Evaluator) superSaver(t model.BadgeType, cmp model.PeriodComparison) model.BadgeAward {
	a := ev.Award(t)
	pct := fmt.Sprintf("%.0f", math.Round(math.Abs(cmp.TotalChangePercent)))
	a.Description = strings.ReplaceAll(a.Description, PercentPlaceholder, pct)
	return a
}

// Complete returns the full award list after fresh awards are persisted:
// every previously earned badge followed by the fresh ones not already held.
func (ev *Evaluator) Complete(earned []model.Badge, fresh []model.BadgeAward) []model.BadgeAward {
	out := make([]model.BadgeAward, 0, len(earned)+len(fresh))
	seen := make(EarnedSet, len(earned)+len(fresh))
	for _, b := range earned {
		if seen.Has(b.Type) {
			continue
		}
		seen[b.Type] = struct{}{}
		out = append(out, b.Award())
	}
	for _, a := range fresh {
		if seen.Has(a.Type) {
			continue
		}
		seen[a.Type] = struct{}{}
		out = append(out, a)
	}
	return out
}
