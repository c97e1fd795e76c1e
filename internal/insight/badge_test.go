package insight

import (
	"math/rand"
	"testing"

	"github.com/theirongolddev/spendwise/internal/model"
)

func types(awards []model.BadgeAward) []model.BadgeType {
	out := make([]model.BadgeType, len(awards))
	for i, a := range awards {
		out[i] = a.Type
	}
	return out
}

func TestActivityBadges(t *testing.T) {
	ev := NewEvaluator(DefaultCatalog())

	var expenses []model.Expense
	for i := 0; i < 20; i++ {
		expenses = append(expenses, exp(model.CategoryBills, 10, model.ExpenseNeed))
	}

	got := types(ev.ActivityBadges(expenses, 500, nil))
	want := []model.BadgeType{model.BadgeBudgetKeeper, model.BadgeSmartSpender, model.BadgeTrackingChampion}
	if len(got) != len(want) {
		t.Fatalf("ActivityBadges = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ActivityBadges[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestActivityBadges_Guards(t *testing.T) {
	ev := NewEvaluator(DefaultCatalog())

	if got := ev.ActivityBadges(nil, 0, nil); len(got) != 0 {
		t.Fatalf("no budget, no expenses: got %v", types(got))
	}
	// Budget keeper fires on an empty month with a budget set.
	if got := types(ev.ActivityBadges(nil, 100, nil)); len(got) != 1 || got[0] != model.BadgeBudgetKeeper {
		t.Fatalf("empty month with budget: got %v", got)
	}
	// Exactly 60% needs is not enough.
	split := []model.Expense{
		exp(model.CategoryFood, 60, model.ExpenseNeed),
		exp(model.CategoryFood, 40, model.ExpenseWant),
	}
	for _, a := range ev.ActivityBadges(split, 0, nil) {
		if a.Type == model.BadgeSmartSpender {
			t.Fatal("smart_spender awarded at exactly 60% needs")
		}
	}
}

func comparison(prevTotal, pct float64) model.PeriodComparison {
	change := prevTotal * pct / 100
	cmp := model.PeriodComparison{TotalChange: change, TotalChangePercent: pct, Improvement: change <= 0}
	cmp.Previous.Total = prevTotal
	cmp.Current.Total = prevTotal + change
	return cmp
}

func TestComparisonBadges(t *testing.T) {
	ev := NewEvaluator(DefaultCatalog())

	got := ev.ComparisonBadges(comparison(100, -25), comparison(400, -10), nil)
	if len(got) != 3 {
		t.Fatalf("ComparisonBadges = %v, want week, month and super week", types(got))
	}
	super := got[2]
	if super.Type != model.BadgeSuperSaverWeek {
		t.Fatalf("got[2] = %q, want super_saver_week", super.Type)
	}
	if super.Description != "Reduced spending by 25% this week" {
		t.Fatalf("Description = %q", super.Description)
	}

	// Flat spending with history counts as improvement.
	got = ev.ComparisonBadges(comparison(100, 0), comparison(0, 0), nil)
	if len(got) != 1 || got[0].Type != model.BadgeSaverOfWeek {
		t.Fatalf("flat week: got %v, want saver_of_week only", types(got))
	}

	if got := ev.ComparisonBadges(comparison(100, 30), comparison(100, 50), nil); len(got) != 0 {
		t.Fatalf("increases: got %v, want none", types(got))
	}
}

func TestComparisonBadges_OverrideDescriptions(t *testing.T) {
	ev := NewEvaluator(DefaultCatalog().Merge(Catalog{
		model.BadgeSuperSaverWeek:  {Description: "Cut 20% spending"},
		model.BadgeSuperSaverMonth: {Description: "Down {percent}% vs {percent}% goal"},
	}))

	got := ev.ComparisonBadges(comparison(100, -25), comparison(100, -40), EarnedSet{
		model.BadgeSaverOfWeek:  {},
		model.BadgeSaverOfMonth: {},
	})
	if len(got) != 2 {
		t.Fatalf("ComparisonBadges = %v, want both super saver badges", types(got))
	}
	if got[0].Description != "Cut 20% spending" {
		t.Fatalf("literal percent description = %q, want it unchanged", got[0].Description)
	}
	if got[1].Description != "Down 40% vs 40% goal" {
		t.Fatalf("placeholder description = %q", got[1].Description)
	}
}

func TestEvaluator_NeverReturnsEarned(t *testing.T) {
	ev := NewEvaluator(DefaultCatalog())
	rng := rand.New(rand.NewSource(3))
	kinds := []model.ExpenseType{model.ExpenseNeed, model.ExpenseWant}

	for round := 0; round < 300; round++ {
		earned := EarnedSet{}
		for _, bt := range model.BadgeTypes {
			if rng.Intn(2) == 0 {
				earned[bt] = struct{}{}
			}
		}
		var expenses []model.Expense
		for i := rng.Intn(30); i > 0; i-- {
			expenses = append(expenses, exp(model.Categories[rng.Intn(5)], float64(rng.Intn(200)), kinds[rng.Intn(2)]))
		}
		awards := ev.ActivityBadges(expenses, float64(rng.Intn(3000)), earned)
		awards = append(awards, ev.ComparisonBadges(
			comparison(float64(rng.Intn(200)), float64(rng.Intn(100)-60)),
			comparison(float64(rng.Intn(200)), float64(rng.Intn(100)-60)),
			earned)...)

		for _, a := range awards {
			if earned.Has(a.Type) {
				t.Fatalf("round %d: returned earned type %q", round, a.Type)
			}
		}
	}
}

func TestCatalog_Fallback(t *testing.T) {
	ev := NewEvaluator(nil)
	a := ev.Award(model.BadgeSuperSaverMonth)
	if a.Name != "super_saver_month" || a.Description != "" {
		t.Fatalf("Award = %+v, want type string name and empty description", a)
	}

	got := ev.ComparisonBadges(comparison(100, 0), comparison(100, -50), nil)
	for _, g := range got {
		if g.Type == model.BadgeSuperSaverMonth && g.Description != "" {
			t.Fatalf("fallback description = %q, want empty", g.Description)
		}
	}
}

func TestCatalog_Merge(t *testing.T) {
	base := DefaultCatalog()
	merged := base.Merge(Catalog{
		model.BadgeBudgetKeeper: {Name: "Penny Pincher"},
		"custom":                {Name: "Custom"},
	})

	if got := merged.Lookup(model.BadgeBudgetKeeper); got.Name != "Penny Pincher" || got.Description != "Stayed within monthly budget" {
		t.Fatalf("merged budget_keeper = %+v", got)
	}
	if got := merged.Lookup("custom"); got.Name != "Custom" {
		t.Fatalf("merged custom = %+v", got)
	}
	if base.Lookup(model.BadgeBudgetKeeper).Name != "Budget Keeper" {
		t.Fatal("Merge mutated the base catalog")
	}
}

func TestComplete(t *testing.T) {
	ev := NewEvaluator(DefaultCatalog())
	earned := []model.Badge{
		{Type: model.BadgeTrackingChampion, Name: "Tracking Champion"},
	}
	fresh := []model.BadgeAward{
		ev.Award(model.BadgeBudgetKeeper),
		ev.Award(model.BadgeTrackingChampion),
	}

	got := types(ev.Complete(earned, fresh))
	if len(got) != 2 || got[0] != model.BadgeTrackingChampion || got[1] != model.BadgeBudgetKeeper {
		t.Fatalf("Complete = %v, want tracking_champion then budget_keeper", got)
	}
}
