package pipeline

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/theirongolddev/spendwise/internal/model"
)

func exp(cat model.Category, amount float64, typ model.ExpenseType) model.Expense {
	return model.Expense{Category: cat, Amount: amount, Type: typ, Date: day(2025, 6, 10)}
}

func TestCategoryStats_Example(t *testing.T) {
	stats := CategoryStats([]model.Expense{
		exp(model.CategoryFood, 50, model.ExpenseNeed),
		exp(model.CategoryFood, 150, model.ExpenseWant),
	})

	if len(stats) != 5 {
		t.Fatalf("len(stats) = %d, want 5", len(stats))
	}
	food := stats[0]
	if food.Category != model.CategoryFood {
		t.Fatalf("stats[0].Category = %q, want Food", food.Category)
	}
	if food.Total != 200 || food.Percentage != 100 || food.NeedsTotal != 50 || food.WantsTotal != 150 || food.Count != 2 {
		t.Fatalf("food = %+v", food)
	}

	// Zero categories keep enumeration order after the populated one.
	want := []model.Category{model.CategoryFood, model.CategoryShopping, model.CategoryTravel, model.CategoryBills, model.CategoryOther}
	for i, cs := range stats {
		if cs.Category != want[i] {
			t.Fatalf("stats[%d].Category = %q, want %q", i, cs.Category, want[i])
		}
	}
}

func TestCategoryStats_SortAndTies(t *testing.T) {
	stats := CategoryStats([]model.Expense{
		exp(model.CategoryOther, 10, model.ExpenseWant),
		exp(model.CategoryTravel, 30, model.ExpenseNeed),
		exp(model.CategoryShopping, 10, model.ExpenseWant),
	})

	want := []model.Category{model.CategoryTravel, model.CategoryShopping, model.CategoryOther, model.CategoryFood, model.CategoryBills}
	for i, cs := range stats {
		if cs.Category != want[i] {
			t.Fatalf("stats[%d].Category = %q, want %q", i, cs.Category, want[i])
		}
	}
}

func TestCategoryStats_Empty(t *testing.T) {
	for _, cs := range CategoryStats(nil) {
		if cs.Total != 0 || cs.Percentage != 0 {
			t.Fatalf("empty stats = %+v, want zeros", cs)
		}
	}
}

func TestCategoryStats_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	types := []model.ExpenseType{model.ExpenseNeed, model.ExpenseWant}

	for round := 0; round < 200; round++ {
		var expenses []model.Expense
		var sum float64
		n := rng.Intn(40)
		for i := 0; i < n; i++ {
			amount := float64(rng.Intn(100000)) / 100
			expenses = append(expenses, exp(model.Categories[rng.Intn(5)], amount, types[rng.Intn(2)]))
			sum += amount
		}

		var total, pct float64
		for _, cs := range CategoryStats(expenses) {
			if math.Abs(cs.Total-(cs.NeedsTotal+cs.WantsTotal)) > 1e-9 {
				t.Fatalf("round %d: %q total %v != needs %v + wants %v", round, cs.Category, cs.Total, cs.NeedsTotal, cs.WantsTotal)
			}
			total += cs.Total
			pct += cs.Percentage
		}
		if math.Abs(total-sum) > 1e-6 {
			t.Fatalf("round %d: sum(Total) = %v, want %v", round, total, sum)
		}
		if len(expenses) > 0 && sum > 0 && math.Abs(pct-100) > 1e-6 {
			t.Fatalf("round %d: sum(Percentage) = %v, want 100", round, pct)
		}
	}
}

func TestAggregate_OnlyPresentCategories(t *testing.T) {
	b := Aggregate([]model.Expense{
		exp(model.CategoryFood, 0.1, model.ExpenseNeed),
		exp(model.CategoryFood, 0.2, model.ExpenseNeed),
		exp(model.CategoryBills, 70, model.ExpenseNeed),
	})

	if b.Total != 70.3 {
		t.Fatalf("Total = %v, want 70.3", b.Total)
	}
	if len(b.Categories) != 2 {
		t.Fatalf("Categories = %v, want Food and Bills only", b.Categories)
	}
	if b.Categories[model.CategoryFood] != 0.3 {
		t.Fatalf("Food = %v, want exactly 0.3", b.Categories[model.CategoryFood])
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]model.Expense{
		exp(model.CategoryFood, 40, model.ExpenseNeed),
		exp(model.CategoryTravel, 60, model.ExpenseWant),
	})
	if s.Total != 100 || s.NeedsTotal != 40 || s.WantsTotal != 60 || s.Count != 2 {
		t.Fatalf("Summarize = %+v", s)
	}
}

func TestAggregateDays(t *testing.T) {
	p := WeekRange(time.Date(2025, 6, 11, 12, 0, 0, 0, time.Local), 0)
	days := AggregateDays([]model.Expense{
		{Amount: 5, Date: day(2025, 6, 9)},
		{Amount: 7, Date: day(2025, 6, 9)},
		{Amount: 3, Date: day(2025, 6, 15)},
		{Amount: 99, Date: day(2025, 6, 16)}, // next week
	}, p)

	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}
	if days[0].Total != 12 || days[0].Count != 2 {
		t.Fatalf("Monday = %+v, want total 12 count 2", days[0])
	}
	if days[3].Total != 0 {
		t.Fatalf("Thursday = %+v, want zero", days[3])
	}
	if days[6].Total != 3 {
		t.Fatalf("Sunday = %+v, want 3", days[6])
	}
}

func TestDaysRemaining(t *testing.T) {
	p := MonthRange(time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), 0)
	if got := DaysRemaining(p, time.Date(2025, 6, 28, 18, 0, 0, 0, time.Local)); got != 3 {
		t.Fatalf("DaysRemaining = %d, want 3", got)
	}
	if got := DaysRemaining(p, time.Date(2025, 7, 2, 0, 0, 0, 0, time.Local)); got != 0 {
		t.Fatalf("DaysRemaining after period = %d, want 0", got)
	}
}
