package insight

import (
	"math/rand"
	"testing"
	"time"

	"github.com/theirongolddev/spendwise/internal/model"
)

func exp(cat model.Category, amount float64, typ model.ExpenseType) model.Expense {
	return model.Expense{
		Category: cat,
		Amount:   amount,
		Type:     typ,
		Date:     time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local),
	}
}

func TestScore_Example(t *testing.T) {
	expenses := []model.Expense{
		exp(model.CategoryFood, 50, model.ExpenseNeed),
		exp(model.CategoryFood, 150, model.ExpenseWant),
	}
	// budget 200% -> -30, wants 75% -> -20, Food 100% -> -10
	if got := Score(expenses, 100, nil); got != 40 {
		t.Fatalf("Score = %d, want 40", got)
	}
}

func TestScore_Empty(t *testing.T) {
	prev := []model.Expense{exp(model.CategoryFood, 10, model.ExpenseWant)}
	for _, budget := range []float64{0, 1, 1e6} {
		if got := Score(nil, budget, prev); got != 100 {
			t.Fatalf("Score(empty, %v) = %d, want 100", budget, got)
		}
	}
}

func TestScore_Tiers(t *testing.T) {
	even := []model.Expense{
		exp(model.CategoryFood, 20, model.ExpenseNeed),
		exp(model.CategoryShopping, 20, model.ExpenseNeed),
		exp(model.CategoryTravel, 20, model.ExpenseNeed),
		exp(model.CategoryBills, 20, model.ExpenseNeed),
		exp(model.CategoryOther, 20, model.ExpenseNeed),
	}

	tests := []struct {
		name     string
		budget   float64
		previous []model.Expense
		want     int
	}{
		{"no budget", 0, nil, 100},
		{"under 80%", 200, nil, 100},
		{"85% usage", 100 / 0.85, nil, 90},
		{"95% usage", 100 / 0.95, nil, 80},
		{"over budget", 50, nil, 70},
		{"growth 25%", 0, []model.Expense{exp(model.CategoryFood, 80, model.ExpenseNeed)}, 90},
		{"growth 50%", 0, []model.Expense{exp(model.CategoryFood, 66, model.ExpenseNeed)}, 85},
		{"zero previous total", 0, []model.Expense{exp(model.CategoryFood, 0, model.ExpenseNeed)}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(even, tt.budget, tt.previous); got != tt.want {
				t.Fatalf("Score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScore_ConcentrationAccumulates(t *testing.T) {
	expenses := []model.Expense{
		exp(model.CategoryFood, 500, model.ExpenseWant),
		exp(model.CategoryTravel, 500, model.ExpenseWant),
		exp(model.CategoryBills, 10, model.ExpenseWant),
	}
	prev := []model.Expense{exp(model.CategoryTravel, 10, model.ExpenseWant)}
	// -30 budget, -20 wants, -10 per concentrated category twice, -15 growth.
	if got := Score(expenses, 10, prev); got != 15 {
		t.Fatalf("Score = %d, want 15", got)
	}
}

func TestScore_AlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	types := []model.ExpenseType{model.ExpenseNeed, model.ExpenseWant}
	for i := 0; i < 500; i++ {
		var cur, prev []model.Expense
		for j := rng.Intn(10); j > 0; j-- {
			cur = append(cur, exp(model.Categories[rng.Intn(5)], float64(rng.Intn(500)), types[rng.Intn(2)]))
		}
		for j := rng.Intn(5); j > 0; j-- {
			prev = append(prev, exp(model.Categories[rng.Intn(5)], float64(rng.Intn(500)), types[rng.Intn(2)]))
		}
		got := Score(cur, float64(rng.Intn(1000)), prev)
		if got < 0 || got > 100 {
			t.Fatalf("Score = %d, out of [0,100]", got)
		}
	}
}

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, LabelExcellent},
		{80, LabelExcellent},
		{79, LabelGood},
		{60, LabelGood},
		{40, LabelFair},
		{39, LabelNeedsImprovement},
		{0, LabelNeedsImprovement},
	}
	for _, tt := range tests {
		if got := ScoreLabel(tt.score); got != tt.want {
			t.Errorf("ScoreLabel(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
