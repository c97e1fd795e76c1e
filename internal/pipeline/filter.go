package pipeline

import (
	"sort"
	"strings"

	"github.com/theirongolddev/spendwise/internal/model"
)

// SortField selects the ordering key for SortExpenses.
type SortField string

// Sort fields.
const (
	SortByDate   SortField = "date"
	SortByAmount SortField = "amount"
)

// FilterByPeriod returns expenses dated within p, inclusive on both ends.
func FilterByPeriod(expenses []model.Expense, p model.Period) []model.Expense {
	var out []model.Expense
	for _, e := range expenses {
		if p.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByCategory returns expenses in the given category.
func FilterByCategory(expenses []model.Expense, cat model.Category) []model.Expense {
	var out []model.Expense
	for _, e := range expenses {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	return out
}

// Search returns expenses whose item name contains query, ignoring case.
func Search(expenses []model.Expense, query string) []model.Expense {
	query = strings.TrimSpace(query)
	if query == "" {
		return expenses
	}
	var out []model.Expense
	for _, e := range expenses {
		if containsIgnoreCase(e.ItemName, query) {
			out = append(out, e)
		}
	}
	return out
}

// SortExpenses returns a sorted copy. Equal keys keep their input order.
func SortExpenses(expenses []model.Expense, field SortField, desc bool) []model.Expense {
	out := make([]model.Expense, len(expenses))
	copy(out, expenses)

	less := func(i, j int) bool {
		if field == SortByAmount {
			return out[i].Amount < out[j].Amount
		}
		return out[i].Date.Before(out[j].Date)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
	return out
}

// containsIgnoreCase reports whether substr is within s, case-insensitive.
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
