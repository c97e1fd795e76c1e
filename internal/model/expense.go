// Package model defines domain types for spendwise expenses, budgets and rewards.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Category is one of the fixed spending categories.
type Category string

// Spending categories.
const (
	CategoryFood     Category = "Food"
	CategoryShopping Category = "Shopping"
	CategoryTravel   Category = "Travel"
	CategoryBills    Category = "Bills"
	CategoryOther    Category = "Other"
)

// Categories lists every category in enumeration order. Ties in sorted
// output and per-category rule evaluation follow this order.
var Categories = []Category{
	CategoryFood,
	CategoryShopping,
	CategoryTravel,
	CategoryBills,
	CategoryOther,
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	return c.Index() >= 0
}

// Index returns the enumeration position of c, or -1 for unknown values.
func (c Category) Index() int {
	for i, cat := range Categories {
		if cat == c {
			return i
		}
	}
	return -1
}

// ParseCategory resolves a case-insensitive category name.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, cat := range Categories {
		if strings.EqualFold(string(cat), s) {
			return cat, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// ExpenseType classifies an expense as essential or discretionary.
type ExpenseType string

// Expense types.
const (
	ExpenseNeed ExpenseType = "need"
	ExpenseWant ExpenseType = "want"
)

// Valid reports whether t is need or want.
func (t ExpenseType) Valid() bool {
	return t == ExpenseNeed || t == ExpenseWant
}

// ParseExpenseType resolves a case-insensitive expense type.
func ParseExpenseType(s string) (ExpenseType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "need":
		return ExpenseNeed, nil
	case "want":
		return ExpenseWant, nil
	}
	return "", fmt.Errorf("unknown expense type %q", s)
}

// Expense is one logged purchase.
type Expense struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	ItemName  string      `json:"item_name"`
	Amount    float64     `json:"amount"`
	Category  Category    `json:"category"`
	Type      ExpenseType `json:"expense_type"`
	Date      time.Time   `json:"date"` // calendar date, midnight local time
	CreatedAt time.Time   `json:"created_at"`
}
