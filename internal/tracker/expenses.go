package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/pipeline"
	"github.com/theirongolddev/spendwise/internal/source"
)

// ExpenseInput is an expense as entered by a user. Empty category, type
// and date default to Food, want and today.
type ExpenseInput struct {
	ItemName string  `json:"item_name"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Type     string  `json:"expense_type"`
	Date     string  `json:"date"`
}

// AddExpense validates in and stores it for userID.
func (s *Service) AddExpense(ctx context.Context, userID string, in ExpenseInput) (model.Expense, error) {
	e, err := s.buildExpense(userID, in)
	if err != nil {
		return model.Expense{}, err
	}
	if err := s.store.AddExpense(ctx, &e); err != nil {
		return model.Expense{}, err
	}
	return e, nil
}

func (s *Service) buildExpense(userID string, in ExpenseInput) (model.Expense, error) {
	name := strings.TrimSpace(in.ItemName)
	if name == "" {
		return model.Expense{}, fmt.Errorf("%w: item name is required", ErrInvalidExpense)
	}
	amount := decimal.NewFromFloat(in.Amount).Round(2)
	if !amount.IsPositive() {
		return model.Expense{}, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidExpense)
	}

	cat := model.CategoryFood
	if in.Category != "" {
		c, err := model.ParseCategory(in.Category)
		if err != nil {
			return model.Expense{}, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
		}
		cat = c
	}
	typ := model.ExpenseWant
	if in.Type != "" {
		t, err := model.ParseExpenseType(in.Type)
		if err != nil {
			return model.Expense{}, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
		}
		typ = t
	}

	now := s.now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if in.Date != "" {
		d, err := source.ParseDate(in.Date)
		if err != nil {
			return model.Expense{}, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
		}
		date = d
	}

	return model.Expense{
		UserID:    userID,
		ItemName:  name,
		Amount:    amount.InexactFloat64(),
		Category:  cat,
		Type:      typ,
		Date:      date,
		CreatedAt: now,
	}, nil
}

// HistoryQuery filters and orders the expense history. An empty or "all"
// category matches every category.
type HistoryQuery struct {
	Search   string
	Category string
	SortBy   pipeline.SortField
	Desc     bool
}

// History returns a user's expenses filtered and sorted per q.
func (s *Service) History(ctx context.Context, userID string, q HistoryQuery) ([]model.Expense, error) {
	expenses, err := s.store.AllExpenses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}

	if q.Category != "" && !strings.EqualFold(q.Category, "all") {
		cat, err := model.ParseCategory(q.Category)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidExpense, err)
		}
		expenses = pipeline.FilterByCategory(expenses, cat)
	}
	expenses = pipeline.Search(expenses, q.Search)

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = pipeline.SortByDate
	}
	return pipeline.SortExpenses(expenses, sortBy, q.Desc), nil
}

// DeleteExpense removes one expense.
func (s *Service) DeleteExpense(ctx context.Context, userID, id string) error {
	if err := s.store.DeleteExpense(ctx, userID, id); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "expense_id": id}).Debug("expense removed from history")
	return nil
}
