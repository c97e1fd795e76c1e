package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendwise/internal/model"
)

const expenseColumns = "id, user_id, item_name, amount, category, expense_type, date, created_at"

// AddExpense inserts e, assigning an id and creation time when missing.
func (s *Store) AddExpense(ctx context.Context, e *model.Expense) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, "INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		expenseArgs(*e)...)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", e.UserID).Error("insert expense failed")
		return fmt.Errorf("inserting expense: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"expense_id": e.ID,
		"user_id":    e.UserID,
		"amount":     e.Amount,
		"category":   e.Category,
	}).Info("expense added")
	return nil
}

// AddExpenses inserts a batch in one transaction. Rows whose id already
// exists are skipped. It returns the number of rows inserted.
func (s *Store) AddExpenses(ctx context.Context, expenses []model.Expense) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	inserted := 0
	for _, e := range expenses {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		res, err := stmt.ExecContext(ctx, expenseArgs(e)...)
		if err != nil {
			return 0, fmt.Errorf("inserting expense %s: %w", e.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing expenses: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"rows":     len(expenses),
		"inserted": inserted,
	}).Info("expense batch saved")
	return inserted, nil
}

// ListExpenses returns a user's expenses dated within p, newest first.
func (s *Store) ListExpenses(ctx context.Context, userID string, p model.Period) ([]model.Expense, error) {
	return s.queryExpenses(ctx, "SELECT "+expenseColumns+` FROM expenses
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date DESC, created_at DESC`,
		userID, formatDate(p.Start), formatDate(p.End))
}

// AllExpenses returns every expense of a user, newest first.
func (s *Store) AllExpenses(ctx context.Context, userID string) ([]model.Expense, error) {
	return s.queryExpenses(ctx, "SELECT "+expenseColumns+` FROM expenses
		WHERE user_id = ? ORDER BY date DESC, created_at DESC`, userID)
}

// GetExpense returns one expense of a user, or ErrNotFound.
func (s *Store) GetExpense(ctx context.Context, userID, id string) (model.Expense, error) {
	list, err := s.queryExpenses(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE user_id = ? AND id = ?", userID, id)
	if err != nil {
		return model.Expense{}, err
	}
	if len(list) == 0 {
		return model.Expense{}, ErrNotFound
	}
	return list[0], nil
}

// DeleteExpense removes one expense of a user.
func (s *Store) DeleteExpense(ctx context.Context, userID, id string) error {
	err := expectOne(s.db.ExecContext(ctx, "DELETE FROM expenses WHERE user_id = ? AND id = ?", userID, id))
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"expense_id": id, "user_id": userID}).Info("expense deleted")
	return nil
}

// CountExpenses returns the number of expenses a user has logged.
func (s *Store) CountExpenses(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM expenses WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting expenses: %w", err)
	}
	return count, nil
}

func expenseArgs(e model.Expense) []any {
	return []any{
		e.ID, e.UserID, e.ItemName, money(e.Amount), string(e.Category), string(e.Type),
		formatDate(e.Date), formatTime(e.CreatedAt),
	}
}

func (s *Store) queryExpenses(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Expense
	for rows.Next() {
		var e model.Expense
		var amount, category, typ, date, created string
		if err := rows.Scan(&e.ID, &e.UserID, &e.ItemName, &amount, &category, &typ, &date, &created); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		if e.Amount, err = parseMoney(amount); err != nil {
			return nil, err
		}
		if e.Date, err = parseDate(date); err != nil {
			return nil, fmt.Errorf("parsing expense date: %w", err)
		}
		e.Category = model.Category(category)
		e.Type = model.ExpenseType(typ)
		e.CreatedAt = parseTime(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

