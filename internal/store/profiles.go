package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendwise/internal/model"
)

// UpsertProfile creates the profile or updates its name and budget.
func (s *Store) UpsertProfile(ctx context.Context, p model.Profile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO profiles (id, name, monthly_budget, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, monthly_budget = excluded.monthly_budget`,
		p.ID, p.Name, money(p.MonthlyBudget), formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"user_id": p.ID,
		"budget":  p.MonthlyBudget,
	}).Debug("profile saved")
	return nil
}

// GetProfile returns the profile for id, or ErrNotFound.
func (s *Store) GetProfile(ctx context.Context, id string) (model.Profile, error) {
	var p model.Profile
	var budget, created string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, monthly_budget, created_at FROM profiles WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &budget, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("reading profile: %w", err)
	}
	if p.MonthlyBudget, err = parseMoney(budget); err != nil {
		return model.Profile{}, err
	}
	p.CreatedAt = parseTime(created)
	return p, nil
}

// SetMonthlyBudget updates the budget of an existing profile.
func (s *Store) SetMonthlyBudget(ctx context.Context, id string, budget float64) error {
	err := expectOne(s.db.ExecContext(ctx,
		"UPDATE profiles SET monthly_budget = ? WHERE id = ?", money(budget), id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("updating budget: %w", err)
	}
	return nil
}
