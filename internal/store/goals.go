package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendwise/internal/model"
)

// AddGoal inserts g, assigning an id and creation time when missing.
func (s *Store) AddGoal(ctx context.Context, g *model.Goal) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	var deadline string
	if g.Deadline != nil {
		deadline = formatDate(*g.Deadline)
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO goals
		(id, user_id, title, target_amount, current_amount, deadline, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Title, money(g.TargetAmount), money(g.CurrentAmount),
		nullString(deadline), formatTime(g.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting goal: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"goal_id": g.ID, "user_id": g.UserID}).Info("goal added")
	return nil
}

// ListGoals returns a user's goals, newest first.
func (s *Store) ListGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, title, target_amount, current_amount, deadline, created_at
		FROM goals WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Goal
	for rows.Next() {
		var g model.Goal
		var target, current, created string
		var deadline sql.NullString
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &target, &current, &deadline, &created); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		if g.TargetAmount, err = parseMoney(target); err != nil {
			return nil, err
		}
		if g.CurrentAmount, err = parseMoney(current); err != nil {
			return nil, err
		}
		if deadline.Valid && deadline.String != "" {
			if d, err := parseDate(deadline.String); err == nil {
				g.Deadline = &d
			}
		}
		g.CreatedAt = parseTime(created)
		out = append(out, g)
	}
	return out, rows.Err()
}

// UpdateGoalProgress sets the saved amount of a goal.
func (s *Store) UpdateGoalProgress(ctx context.Context, userID, id string, current float64) error {
	err := expectOne(s.db.ExecContext(ctx,
		"UPDATE goals SET current_amount = ? WHERE user_id = ? AND id = ?", money(current), userID, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("updating goal: %w", err)
	}
	return err
}

// DeleteGoal removes a goal.
func (s *Store) DeleteGoal(ctx context.Context, userID, id string) error {
	err := expectOne(s.db.ExecContext(ctx, "DELETE FROM goals WHERE user_id = ? AND id = ?", userID, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("deleting goal: %w", err)
	}
	return err
}
