package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/source"
)

// GoalInput is a savings goal as entered by a user.
type GoalInput struct {
	Title    string  `json:"title"`
	Target   float64 `json:"target_amount"`
	Current  float64 `json:"current_amount"`
	Deadline string  `json:"deadline"`
}

// AddGoal validates in and stores a new goal.
func (s *Service) AddGoal(ctx context.Context, userID string, in GoalInput) (model.Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Goal{}, fmt.Errorf("%w: title is required", ErrInvalidGoal)
	}
	if in.Target <= 0 {
		return model.Goal{}, fmt.Errorf("%w: target must be greater than zero", ErrInvalidGoal)
	}
	if in.Current < 0 {
		return model.Goal{}, fmt.Errorf("%w: saved amount must not be negative", ErrInvalidGoal)
	}

	g := model.Goal{
		UserID:        userID,
		Title:         title,
		TargetAmount:  in.Target,
		CurrentAmount: in.Current,
		CreatedAt:     s.now(),
	}
	if in.Deadline != "" {
		d, err := source.ParseDate(in.Deadline)
		if err != nil {
			return model.Goal{}, fmt.Errorf("%w: %v", ErrInvalidGoal, err)
		}
		g.Deadline = &d
	}
	if err := s.store.AddGoal(ctx, &g); err != nil {
		return model.Goal{}, err
	}
	return g, nil
}

// Goals lists a user's goals, newest first.
func (s *Service) Goals(ctx context.Context, userID string) ([]model.Goal, error) {
	return s.store.ListGoals(ctx, userID)
}

// UpdateGoalProgress sets how much has been saved toward a goal.
func (s *Service) UpdateGoalProgress(ctx context.Context, userID, id string, current float64) error {
	if current < 0 {
		return fmt.Errorf("%w: saved amount must not be negative", ErrInvalidGoal)
	}
	return s.store.UpdateGoalProgress(ctx, userID, id, current)
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(ctx context.Context, userID, id string) error {
	return s.store.DeleteGoal(ctx, userID, id)
}
