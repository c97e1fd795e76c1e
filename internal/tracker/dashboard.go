package tracker

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendwise/internal/insight"
	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/pipeline"
)

// recentNudges is how many stored nudges the dashboard shows and checks
// for repeats before saving new ones.
const recentNudges = 5

// Dashboard is the month-to-date view.
type Dashboard struct {
	Profile    model.Profile         `json:"profile"`
	Month      model.Period          `json:"month"`
	Summary    model.Summary         `json:"summary"`
	Budget     model.BudgetStats     `json:"budget"`
	Score      int                   `json:"smart_spend_score"`
	ScoreLabel string                `json:"score_label"`
	Stats      []model.CategoryStats `json:"category_stats"`
	Daily      []model.DailySpend    `json:"daily"`
	Recent     []model.Expense       `json:"recent_expenses"`
	Impulsive  bool                  `json:"impulsive"`
	Nudges     []model.Nudge         `json:"nudges"`
	NewBadges  []model.BadgeAward    `json:"new_badges"`
	Badges     []model.BadgeAward    `json:"badges"`
}

// Dashboard scores the current month, saves new nudges, activity badges
// and the monthly insight snapshot, and returns the assembled view.
func (s *Service) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	now := s.now()
	prof, err := s.profile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}

	month := pipeline.MonthRange(now, 0)
	expenses, err := s.store.ListExpenses(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("loading month expenses: %w", err)
	}
	previous, err := s.store.ListExpenses(ctx, userID, pipeline.MonthRange(now, 1))
	if err != nil {
		return nil, fmt.Errorf("loading previous month: %w", err)
	}

	budget := prof.MonthlyBudget
	stats := pipeline.CategoryStats(expenses)
	d := &Dashboard{
		Profile:   prof,
		Month:     month,
		Summary:   pipeline.Summarize(expenses),
		Stats:     stats,
		Daily:     pipeline.AggregateDays(expenses, month),
		Impulsive: insight.DetectImpulsive(expenses),
	}
	d.Score = insight.Score(expenses, budget, previous)
	d.ScoreLabel = insight.ScoreLabel(d.Score)
	d.Budget = budgetStats(budget, d.Summary.Total, pipeline.DaysRemaining(month, now))
	d.Recent = expenses
	if len(d.Recent) > 5 {
		d.Recent = d.Recent[:5]
	}

	if d.Nudges, err = s.saveNudges(ctx, userID, insight.Nudges(expenses, budget, stats)); err != nil {
		return nil, fmt.Errorf("saving nudges: %w", err)
	}

	d.NewBadges, d.Badges, err = s.awardBadges(ctx, userID, func(earned insight.EarnedSet) []model.BadgeAward {
		return s.evaluator.ActivityBadges(expenses, budget, earned)
	})
	if err != nil {
		return nil, fmt.Errorf("awarding badges: %w", err)
	}

	err = s.store.UpsertInsight(ctx, model.SpendingInsight{
		UserID:          userID,
		Month:           month.Start.Format("2006-01"),
		TotalSpent:      d.Summary.Total,
		SmartSpendScore: d.Score,
		Stats:           stats,
	})
	if err != nil {
		return nil, fmt.Errorf("saving insight: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"expenses":   len(expenses),
		"score":      d.Score,
		"new_badges": len(d.NewBadges),
	}).Info("dashboard refreshed")
	return d, nil
}

// saveNudges stores generated messages not already among the most recent
// nudges and returns the most recent nudges afterwards.
func (s *Service) saveNudges(ctx context.Context, userID string, messages []string) ([]model.Nudge, error) {
	existing, err := s.store.ListNudges(ctx, userID, recentNudges)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, n := range existing {
		seen[n.Message] = true
	}
	var fresh []string
	for _, msg := range messages {
		if !seen[msg] {
			seen[msg] = true
			fresh = append(fresh, msg)
		}
	}
	if len(fresh) == 0 {
		return existing, nil
	}
	if _, err := s.store.InsertNudges(ctx, userID, fresh, s.now()); err != nil {
		return nil, err
	}
	return s.store.ListNudges(ctx, userID, recentNudges)
}

// Nudges returns stored nudges, newest first.
func (s *Service) Nudges(ctx context.Context, userID string, limit int) ([]model.Nudge, error) {
	return s.store.ListNudges(ctx, userID, limit)
}

// MarkNudgeRead flags one nudge as read.
func (s *Service) MarkNudgeRead(ctx context.Context, userID, id string) error {
	return s.store.MarkNudgeRead(ctx, userID, id)
}

// ScoreHistory returns saved monthly snapshots, newest month first.
func (s *Service) ScoreHistory(ctx context.Context, userID string, months int) ([]model.SpendingInsight, error) {
	return s.store.ListInsights(ctx, userID, months)
}

func budgetStats(budget, spent float64, daysLeft int) model.BudgetStats {
	bs := model.BudgetStats{
		MonthlyBudget: budget,
		Spent:         spent,
		Remaining:     budget - spent,
		DaysRemaining: daysLeft,
	}
	if budget > 0 {
		bs.BudgetUsedPercent = spent / budget * 100
	}
	return bs
}
