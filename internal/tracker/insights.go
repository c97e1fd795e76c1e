package tracker

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendwise/internal/insight"
	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/pipeline"
)

// Insights holds the week-over-week and month-over-month comparisons.
type Insights struct {
	Weekly    model.PeriodComparison `json:"weekly"`
	Monthly   model.PeriodComparison `json:"monthly"`
	WeekDaily []model.DailySpend     `json:"week_daily"`
	NewBadges []model.BadgeAward     `json:"new_badges"`
	Badges    []model.BadgeAward     `json:"badges"`
}

// Insights compares the current week and month with the previous ones,
// saves both current-period snapshots and awards saver badges.
func (s *Service) Insights(ctx context.Context, userID string) (*Insights, error) {
	now := s.now()

	// One query spanning both previous periods through both current ones.
	span := model.Period{Start: pipeline.MonthRange(now, 1).Start, End: pipeline.MonthRange(now, 0).End}
	if w := pipeline.WeekRange(now, 1); w.Start.Before(span.Start) {
		span.Start = w.Start
	}
	if w := pipeline.WeekRange(now, 0); w.End.After(span.End) {
		span.End = w.End
	}
	expenses, err := s.store.ListExpenses(ctx, userID, span)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}

	in := &Insights{
		Weekly:    pipeline.ComparePeriods(expenses, model.PeriodWeek, now),
		Monthly:   pipeline.ComparePeriods(expenses, model.PeriodMonth, now),
		WeekDaily: pipeline.AggregateDays(expenses, pipeline.WeekRange(now, 0)),
	}

	for _, cmp := range []model.PeriodComparison{in.Weekly, in.Monthly} {
		if err := s.store.UpsertComparison(ctx, userID, cmp); err != nil {
			return nil, fmt.Errorf("saving %s comparison: %w", cmp.Kind, err)
		}
	}

	in.NewBadges, in.Badges, err = s.awardBadges(ctx, userID, func(earned insight.EarnedSet) []model.BadgeAward {
		return s.evaluator.ComparisonBadges(in.Weekly, in.Monthly, earned)
	})
	if err != nil {
		return nil, fmt.Errorf("awarding badges: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"week_change":  in.Weekly.TotalChange,
		"month_change": in.Monthly.TotalChange,
		"new_badges":   len(in.NewBadges),
	}).Info("insights refreshed")
	return in, nil
}

// PeriodHistory returns saved period totals of one kind, newest first.
func (s *Service) PeriodHistory(ctx context.Context, userID string, kind model.PeriodKind, limit int) ([]model.PeriodData, error) {
	return s.store.ListComparisons(ctx, userID, kind, limit)
}

// Refresh runs the dashboard and insights refreshes and returns every badge
// either of them awarded.
func (s *Service) Refresh(ctx context.Context, userID string) ([]model.BadgeAward, error) {
	d, err := s.Dashboard(ctx, userID)
	if err != nil {
		return nil, err
	}
	in, err := s.Insights(ctx, userID)
	if err != nil {
		return nil, err
	}
	return append(d.NewBadges, in.NewBadges...), nil
}
