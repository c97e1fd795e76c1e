package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/spendwise/internal/model"
)

// UpsertComparison saves the current-period side of a comparison, keyed by
// user, period kind and period start.
func (s *Store) UpsertComparison(ctx context.Context, userID string, cmp model.PeriodComparison) error {
	breakdown, err := json.Marshal(cmp.Current.Categories)
	if err != nil {
		return fmt.Errorf("encoding breakdown: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO spending_comparisons
		(id, user_id, period_type, period_start, period_end, total_spent, category_breakdown, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, period_type, period_start) DO UPDATE SET
			period_end = excluded.period_end,
			total_spent = excluded.total_spent,
			category_breakdown = excluded.category_breakdown,
			updated_at = excluded.updated_at`,
		uuid.NewString(), userID, string(cmp.Kind), formatDate(cmp.Current.Start), formatDate(cmp.Current.End),
		money(cmp.Current.Total), string(breakdown), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("upserting comparison: %w", err)
	}
	return nil
}

// ListComparisons returns saved period snapshots of one kind, newest first.
func (s *Store) ListComparisons(ctx context.Context, userID string, kind model.PeriodKind, limit int) ([]model.PeriodData, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT period_start, period_end, total_spent, category_breakdown
		FROM spending_comparisons WHERE user_id = ? AND period_type = ?
		ORDER BY period_start DESC LIMIT ?`, userID, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("querying comparisons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.PeriodData
	for rows.Next() {
		var start, end, total, breakdown string
		if err := rows.Scan(&start, &end, &total, &breakdown); err != nil {
			return nil, fmt.Errorf("scanning comparison: %w", err)
		}
		var pd model.PeriodData
		if pd.Start, err = parseDate(start); err != nil {
			return nil, fmt.Errorf("parsing period start: %w", err)
		}
		if pd.End, err = parseDate(end); err != nil {
			return nil, fmt.Errorf("parsing period end: %w", err)
		}
		if pd.Total, err = parseMoney(total); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(breakdown), &pd.Categories); err != nil {
			return nil, fmt.Errorf("decoding breakdown: %w", err)
		}
		out = append(out, pd)
	}
	return out, rows.Err()
}

// UpsertInsight saves the monthly score snapshot.
func (s *Store) UpsertInsight(ctx context.Context, in model.SpendingInsight) error {
	data, err := json.Marshal(in.Stats)
	if err != nil {
		return fmt.Errorf("encoding insight data: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO spending_insights
		(id, user_id, month, total_spent, smart_spend_score, insights_data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, month) DO UPDATE SET
			total_spent = excluded.total_spent,
			smart_spend_score = excluded.smart_spend_score,
			insights_data = excluded.insights_data,
			updated_at = excluded.updated_at`,
		uuid.NewString(), in.UserID, in.Month, money(in.TotalSpent), in.SmartSpendScore, string(data), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("upserting insight: %w", err)
	}
	return nil
}

// ListInsights returns monthly snapshots, newest month first.
func (s *Store) ListInsights(ctx context.Context, userID string, limit int) ([]model.SpendingInsight, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT user_id, month, total_spent, smart_spend_score, insights_data
		FROM spending_insights WHERE user_id = ? ORDER BY month DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying insights: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.SpendingInsight
	for rows.Next() {
		var in model.SpendingInsight
		var total, data string
		if err := rows.Scan(&in.UserID, &in.Month, &total, &in.SmartSpendScore, &data); err != nil {
			return nil, fmt.Errorf("scanning insight: %w", err)
		}
		if in.TotalSpent, err = parseMoney(total); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(data), &in.Stats); err != nil {
			return nil, fmt.Errorf("decoding insight data: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
