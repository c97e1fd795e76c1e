package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/spendwise/internal/model"
)

// ListNudges returns a user's most recent nudges, newest first. A limit of
// zero or less returns all of them.
func (s *Store) ListNudges(ctx context.Context, userID string, limit int) ([]model.Nudge, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, message, category, is_read, created_at
		FROM nudges WHERE user_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying nudges: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Nudge
	for rows.Next() {
		var n model.Nudge
		var category sql.NullString
		var isRead int
		var created string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &category, &isRead, &created); err != nil {
			return nil, fmt.Errorf("scanning nudge: %w", err)
		}
		n.Category = model.Category(category.String)
		n.IsRead = isRead != 0
		n.CreatedAt = parseTime(created)
		out = append(out, n)
	}
	return out, rows.Err()
}

// InsertNudges stores new advisory messages for a user.
func (s *Store) InsertNudges(ctx context.Context, userID string, messages []string, at time.Time) ([]model.Nudge, error) {
	if len(messages) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	out := make([]model.Nudge, 0, len(messages))
	for _, msg := range messages {
		n := model.Nudge{ID: uuid.NewString(), UserID: userID, Message: msg, CreatedAt: at}
		_, err := tx.ExecContext(ctx, `INSERT INTO nudges (id, user_id, message, category, is_read, created_at)
			VALUES (?, ?, ?, NULL, 0, ?)`, n.ID, n.UserID, n.Message, formatTime(n.CreatedAt))
		if err != nil {
			return nil, fmt.Errorf("inserting nudge: %w", err)
		}
		out = append(out, n)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing nudges: %w", err)
	}
	return out, nil
}

// MarkNudgeRead flags a nudge as read.
func (s *Store) MarkNudgeRead(ctx context.Context, userID, id string) error {
	err := expectOne(s.db.ExecContext(ctx, "UPDATE nudges SET is_read = 1 WHERE user_id = ? AND id = ?", userID, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("marking nudge read: %w", err)
	}
	return err
}
