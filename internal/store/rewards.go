package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendwise/internal/model"
)

// ListBadges returns a user's earned badges, oldest first.
func (s *Store) ListBadges(ctx context.Context, userID string) ([]model.Badge, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, badge_type, badge_name, description, earned_at
		FROM badges WHERE user_id = ? ORDER BY earned_at, rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying badges: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Badge
	for rows.Next() {
		var b model.Badge
		var typ, earned string
		if err := rows.Scan(&b.ID, &b.UserID, &typ, &b.Name, &b.Description, &earned); err != nil {
			return nil, fmt.Errorf("scanning badge: %w", err)
		}
		b.Type = model.BadgeType(typ)
		b.EarnedAt = parseTime(earned)
		out = append(out, b)
	}
	return out, rows.Err()
}

// InsertBadges records awards for a user. A type the user already holds is
// ignored, so concurrent refreshes cannot create duplicates. It returns the
// badges actually inserted.
func (s *Store) InsertBadges(ctx context.Context, userID string, awards []model.BadgeAward, earnedAt time.Time) ([]model.Badge, error) {
	if len(awards) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var inserted []model.Badge
	for _, a := range awards {
		b := model.Badge{
			ID:          uuid.NewString(),
			UserID:      userID,
			Type:        a.Type,
			Name:        a.Name,
			Description: a.Description,
			EarnedAt:    earnedAt,
		}
		res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO badges
			(id, user_id, badge_type, badge_name, description, earned_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			b.ID, b.UserID, string(b.Type), b.Name, b.Description, formatTime(b.EarnedAt))
		if err != nil {
			return nil, fmt.Errorf("inserting badge %s: %w", a.Type, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted = append(inserted, b)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing badges: %w", err)
	}
	for _, b := range inserted {
		s.logger.WithFields(logrus.Fields{
			"user_id":    userID,
			"badge_type": b.Type,
		}).Info("badge earned")
	}
	return inserted, nil
}

// IssueCertificate records a certificate for an earned badge. Issuing twice
// for the same badge is a no-op that returns the existing certificate.
func (s *Store) IssueCertificate(ctx context.Context, c *model.Certificate) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.IssuedAt.IsZero() {
		c.IssuedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO certificates
		(id, user_id, badge_id, certificate_type, issued_date, recipient_name, badge_name, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.BadgeID, string(c.CertificateType), formatTime(c.IssuedAt),
		c.RecipientName, c.BadgeName, c.Description)
	if err != nil {
		return fmt.Errorf("issuing certificate: %w", err)
	}

	var id, issued string
	err = s.db.QueryRowContext(ctx, "SELECT id, issued_date FROM certificates WHERE badge_id = ?", c.BadgeID).Scan(&id, &issued)
	if err != nil {
		return fmt.Errorf("reading certificate: %w", err)
	}
	c.ID, c.IssuedAt = id, parseTime(issued)
	return nil
}

// ListCertificates returns a user's certificates, newest first.
func (s *Store) ListCertificates(ctx context.Context, userID string) ([]model.Certificate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, user_id, badge_id, certificate_type, issued_date,
		recipient_name, badge_name, description
		FROM certificates WHERE user_id = ? ORDER BY issued_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying certificates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Certificate
	for rows.Next() {
		var c model.Certificate
		var typ, issued string
		if err := rows.Scan(&c.ID, &c.UserID, &c.BadgeID, &typ, &issued, &c.RecipientName, &c.BadgeName, &c.Description); err != nil {
			return nil, fmt.Errorf("scanning certificate: %w", err)
		}
		c.CertificateType = model.BadgeType(typ)
		c.IssuedAt = parseTime(issued)
		out = append(out, c)
	}
	return out, rows.Err()
}
