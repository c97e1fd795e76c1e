package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/spendwise/internal/insight"
	"github.com/theirongolddev/spendwise/internal/model"
)

// BadgeStatus is one catalog entry with the user's progress on it.
type BadgeStatus struct {
	Type     model.BadgeType   `json:"type"`
	Info     insight.BadgeInfo `json:"info"`
	Earned   bool              `json:"earned"`
	EarnedAt *time.Time        `json:"earned_at,omitempty"`
}

// Rewards is the points, badges and certificates view.
type Rewards struct {
	Points       int                 `json:"points"`
	ExpenseCount int                 `json:"expense_count"`
	Earned       []model.Badge       `json:"earned"`
	Catalog      []BadgeStatus       `json:"catalog"`
	Certificates []model.Certificate `json:"certificates"`
}

// Rewards computes points, lists every badge type with its status and
// issues a certificate for each earned badge that lacks one.
func (s *Service) Rewards(ctx context.Context, userID string) (*Rewards, error) {
	prof, err := s.profile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	badges, err := s.store.ListBadges(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading badges: %w", err)
	}
	count, err := s.store.CountExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}
	certs, err := s.issueCertificates(ctx, prof, badges)
	if err != nil {
		return nil, err
	}

	r := &Rewards{
		Points:       insight.Points(len(badges), count),
		ExpenseCount: count,
		Earned:       badges,
		Certificates: certs,
	}

	byType := make(map[model.BadgeType]model.Badge, len(badges))
	for _, b := range badges {
		byType[b.Type] = b
	}
	for _, t := range model.BadgeTypes {
		st := BadgeStatus{Type: t, Info: s.catalog.Lookup(t)}
		if b, ok := byType[t]; ok {
			earnedAt := b.EarnedAt
			st.Earned, st.EarnedAt = true, &earnedAt
			// The stored text carries the values it was earned with.
			if b.Description != "" {
				st.Info.Description = b.Description
			}
		}
		r.Catalog = append(r.Catalog, st)
	}
	return r, nil
}

func (s *Service) issueCertificates(ctx context.Context, prof model.Profile, badges []model.Badge) ([]model.Certificate, error) {
	certs, err := s.store.ListCertificates(ctx, prof.ID)
	if err != nil {
		return nil, fmt.Errorf("loading certificates: %w", err)
	}
	have := make(map[string]bool, len(certs))
	for _, c := range certs {
		have[c.BadgeID] = true
	}

	recipient := prof.Name
	if recipient == "" {
		recipient = prof.ID
	}
	issued := false
	for _, b := range badges {
		if have[b.ID] {
			continue
		}
		c := model.Certificate{
			UserID:          prof.ID,
			BadgeID:         b.ID,
			CertificateType: b.Type,
			IssuedAt:        s.now(),
			RecipientName:   recipient,
			BadgeName:       b.Name,
			Description:     b.Description,
		}
		if err := s.store.IssueCertificate(ctx, &c); err != nil {
			return nil, err
		}
		issued = true
	}
	if !issued {
		return certs, nil
	}
	return s.store.ListCertificates(ctx, prof.ID)
}
