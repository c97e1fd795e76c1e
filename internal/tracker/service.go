// Package tracker runs the spending analytics engine against the store: it
// builds the dashboard, insights and rewards views, persists the nudges,
// badges and snapshots they produce, and validates user input.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendwise/internal/insight"
	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/store"
)

// Validation errors. Callers match them with errors.Is.
var (
	ErrInvalidExpense = errors.New("invalid expense")
	ErrInvalidGoal    = errors.New("invalid goal")
	ErrInvalidBudget  = errors.New("invalid budget")
)

// Store is the persistence the service needs. *store.Store implements it.
type Store interface {
	GetProfile(ctx context.Context, id string) (model.Profile, error)
	UpsertProfile(ctx context.Context, p model.Profile) error
	SetMonthlyBudget(ctx context.Context, id string, budget float64) error

	AddExpense(ctx context.Context, e *model.Expense) error
	AddExpenses(ctx context.Context, expenses []model.Expense) (int, error)
	ListExpenses(ctx context.Context, userID string, p model.Period) ([]model.Expense, error)
	AllExpenses(ctx context.Context, userID string) ([]model.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error
	CountExpenses(ctx context.Context, userID string) (int, error)

	AddGoal(ctx context.Context, g *model.Goal) error
	ListGoals(ctx context.Context, userID string) ([]model.Goal, error)
	UpdateGoalProgress(ctx context.Context, userID, id string, current float64) error
	DeleteGoal(ctx context.Context, userID, id string) error

	ListBadges(ctx context.Context, userID string) ([]model.Badge, error)
	InsertBadges(ctx context.Context, userID string, awards []model.BadgeAward, earnedAt time.Time) ([]model.Badge, error)
	IssueCertificate(ctx context.Context, c *model.Certificate) error
	ListCertificates(ctx context.Context, userID string) ([]model.Certificate, error)

	ListNudges(ctx context.Context, userID string, limit int) ([]model.Nudge, error)
	InsertNudges(ctx context.Context, userID string, messages []string, at time.Time) ([]model.Nudge, error)
	MarkNudgeRead(ctx context.Context, userID, id string) error

	UpsertComparison(ctx context.Context, userID string, cmp model.PeriodComparison) error
	ListComparisons(ctx context.Context, userID string, kind model.PeriodKind, limit int) ([]model.PeriodData, error)
	UpsertInsight(ctx context.Context, in model.SpendingInsight) error
	ListInsights(ctx context.Context, userID string, limit int) ([]model.SpendingInsight, error)

	TrackedFiles(ctx context.Context, userID string) (map[string]store.FileInfo, error)
	TrackFiles(ctx context.Context, userID string, files []store.FileInfo) error
}

// Service orchestrates the analytics engine for one or more users.
type Service struct {
	store     Store
	logger    *logrus.Logger
	evaluator *insight.Evaluator
	catalog   insight.Catalog
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCatalog overrides the badge display catalog.
func WithCatalog(c insight.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

// New returns a service over st.
func New(st Store, logger *logrus.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	s := &Service{
		store:   st,
		logger:  logger,
		catalog: insight.DefaultCatalog(),
		now:     time.Now,
		locks:   make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.evaluator = insight.NewEvaluator(s.catalog)
	return s
}

// Catalog returns the badge display catalog in use.
func (s *Service) Catalog() insight.Catalog {
	return s.catalog
}

// userLock serializes the read-earned-then-insert badge sequence per user.
func (s *Service) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// awardBadges inserts whatever eval finds newly eligible and returns the
// fresh awards plus the complete list.
func (s *Service) awardBadges(ctx context.Context, userID string, eval func(insight.EarnedSet) []model.BadgeAward) (fresh, all []model.BadgeAward, err error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	earned, err := s.store.ListBadges(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	candidates := eval(insight.NewEarnedSet(earned))
	inserted, err := s.store.InsertBadges(ctx, userID, candidates, s.now())
	if err != nil {
		return nil, nil, err
	}
	for _, b := range inserted {
		fresh = append(fresh, b.Award())
	}
	return fresh, s.evaluator.Complete(earned, fresh), nil
}

// profile returns the stored profile, or an empty one for unknown users.
func (s *Service) profile(ctx context.Context, userID string) (model.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return model.Profile{ID: userID}, nil
	}
	return p, err
}

// SyncProfile creates the profile if missing and applies a non-empty name
// and a non-nil budget from configuration.
func (s *Service) SyncProfile(ctx context.Context, userID, name string, budget *float64) (model.Profile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		p = model.Profile{ID: userID, CreatedAt: s.now()}
	case err != nil:
		return model.Profile{}, err
	}

	if name != "" {
		p.Name = name
	}
	if budget != nil {
		if *budget < 0 {
			return model.Profile{}, ErrInvalidBudget
		}
		p.MonthlyBudget = *budget
	}
	if err := s.store.UpsertProfile(ctx, p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// SetBudget updates the monthly budget, creating the profile if needed.
func (s *Service) SetBudget(ctx context.Context, userID string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%w: budget must not be negative", ErrInvalidBudget)
	}
	if _, err := s.SyncProfile(ctx, userID, "", &amount); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{"user_id": userID, "budget": amount}).Info("budget updated")
	return nil
}
