// Package daemon provides the long-running background refresh service and
// its local JSON/SSE API.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendwise/internal/model"
	"github.com/theirongolddev/spendwise/internal/tracker"
)

// Event types.
const (
	EventSnapshot     = "snapshot"
	EventRefresh      = "refresh"
	EventBadgeEarned  = "badge_earned"
	EventExpenseAdded = "expense_added"
)

// refreshTimeout bounds one scheduled refresh.
const refreshTimeout = 30 * time.Second

// Engine is the tracker surface the daemon serves. *tracker.Service
// implements it.
type Engine interface {
	Dashboard(ctx context.Context, userID string) (*tracker.Dashboard, error)
	Insights(ctx context.Context, userID string) (*tracker.Insights, error)
	Rewards(ctx context.Context, userID string) (*tracker.Rewards, error)
	History(ctx context.Context, userID string, q tracker.HistoryQuery) ([]model.Expense, error)
	AddExpense(ctx context.Context, userID string, in tracker.ExpenseInput) (model.Expense, error)
	DeleteExpense(ctx context.Context, userID, id string) error
	Goals(ctx context.Context, userID string) ([]model.Goal, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	UserID       string
	Addr         string
	Schedule     string // standard five-field cron spec
	EventsBuffer int
}

// Snapshot is a compact spending state for status/event payloads.
type Snapshot struct {
	At                 time.Time `json:"at"`
	MonthSpent         float64   `json:"month_spent"`
	BudgetUsedPercent  float64   `json:"budget_used_percent"`
	Score              int       `json:"smart_spend_score"`
	ScoreLabel         string    `json:"score_label"`
	Expenses           int       `json:"expenses"`
	WeekChangePercent  float64   `json:"week_change_percent"`
	MonthChangePercent float64   `json:"month_change_percent"`
	Badges             int       `json:"badges"`
}

// changed reports whether anything besides the timestamp differs.
func (s Snapshot) changed(prev Snapshot) bool {
	prev.At = s.At
	return s != prev
}

// Event is emitted when the spending state changes.
type Event struct {
	ID        int64             `json:"id"`
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Snapshot  Snapshot          `json:"snapshot"`
	Badge     *model.BadgeAward `json:"badge,omitempty"`
	Expense   *model.Expense    `json:"expense,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastRefreshAt   time.Time `json:"last_refresh_at"`
	Schedule        string    `json:"schedule"`
	RefreshCount    int64     `json:"refresh_count"`
	UserID          string    `json:"user_id"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg    Config
	engine Engine
	logger *logrus.Logger

	mu            sync.RWMutex
	startedAt     time.Time
	lastRefreshAt time.Time
	refreshCount  int64
	lastError     string
	hasSnapshot   bool
	snapshot      Snapshot
	nextEventID   int64
	events        []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config. A nil logger
// discards output.
func New(cfg Config, engine Engine, logger *logrus.Logger) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8797"
	}
	if cfg.Schedule == "" {
		cfg.Schedule = "0 * * * *"
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &Service{
		cfg:       cfg,
		engine:    engine,
		logger:    logger,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and the refresh schedule until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(s.cfg.Schedule, s.refreshOnce); err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", s.cfg.Schedule, err)
	}

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.WithFields(logrus.Fields{
		"addr":     s.cfg.Addr,
		"schedule": s.cfg.Schedule,
		"user_id":  s.cfg.UserID,
	}).Info("daemon started")

	// Seed initial snapshot so status is useful immediately.
	s.refreshOnce()

	c.Start()
	defer func() { <-c.Stop().Done() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("daemon stopping")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("daemon http server: %w", err)
	}
}

// refreshOnce recomputes the dashboard and insights, publishing a refresh
// event when the snapshot moved and one event per newly earned badge.
func (s *Service) refreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	d, err := s.engine.Dashboard(ctx, s.cfg.UserID)
	var in *tracker.Insights
	if err == nil {
		in, err = s.engine.Insights(ctx, s.cfg.UserID)
	}
	now := time.Now()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastRefreshAt = now
		s.refreshCount++
		s.mu.Unlock()
		s.logger.WithError(err).Error("daemon refresh failed")
		return
	}

	snap := snapshotFrom(d, in, now)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot
	s.hasSnapshot = true
	s.snapshot = snap
	s.lastRefreshAt = now
	s.refreshCount++
	s.lastError = ""
	s.mu.Unlock()

	if !prevExists || snap.changed(prev) {
		s.emit(Event{Type: EventRefresh, Snapshot: snap})
	}
	s.announceBadges(d.NewBadges)
	s.announceBadges(in.NewBadges)
}

func snapshotFrom(d *tracker.Dashboard, in *tracker.Insights, at time.Time) Snapshot {
	snap := Snapshot{
		At:                at,
		MonthSpent:        d.Summary.Total,
		BudgetUsedPercent: d.Budget.BudgetUsedPercent,
		Score:             d.Score,
		ScoreLabel:        d.ScoreLabel,
		Expenses:          d.Summary.Count,
		Badges:            len(d.Badges),
	}
	if in != nil {
		snap.WeekChangePercent = in.Weekly.TotalChangePercent
		snap.MonthChangePercent = in.Monthly.TotalChangePercent
		if len(in.Badges) > snap.Badges {
			snap.Badges = len(in.Badges)
		}
	}
	return snap
}

// announceBadges publishes one badge_earned event per award.
func (s *Service) announceBadges(awards []model.BadgeAward) {
	for i := range awards {
		award := awards[i]
		s.logger.WithFields(logrus.Fields{
			"user_id": s.cfg.UserID,
			"badge":   award.Type,
		}).Info("badge earned")
		s.emit(Event{Type: EventBadgeEarned, Snapshot: s.currentSnapshot(), Badge: &award})
	}
}

// emit assigns the next event id and timestamp, then publishes ev.
func (s *Service) emit(ev Event) {
	s.mu.Lock()
	s.nextEventID++
	ev.ID = s.nextEventID
	s.mu.Unlock()
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	s.publishEvent(ev)
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) currentSnapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastRefreshAt:   s.lastRefreshAt,
		Schedule:        s.cfg.Schedule,
		RefreshCount:    s.refreshCount,
		UserID:          s.cfg.UserID,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Snapshot:  s.currentSnapshot(),
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
