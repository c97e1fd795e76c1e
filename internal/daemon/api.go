package daemon

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendwise/internal/pipeline"
	"github.com/theirongolddev/spendwise/internal/store"
	"github.com/theirongolddev/spendwise/internal/tracker"
)

// Handler returns the daemon's HTTP routes.
func (s *Service) Handler() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	api := router.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/status", s.handleStatus).Methods("GET")
	api.HandleFunc("/events", s.handleEvents).Methods("GET")
	api.HandleFunc("/stream", s.handleStream).Methods("GET")
	api.HandleFunc("/dashboard", s.handleDashboard).Methods("GET")
	api.HandleFunc("/insights", s.handleInsights).Methods("GET")
	api.HandleFunc("/rewards", s.handleRewards).Methods("GET")
	api.HandleFunc("/expenses", s.handleListExpenses).Methods("GET")
	api.HandleFunc("/expenses", s.handleAddExpense).Methods("POST")
	api.HandleFunc("/expenses/{id}", s.handleDeleteExpense).Methods("DELETE")
	api.HandleFunc("/goals", s.handleGoals).Methods("GET")
	return router
}

func (s *Service) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.engine.Dashboard(r.Context(), s.cfg.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.announceBadges(d.NewBadges)
	writeJSON(w, http.StatusOK, d)
}

func (s *Service) handleInsights(w http.ResponseWriter, r *http.Request) {
	in, err := s.engine.Insights(r.Context(), s.cfg.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.announceBadges(in.NewBadges)
	writeJSON(w, http.StatusOK, in)
}

func (s *Service) handleRewards(w http.ResponseWriter, r *http.Request) {
	rw, err := s.engine.Rewards(r.Context(), s.cfg.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rw)
}

// handleListExpenses serves history. Query params: search, category,
// sort (date|amount) and order (asc|desc, default desc).
func (s *Service) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hq := tracker.HistoryQuery{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Desc:     !strings.EqualFold(q.Get("order"), "asc"),
	}
	switch sortBy := pipeline.SortField(strings.ToLower(q.Get("sort"))); sortBy {
	case "", pipeline.SortByDate, pipeline.SortByAmount:
		hq.SortBy = sortBy
	default:
		writeJSON(w, http.StatusBadRequest, apiError{Error: "sort must be date or amount"})
		return
	}

	expenses, err := s.engine.History(r.Context(), s.cfg.UserID, hq)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (s *Service) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var in tracker.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.logger.WithError(err).Warn("malformed expense request")
		writeJSON(w, http.StatusBadRequest, apiError{Error: "invalid request body"})
		return
	}

	e, err := s.engine.AddExpense(r.Context(), s.cfg.UserID, in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.WithFields(logrus.Fields{
		"user_id":    s.cfg.UserID,
		"expense_id": e.ID,
		"category":   e.Category,
	}).Info("expense added")
	s.emit(Event{Type: EventExpenseAdded, Snapshot: s.currentSnapshot(), Expense: &e})
	writeJSON(w, http.StatusCreated, e)
}

func (s *Service) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.engine.DeleteExpense(r.Context(), s.cfg.UserID, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.engine.Goals(r.Context(), s.cfg.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

type apiError struct {
	Error string `json:"error"`
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, tracker.ErrInvalidExpense),
		errors.Is(err, tracker.ErrInvalidGoal),
		errors.Is(err, tracker.ErrInvalidBudget):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error("request failed")
		msg = http.StatusText(code)
	}
	writeJSON(w, code, apiError{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
