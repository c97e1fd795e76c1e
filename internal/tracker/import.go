package tracker

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/spendwise/internal/pipeline"
	"github.com/theirongolddev/spendwise/internal/store"
)

// ImportOptions controls an import run.
type ImportOptions struct {
	// Force reparses files even when their mtime and size are unchanged.
	Force    bool
	Progress pipeline.ProgressFunc
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Files       int `json:"files"`
	Parsed      int `json:"parsed"`
	Unchanged   int `json:"unchanged"`
	Rows        int `json:"rows"`
	Inserted    int `json:"inserted"`
	ParseErrors int `json:"parse_errors"`
	FileErrors  int `json:"file_errors"`
}

type noTracking struct{}

func (noTracking) TrackedFiles(context.Context) (map[string]store.FileInfo, error) {
	return nil, nil
}

// userFiles narrows the store's file tracker to one user.
type userFiles struct {
	store  Store
	userID string
}

func (u userFiles) TrackedFiles(ctx context.Context) (map[string]store.FileInfo, error) {
	return u.store.TrackedFiles(ctx, u.userID)
}

// Import loads JSONL and CSV exports under dir into userID's history.
// Expenses whose id already exists for userID are skipped. File tracking is
// per user, so each user imports the same directory independently.
func (s *Service) Import(ctx context.Context, userID, dir string, opts ImportOptions) (*ImportResult, error) {
	var ft pipeline.FileTracker = userFiles{store: s.store, userID: userID}
	if opts.Force {
		ft = noTracking{}
	}

	loaded, err := pipeline.LoadIncremental(ctx, dir, ft, opts.Progress)
	if err != nil {
		return nil, fmt.Errorf("loading exports: %w", err)
	}
	for i := range loaded.Expenses {
		loaded.Expenses[i].UserID = userID
	}

	res := &ImportResult{
		Files:       loaded.TotalFiles,
		Parsed:      loaded.ParsedFiles,
		Unchanged:   loaded.Unchanged,
		Rows:        len(loaded.Expenses),
		ParseErrors: loaded.ParseErrors,
		FileErrors:  loaded.FileErrors,
	}
	if len(loaded.Expenses) > 0 {
		if res.Inserted, err = s.store.AddExpenses(ctx, loaded.Expenses); err != nil {
			return nil, fmt.Errorf("saving expenses: %w", err)
		}
	}
	if err := s.store.TrackFiles(ctx, userID, loaded.Changed); err != nil {
		return nil, fmt.Errorf("tracking files: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":      userID,
		"dir":          dir,
		"files":        res.Files,
		"unchanged":    res.Unchanged,
		"inserted":     res.Inserted,
		"parse_errors": res.ParseErrors,
	}).Info("import finished")
	return res, nil
}
