package store

import (
	"context"
	"fmt"
)

// FileInfo holds the tracked mtime and size for an imported file.
type FileInfo struct {
	Path      string
	MtimeNs   int64
	SizeBytes int64
}

// TrackedFiles returns a map of file_path -> FileInfo for the files userID
// has imported.
func (s *Store) TrackedFiles(ctx context.Context, userID string) (map[string]FileInfo, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT file_path, mtime_ns, size_bytes FROM file_tracker WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("querying file tracker: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var fi FileInfo
		if err := rows.Scan(&fi.Path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[fi.Path] = fi
	}
	return result, rows.Err()
}

// TrackFiles records the state of files imported for userID so unchanged
// files are skipped next time.
func (s *Store) TrackFiles(ctx context.Context, userID string, files []FileInfo) error {
	if len(files) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, f := range files {
		_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO file_tracker (user_id, file_path, mtime_ns, size_bytes)
			VALUES (?, ?, ?, ?)`, userID, f.Path, f.MtimeNs, f.SizeBytes)
		if err != nil {
			return fmt.Errorf("tracking %s: %w", f.Path, err)
		}
	}
	return tx.Commit()
}
