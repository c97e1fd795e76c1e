package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/theirongolddev/spendwise/internal/source"
	"github.com/theirongolddev/spendwise/internal/store"
)

// FileTracker reports which export files were already imported and in what
// state. *store.Store implements it.
type FileTracker interface {
	TrackedFiles(ctx context.Context) (map[string]store.FileInfo, error)
}

// IncrementalResult extends LoadResult with tracking metadata.
type IncrementalResult struct {
	LoadResult
	Unchanged int
	Reparsed  int
	// Changed lists the files parsed in this run with their current mtime
	// and size. The caller records them once the expenses are saved.
	Changed []store.FileInfo
}

// LoadIncremental discovers exports under dir, skips files whose mtime and
// size match the tracker, and parses only the rest.
func LoadIncremental(ctx context.Context, dir string, tracker FileTracker, progressFn ProgressFunc) (*IncrementalResult, error) {
	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &IncrementalResult{LoadResult: LoadResult{TotalFiles: len(files)}}
	if len(files) == 0 {
		return result, nil
	}

	tracked, err := tracker.TrackedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading file tracker: %w", err)
	}

	var toParse []source.DiscoveredFile
	var infos []store.FileInfo
	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			continue
		}
		fi := store.FileInfo{Path: f.Path, MtimeNs: info.ModTime().UnixNano(), SizeBytes: info.Size()}

		if prev, ok := tracked[f.Path]; ok && prev.MtimeNs == fi.MtimeNs && prev.SizeBytes == fi.SizeBytes {
			result.Unchanged++
			continue
		}
		toParse = append(toParse, f)
		infos = append(infos, fi)
	}
	result.Reparsed = len(toParse)

	if len(toParse) == 0 {
		return result, nil
	}

	results := parseAll(toParse, result.Unchanged, result.TotalFiles, progressFn)
	collect(&result.LoadResult, results)
	for i, pr := range results {
		if pr.Err == nil {
			result.Changed = append(result.Changed, infos[i])
		}
	}
	return result, nil
}
