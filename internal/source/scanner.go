package source

import (
	"os"
	"path/filepath"
	"strings"
)

// ScanDir walks dir and discovers all JSONL and CSV expense exports.
// A path that names a single supported file is returned on its own.
func ScanDir(dir string) ([]DiscoveredFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		if df, ok := classify(dir); ok {
			return []DiscoveredFile{df}, nil
		}
		return nil, nil
	}

	var files []DiscoveredFile

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // intentionally skip unreadable entries
		}
		if d.IsDir() {
			// Skip hidden directories such as .git
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if df, ok := classify(path); ok {
			files = append(files, df)
		}
		return nil
	})

	return files, err
}

func classify(path string) (DiscoveredFile, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return DiscoveredFile{Path: path, Format: FormatJSONL}, true
	case ".csv":
		return DiscoveredFile{Path: path, Format: FormatCSV}, true
	}
	return DiscoveredFile{}, false
}
