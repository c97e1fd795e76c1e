package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/spendwise/internal/store"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "june.jsonl",
		`{"id":"a","item_name":"Lunch","amount":12,"category":"Food","date":"2025-06-02"}`+"\n"+
			`{"id":"b","item_name":"Bus","amount":2.5,"category":"Travel","date":"2025-06-02"}`+"\n")
	writeFile(t, dir, "may.csv", "item_name,amount,category,date\nRent,900,Bills,2025-05-01\nbad,x,Food,2025-05-01\n")
	writeFile(t, dir, "broken.csv", "name,price\n")

	var calls int
	result, err := Load(dir, func(current, total int) {
		calls++
		if total != 3 {
			t.Errorf("progress total = %d, want 3", total)
		}
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.TotalFiles != 3 || result.ParsedFiles != 2 || result.FileErrors != 1 {
		t.Fatalf("files = %d/%d/%d, want 3/2/1", result.TotalFiles, result.ParsedFiles, result.FileErrors)
	}
	if len(result.Expenses) != 3 {
		t.Fatalf("Expenses = %d, want 3", len(result.Expenses))
	}
	if result.ParseErrors != 1 {
		t.Fatalf("ParseErrors = %d, want 1", result.ParseErrors)
	}
	if calls != 3 {
		t.Fatalf("progress calls = %d, want 3", calls)
	}
}

func TestLoad_EmptyDir(t *testing.T) {
	result, err := Load(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.TotalFiles != 0 || len(result.Expenses) != 0 {
		t.Fatalf("result = %+v, want empty", result)
	}
}

type memTracker map[string]store.FileInfo

func (m memTracker) TrackedFiles(context.Context) (map[string]store.FileInfo, error) {
	return m, nil
}

func TestLoadIncremental_SkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	old := writeFile(t, dir, "old.jsonl", `{"id":"a","item_name":"Lunch","amount":12,"category":"Food","date":"2025-06-02"}`+"\n")
	writeFile(t, dir, "new.jsonl", `{"id":"b","item_name":"Bus","amount":2.5,"category":"Travel","date":"2025-06-02"}`+"\n")

	info, err := os.Stat(old)
	if err != nil {
		t.Fatal(err)
	}
	tracker := memTracker{old: {Path: old, MtimeNs: info.ModTime().UnixNano(), SizeBytes: info.Size()}}

	result, err := LoadIncremental(context.Background(), dir, tracker, nil)
	if err != nil {
		t.Fatalf("LoadIncremental: %v", err)
	}
	if result.Unchanged != 1 || result.Reparsed != 1 {
		t.Fatalf("unchanged/reparsed = %d/%d, want 1/1", result.Unchanged, result.Reparsed)
	}
	if len(result.Expenses) != 1 || result.Expenses[0].ID != "b" {
		t.Fatalf("Expenses = %+v, want only b", result.Expenses)
	}
	if len(result.Changed) != 1 || filepath.Base(result.Changed[0].Path) != "new.jsonl" {
		t.Fatalf("Changed = %+v, want new.jsonl", result.Changed)
	}
}
