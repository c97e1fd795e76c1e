package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/spendwise/internal/model"
)

// writeExport creates a temp export file and returns a DiscoveredFile for it.
func writeExport(t *testing.T, name string, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	df, ok := classify(path)
	if !ok {
		t.Fatalf("classify(%q) rejected test file", path)
	}
	return df
}

func TestParseFile_JSONL(t *testing.T) {
	df := writeExport(t, "expenses.jsonl",
		`{"id":"a","item_name":"Groceries","amount":42.5,"category":"Food","expense_type":"need","date":"2025-06-01"}`,
		`{"id":"b","item_name":"Sneakers","amount":"89.99","category":"shopping","expense_type":"want","date":"2025-06-02T15:04:05Z"}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Expenses) != 2 {
		t.Fatalf("Expenses = %d, want 2", len(result.Expenses))
	}

	e := result.Expenses[0]
	if e.Amount != 42.5 || e.Category != model.CategoryFood || e.Type != model.ExpenseNeed {
		t.Errorf("first expense = %+v", e)
	}
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	if !e.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", e.Date, want)
	}

	s := result.Expenses[1]
	if s.Amount != 89.99 {
		t.Errorf("quoted amount = %v, want 89.99", s.Amount)
	}
	if s.Category != model.CategoryShopping {
		t.Errorf("Category = %q, want Shopping", s.Category)
	}
}

func TestParseFile_Dedup(t *testing.T) {
	// Two rows with the same id; the second wins but keeps the first slot.
	df := writeExport(t, "expenses.jsonl",
		`{"id":"a","item_name":"Coffee","amount":3,"category":"Food","expense_type":"want","date":"2025-06-01"}`,
		`{"id":"b","item_name":"Rent","amount":900,"category":"Bills","expense_type":"need","date":"2025-06-01"}`,
		`{"id":"a","item_name":"Coffee","amount":4.25,"category":"Food","expense_type":"want","date":"2025-06-01"}`,
	)

	result := ParseFile(df)
	if len(result.Expenses) != 2 {
		t.Fatalf("Expenses = %d, want 2 (dedup)", len(result.Expenses))
	}
	if result.Expenses[0].ID != "a" || result.Expenses[0].Amount != 4.25 {
		t.Errorf("Expenses[0] = %+v, want id a with amount 4.25 (last wins)", result.Expenses[0])
	}
}

func TestParseFile_MalformedLines(t *testing.T) {
	df := writeExport(t, "expenses.jsonl",
		`not json at all`,
		`{"type":"meta","exported_by":"app"}`,
		`{"item_name":"Taxi","amount":12,"category":"Travel","date":"2025-06-03"}`,
		`{"item_name":"broken json`,
		`{"item_name":"Mystery","amount":5,"category":"Gadgets","date":"2025-06-03"}`,
		`{"item_name":"Refund","amount":-5,"category":"Other","date":"2025-06-03"}`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Expenses) != 1 {
		t.Fatalf("Expenses = %d, want 1", len(result.Expenses))
	}
	if result.ParseErrors != 3 {
		t.Errorf("ParseErrors = %d, want 3", result.ParseErrors)
	}
	if result.Expenses[0].Type != model.ExpenseWant {
		t.Errorf("default Type = %q, want want", result.Expenses[0].Type)
	}
}

func TestParseFile_DeterministicIDs(t *testing.T) {
	df := writeExport(t, "expenses.jsonl",
		`{"item_name":"Taxi","amount":12,"category":"Travel","date":"2025-06-03"}`,
	)

	first := ParseFile(df)
	second := ParseFile(df)
	if first.Expenses[0].ID == "" {
		t.Fatal("generated ID is empty")
	}
	if first.Expenses[0].ID != second.Expenses[0].ID {
		t.Errorf("IDs differ across parses: %q vs %q", first.Expenses[0].ID, second.Expenses[0].ID)
	}
}

func TestParseFile_CSV(t *testing.T) {
	df := writeExport(t, "expenses.csv",
		`item_name,amount,category,expense_type,date`,
		`Groceries,42.505,Food,need,2025-06-01`,
		`"Flight, return",310,Travel,want,2025-06-04`,
		`Bad row,abc,Food,need,2025-06-01`,
	)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Expenses) != 2 {
		t.Fatalf("Expenses = %d, want 2", len(result.Expenses))
	}
	if result.Expenses[0].Amount != 42.51 {
		t.Errorf("rounded Amount = %v, want 42.51", result.Expenses[0].Amount)
	}
	if result.Expenses[1].ItemName != "Flight, return" {
		t.Errorf("quoted ItemName = %q", result.Expenses[1].ItemName)
	}
	if result.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", result.ParseErrors)
	}
}

func TestParseFile_CSVMissingColumn(t *testing.T) {
	df := writeExport(t, "expenses.csv",
		`item_name,category,date`,
		`Groceries,Food,2025-06-01`,
	)

	result := ParseFile(df)
	if result.Err == nil {
		t.Fatal("expected error for missing amount column")
	}
}

func TestParseFile_EmptyFile(t *testing.T) {
	df := writeExport(t, "empty.jsonl")
	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error on empty file: %v", result.Err)
	}
	if len(result.Expenses) != 0 {
		t.Error("expected no expenses for empty file")
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.jsonl", "b.csv", "notes.txt", filepath.Join(".hidden", "c.csv"), filepath.Join("sub", "d.ndjson")} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("files = %d, want 3: %+v", len(files), files)
	}

	missing, err := ScanDir(filepath.Join(dir, "nope"))
	if err != nil || missing != nil {
		t.Errorf("ScanDir(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestExtractTopLevelType(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"expense", `{"type":"expense","item_name":"x"}`, "expense"},
		{"meta", `{"type": "meta"}`, "meta"},
		{"nested type ignored", `{"data":{"type":"inner"},"type":"expense"}`, "expense"},
		{"type as value", `{"kind":"type","item_name":"x"}`, ""},
		{"no type field", `{"item_name":"hello"}`, ""},
		{"empty", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractTopLevelType([]byte(tt.input))
			if got != tt.want {
				t.Errorf("extractTopLevelType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// FuzzExtractTopLevelType checks the byte-level scanner never panics on
// arbitrary input, since it processes untrusted files.
func FuzzExtractTopLevelType(f *testing.F) {
	f.Add([]byte(`{"type":"expense","amount":1}`))
	f.Add([]byte(`{"data":{"type":"nested"},"type":"meta"}`))
	f.Add([]byte(`not json`))
	f.Add([]byte(`{}`))
	f.Add([]byte(`{"type":null}`))
	f.Add([]byte(``))
	f.Add([]byte(`{"type":"exp`)) // unterminated string

	f.Fuzz(func(t *testing.T, data []byte) {
		_ = extractTopLevelType(data)
	})
}
