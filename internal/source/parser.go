// Package source discovers and parses expense export files (JSONL and CSV).
package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/spendwise/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// importNamespace seeds deterministic ids for rows that carry none, so
// re-importing the same file yields the same ids.
var importNamespace = uuid.MustParse("6f1c2a4e-7d0b-4f57-9b8e-2f8d3c9a1e55")

// ParseResult holds the output of parsing a single export file.
type ParseResult struct {
	Expenses    []model.Expense
	ParseErrors int
	Err         error
}

// ParseFile reads an export file and produces deduplicated expenses.
// Rows sharing an id collapse to the last occurrence, keeping the position
// of the first.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	var acc collector
	switch df.Format {
	case FormatCSV:
		err = parseCSV(f, df.Path, &acc)
	default:
		err = parseJSONL(f, df.Path, &acc)
	}
	if err != nil {
		return ParseResult{Err: err}
	}

	return ParseResult{
		Expenses:    acc.expenses,
		ParseErrors: acc.parseErrors,
	}
}

type collector struct {
	expenses    []model.Expense
	index       map[string]int
	parseErrors int
}

func (c *collector) add(e model.Expense) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[e.ID]; ok {
		c.expenses[i] = e
		return
	}
	c.index[e.ID] = len(c.expenses)
	c.expenses = append(c.expenses, e)
}

func parseJSONL(r io.Reader, path string, acc *collector) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}

		// Exports may interleave metadata records; only untyped rows and
		// "expense" rows carry data.
		if t := extractTopLevelType(line); t != "" && t != "expense" {
			continue
		}

		var raw RawExpense
		if err := json.Unmarshal(line, &raw); err != nil {
			acc.parseErrors++
			continue
		}
		e, err := raw.toExpense(path, lineNo)
		if err != nil {
			acc.parseErrors++
			continue
		}
		acc.add(e)
	}

	return scanner.Err()
}

func parseCSV(r io.Reader, path string, acc *collector) error {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("reading csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"item_name", "amount", "category", "date"} {
		if _, ok := cols[required]; !ok {
			return fmt.Errorf("csv header missing %q column", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	lineNo := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		lineNo++
		if err != nil {
			acc.parseErrors++
			continue
		}

		amount, err := decimal.NewFromString(field(rec, "amount"))
		if err != nil {
			acc.parseErrors++
			continue
		}
		raw := RawExpense{
			ID:          field(rec, "id"),
			ItemName:    field(rec, "item_name"),
			Amount:      amount,
			Category:    field(rec, "category"),
			ExpenseType: field(rec, "expense_type"),
			Date:        field(rec, "date"),
			CreatedAt:   field(rec, "created_at"),
		}
		e, err := raw.toExpense(path, lineNo)
		if err != nil {
			acc.parseErrors++
			continue
		}
		acc.add(e)
	}
}

func (raw RawExpense) toExpense(path string, lineNo int) (model.Expense, error) {
	name := strings.TrimSpace(raw.ItemName)
	if name == "" {
		return model.Expense{}, errors.New("missing item_name")
	}
	if raw.Amount.IsNegative() {
		return model.Expense{}, fmt.Errorf("negative amount %s", raw.Amount)
	}
	cat, err := model.ParseCategory(raw.Category)
	if err != nil {
		return model.Expense{}, err
	}
	typ := model.ExpenseWant
	if raw.ExpenseType != "" {
		if typ, err = model.ParseExpenseType(raw.ExpenseType); err != nil {
			return model.Expense{}, err
		}
	}
	date, err := ParseDate(raw.Date)
	if err != nil {
		return model.Expense{}, err
	}

	e := model.Expense{
		ID:       raw.ID,
		ItemName: name,
		Amount:   raw.Amount.Round(2).InexactFloat64(),
		Category: cat,
		Type:     typ,
		Date:     date,
	}
	if e.ID == "" {
		e.ID = uuid.NewSHA1(importNamespace, []byte(fmt.Sprintf("%s:%d", path, lineNo))).String()
	}
	if raw.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339Nano, raw.CreatedAt); err == nil {
			e.CreatedAt = ts
		}
	}
	return e, nil
}

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns local midnight of that
// calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// typeKey is the byte sequence for a JSON key named "type" (with quotes).
var typeKey = []byte(`"type"`)

// extractTopLevelType finds the top-level "type" field in a JSONL line.
// Tracks brace depth and string boundaries so nested "type" keys are ignored.
func extractTopLevelType(line []byte) string {
	depth := 0
	for i := 0; i < len(line); {
		switch line[i] {
		case '"':
			if depth == 1 && bytes.HasPrefix(line[i:], typeKey) {
				if val, isKey := typeValue(line, i+len(typeKey)); isKey {
					return val
				}
			}
			i = skipJSONString(line, i)
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
		default:
			i++
		}
	}
	return ""
}

// typeValue reads the string following a "type" key. isKey=false means the
// match was a value, not a key, and the caller should keep scanning.
func typeValue(line []byte, pos int) (val string, isKey bool) {
	i := skipSpaces(line, pos)
	if i >= len(line) || line[i] != ':' {
		return "", false
	}
	i = skipSpaces(line, i+1)
	if i >= len(line) || line[i] != '"' {
		return "", true
	}
	i++

	end := bytes.IndexByte(line[i:], '"')
	if end < 0 || end > 32 {
		return "", true
	}
	return string(line[i : i+end]), true
}

// skipJSONString advances past a JSON string starting at the opening quote.
//
//nolint:gosec // manual bounds checking throughout
func skipJSONString(line []byte, i int) int {
	i++ // skip opening quote
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

func skipSpaces(line []byte, i int) int {
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}
