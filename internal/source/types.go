package source

import "github.com/shopspring/decimal"

// Format identifies an export file layout.
type Format string

// Supported export formats.
const (
	FormatJSONL Format = "jsonl"
	FormatCSV   Format = "csv"
)

// DiscoveredFile represents an expense export found during directory scanning.
type DiscoveredFile struct {
	Path   string
	Format Format
}

// RawExpense is one expense row as it appears in an export. Amount accepts
// both JSON numbers and quoted decimal strings.
type RawExpense struct {
	Type        string          `json:"type,omitempty"`
	ID          string          `json:"id,omitempty"`
	ItemName    string          `json:"item_name"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	ExpenseType string          `json:"expense_type"`
	Date        string          `json:"date"`
	CreatedAt   string          `json:"created_at,omitempty"`
}
