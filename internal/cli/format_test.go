package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{4.5, "$4.50"},
		{1234.567, "$1,234.57"},
		{1000000, "$1,000,000.00"},
		{-42.1, "-$42.10"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoneyShort(t *testing.T) {
	if got := FormatMoneyShort(1234.5); got != "$1,235" {
		t.Errorf("FormatMoneyShort = %q, want $1,235", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{0: "0", 999: "999", 1234567: "1,234,567", -1500: "-1,500"}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPercentAndChange(t *testing.T) {
	if got := FormatPercent(74.5); got != "75%" {
		t.Errorf("FormatPercent(74.5) = %q, want 75%%", got)
	}
	tests := map[float64]string{-20: "-20.0%", 12.34: "+12.3%", 0: "0.0%", -0.01: "0.0%"}
	for in, want := range tests {
		if got := FormatChangePercent(in); got != want {
			t.Errorf("FormatChangePercent(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	tests := map[float64]string{-20: "-$20.00", 5.5: "+$5.50", 0: "$0.00"}
	for in, want := range tests {
		if got := FormatDelta(in); got != want {
			t.Errorf("FormatDelta(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatRelative(t *testing.T) {
	now := time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)
	if got := FormatRelative(now.Add(-72*time.Hour), now); got != "3 days ago" {
		t.Errorf("FormatRelative = %q, want 3 days ago", got)
	}
	if got := FormatRelative(time.Time{}, now); got != "never" {
		t.Errorf("FormatRelative(zero) = %q, want never", got)
	}
}

func TestRenderTable_AlignsWideRunes(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Item", "Amount"},
		Rows:    [][]string{{"Café", "$4.50"}, {"---"}, {"Total", "$4.50"}},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("lines = %d, want 7:\n%s", len(lines), out)
	}
	if lipgloss.Width(lines[3]) != lipgloss.Width(lines[5]) {
		t.Errorf("row widths differ: %q vs %q", lines[3], lines[5])
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 5, 10}); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q, want ▁▄█", got)
	}
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("RenderSparkline(nil) = %q, want empty", got)
	}
}
