package pipeline

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		weeksAgo  int
		wantStart time.Time
	}{
		{"wednesday", time.Date(2025, 6, 11, 14, 30, 0, 0, time.Local), 0, day(2025, 6, 9)},
		{"monday", time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local), 0, day(2025, 6, 9)},
		{"sunday closes its week", time.Date(2025, 6, 15, 23, 0, 0, 0, time.Local), 0, day(2025, 6, 9)},
		{"previous week", time.Date(2025, 6, 11, 9, 0, 0, 0, time.Local), 1, day(2025, 6, 2)},
		{"across year", time.Date(2025, 1, 1, 9, 0, 0, 0, time.Local), 0, day(2024, 12, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := WeekRange(tt.now, tt.weeksAgo)
			if !p.Start.Equal(tt.wantStart) {
				t.Fatalf("Start = %v, want %v", p.Start, tt.wantStart)
			}
			if p.Start.Weekday() != time.Monday {
				t.Fatalf("Start weekday = %v, want Monday", p.Start.Weekday())
			}
			wantEnd := time.Date(tt.wantStart.Year(), tt.wantStart.Month(), tt.wantStart.Day()+6,
				23, 59, 59, int(999*time.Millisecond), time.Local)
			if !p.End.Equal(wantEnd) {
				t.Fatalf("End = %v, want %v", p.End, wantEnd)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	now := time.Date(2025, 1, 20, 10, 0, 0, 0, time.Local)

	cur := MonthRange(now, 0)
	if !cur.Start.Equal(day(2025, 1, 1)) {
		t.Fatalf("current Start = %v, want 2025-01-01", cur.Start)
	}
	if cur.End.Day() != 31 || cur.End.Hour() != 23 || cur.End.Nanosecond() != int(999*time.Millisecond) {
		t.Fatalf("current End = %v, want Jan 31 23:59:59.999", cur.End)
	}

	prev := MonthRange(now, 1)
	if !prev.Start.Equal(day(2024, 12, 1)) {
		t.Fatalf("previous Start = %v, want 2024-12-01", prev.Start)
	}
	if prev.End.Year() != 2024 || prev.End.Month() != time.December || prev.End.Day() != 31 {
		t.Fatalf("previous End = %v, want 2024-12-31", prev.End)
	}

	feb := MonthRange(time.Date(2024, 3, 31, 12, 0, 0, 0, time.Local), 1)
	if feb.End.Month() != time.February || feb.End.Day() != 29 {
		t.Fatalf("leap February End = %v, want Feb 29", feb.End)
	}
}
