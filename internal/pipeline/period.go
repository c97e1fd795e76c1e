package pipeline

import (
	"time"

	"github.com/theirongolddev/spendwise/internal/model"
)

// WeekRange returns Monday 00:00:00.000 through Sunday 23:59:59.999 of the
// week weeksAgo weeks before the week containing now. Sunday closes its week.
func WeekRange(now time.Time, weeksAgo int) model.Period {
	diff := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		diff = 6
	}
	monday := time.Date(now.Year(), now.Month(), now.Day()-diff-7*weeksAgo, 0, 0, 0, 0, now.Location())
	return model.Period{Start: monday, End: endOfDay(monday.AddDate(0, 0, 6))}
}

// MonthRange returns the first through last calendar day of the month
// monthsAgo months before now's month. Year boundaries roll over.
func MonthRange(now time.Time, monthsAgo int) model.Period {
	first := time.Date(now.Year(), now.Month()-time.Month(monthsAgo), 1, 0, 0, 0, 0, now.Location())
	// Day 0 of the following month normalizes to the last day of this one.
	last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, now.Location())
	return model.Period{Start: first, End: endOfDay(last)}
}

// RangeFor dispatches to WeekRange or MonthRange.
func RangeFor(kind model.PeriodKind, now time.Time, offset int) model.Period {
	if kind == model.PeriodWeek {
		return WeekRange(now, offset)
	}
	return MonthRange(now, offset)
}

// endOfDay returns 23:59:59.999 on t's calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// startOfDay returns midnight on t's calendar day.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
