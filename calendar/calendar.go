package calendar

import "time"

// ID identifies a holiday calendar.
type ID string

const (
	// Null treats every day, including weekends, as a business day.
	// Useful for theoretical schedules and curve grids.
	Null ID = "NULL"
	// Weekends treats Saturdays and Sundays as holidays and nothing else.
	Weekends ID = "WEEKENDS"
	// TARGET is the Trans-European Automated Real-time Gross settlement calendar.
	TARGET ID = "TARGET"
)

// Convention selects a business-day rolling rule.
type Convention string

const (
	Unadjusted        Convention = "UNADJUSTED"
	Following         Convention = "FOLLOWING"
	ModifiedFollowing Convention = "MODIFIED_FOLLOWING"
	Preceding         Convention = "PRECEDING"
)

var targetHolidays map[string]struct{}

func init() {
	targetHolidays = make(map[string]struct{}, len(targetHolidayList))
	for _, h := range targetHolidayList {
		targetHolidays[h] = struct{}{}
	}
}

func isHoliday(cal ID, t time.Time) bool {
	if cal == TARGET {
		_, ok := targetHolidays[t.Format("2006-01-02")]
		return ok
	}
	return false
}

// IsBusinessDay checks weekends and the calendar's holiday set.
func IsBusinessDay(cal ID, t time.Time) bool {
	if cal == Null {
		return true
	}
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust rolls t onto a business day per the given convention.
func Adjust(cal ID, t time.Time, conv Convention) time.Time {
	switch conv {
	case Unadjusted:
		return t
	case Following:
		return adjustFollowing(cal, t)
	case Preceding:
		return adjustPreceding(cal, t)
	default:
		// Modified Following: roll forward unless that crosses a month
		// boundary, in which case roll backward instead.
		origMonth := t.Month()
		adj := adjustFollowing(cal, t)
		if adj.Month() != origMonth {
			return adjustPreceding(cal, t)
		}
		return adj
	}
}

func adjustFollowing(cal ID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func adjustPreceding(cal ID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal ID, t time.Time, n int) time.Time {
	if cal == Null {
		return t.AddDate(0, 0, n)
	}
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}

// LastBusinessDayOfMonth returns the last business day of the month containing t.
func LastBusinessDayOfMonth(cal ID, t time.Time) time.Time {
	nextMonth := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return AddBusinessDays(cal, nextMonth, -1)
}

// IsEndOfMonth checks if t is the last business day of its month.
func IsEndOfMonth(cal ID, t time.Time) bool {
	return t.Equal(LastBusinessDayOfMonth(cal, t))
}
