// Package utils holds small date helpers shared by the curve and schedule
// packages.
package utils

import (
	"sort"
	"time"
)

// BracketIndices returns the indices of the two adjacent dates from a
// sorted slice that bracket target, using binary search. If target is
// outside the range it returns the nearest boundary pair, which callers
// use for extrapolation.
func BracketIndices(dates []time.Time, target time.Time) (int, int) {
	if len(dates) < 2 {
		panic("BracketIndices: need at least 2 dates")
	}

	// First index with dates[i] >= target.
	i := sort.Search(len(dates), func(i int) bool {
		return !dates[i].Before(target)
	})

	if i <= 0 {
		return 0, 1
	}
	if i >= len(dates) {
		return len(dates) - 2, len(dates) - 1
	}
	return i - 1, i
}

// AddMonth behaves like Excel's EDATE, avoiding Go's month normalization surprises.
func AddMonth(t time.Time, months int) time.Time {
	target := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if target.Month() == t.AddDate(0, months, 0).Month() {
		return t.AddDate(0, months, 0)
	}

	d := t.AddDate(0, months, 0)
	origMonth := d.Month()
	for d.Month() == origMonth {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
