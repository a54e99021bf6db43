package utils_test

import (
	"testing"
	"time"

	"github.com/meenmo/caplib/utils"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestBracketIndices(t *testing.T) {
	t.Parallel()

	dates := []time.Time{d(2022, 1, 1), d(2023, 1, 1), d(2024, 1, 1)}
	cases := []struct {
		target time.Time
		lo, hi int
	}{
		{d(2022, 6, 1), 0, 1},   // interior
		{d(2023, 1, 1), 0, 1},   // exact pivot brackets from below
		{d(2023, 6, 1), 1, 2},   // second interval
		{d(2021, 6, 1), 0, 1},   // before range clamps to first pair
		{d(2025, 6, 1), 1, 2},   // after range clamps to last pair
		{d(2022, 1, 1), 0, 1},   // reference date itself
	}
	for _, c := range cases {
		lo, hi := utils.BracketIndices(dates, c.target)
		if lo != c.lo || hi != c.hi {
			t.Fatalf("BracketIndices(%s): got (%d,%d) want (%d,%d)",
				c.target.Format("2006-01-02"), lo, hi, c.lo, c.hi)
		}
	}
}

func TestAddMonthEndOfMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		start  time.Time
		months int
		want   time.Time
	}{
		{d(2022, 1, 31), 1, d(2022, 2, 28)},  // clamps instead of normalizing to March
		{d(2022, 1, 31), 3, d(2022, 4, 30)},
		{d(2024, 1, 31), 1, d(2024, 2, 29)},  // leap February
		{d(2022, 3, 31), -1, d(2022, 2, 28)},
		{d(2022, 1, 15), 1, d(2022, 2, 15)},  // plain dates untouched
	}
	for _, c := range cases {
		if got := utils.AddMonth(c.start, c.months); !got.Equal(c.want) {
			t.Fatalf("AddMonth(%s, %d): got %s want %s",
				c.start.Format("2006-01-02"), c.months,
				got.Format("2006-01-02"), c.want.Format("2006-01-02"))
		}
	}
}
