package calendar_test

import (
	"testing"
	"time"

	"github.com/meenmo/caplib/calendar"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestIsBusinessDay(t *testing.T) {
	t.Parallel()

	saturday := d(2022, 1, 1)
	if calendar.IsBusinessDay(calendar.Weekends, saturday) {
		t.Fatalf("2022-01-01 is a Saturday")
	}
	if !calendar.IsBusinessDay(calendar.Null, saturday) {
		t.Fatalf("null calendar treats every day as business day")
	}
	// Good Friday 2022 on TARGET.
	if calendar.IsBusinessDay(calendar.TARGET, d(2022, 4, 15)) {
		t.Fatalf("2022-04-15 is a TARGET holiday")
	}
	if !calendar.IsBusinessDay(calendar.Weekends, d(2022, 4, 15)) {
		t.Fatalf("2022-04-15 is a weekday on the weekends calendar")
	}
}

func TestAdjust(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		date time.Time
		conv calendar.Convention
		want time.Time
	}{
		{"unadjusted keeps weekend", d(2022, 1, 1), calendar.Unadjusted, d(2022, 1, 1)},
		{"following rolls forward", d(2022, 1, 1), calendar.Following, d(2022, 1, 3)},
		{"preceding rolls back", d(2022, 1, 1), calendar.Preceding, d(2021, 12, 31)},
		{"mf stays in month", d(2022, 1, 1), calendar.ModifiedFollowing, d(2022, 1, 3)},
		{"mf rolls back at month end", d(2022, 4, 30), calendar.ModifiedFollowing, d(2022, 4, 29)},
		{"business day untouched", d(2022, 1, 5), calendar.ModifiedFollowing, d(2022, 1, 5)},
	}
	for _, tc := range cases {
		got := calendar.Adjust(calendar.Weekends, tc.date, tc.conv)
		if !got.Equal(tc.want) {
			t.Fatalf("%s: got %s want %s", tc.name,
				got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
		}
	}
}

func TestAddBusinessDays(t *testing.T) {
	t.Parallel()

	// Thursday + 2 business days skips the weekend.
	got := calendar.AddBusinessDays(calendar.Weekends, d(2022, 1, 6), 2)
	if !got.Equal(d(2022, 1, 10)) {
		t.Fatalf("forward: got %s", got.Format("2006-01-02"))
	}
	// Monday - 1 business day lands on Friday.
	got = calendar.AddBusinessDays(calendar.Weekends, d(2022, 1, 10), -1)
	if !got.Equal(d(2022, 1, 7)) {
		t.Fatalf("backward: got %s", got.Format("2006-01-02"))
	}
	// Null calendar counts calendar days.
	got = calendar.AddBusinessDays(calendar.Null, d(2022, 1, 6), 2)
	if !got.Equal(d(2022, 1, 8)) {
		t.Fatalf("null: got %s", got.Format("2006-01-02"))
	}
}

func TestEndOfMonth(t *testing.T) {
	t.Parallel()

	// April 2022 ends on a Saturday; last business day is the 29th.
	last := calendar.LastBusinessDayOfMonth(calendar.Weekends, d(2022, 4, 12))
	if !last.Equal(d(2022, 4, 29)) {
		t.Fatalf("last business day: got %s", last.Format("2006-01-02"))
	}
	if !calendar.IsEndOfMonth(calendar.Weekends, d(2022, 4, 29)) {
		t.Fatalf("2022-04-29 is the month's last business day")
	}
	if calendar.IsEndOfMonth(calendar.Weekends, d(2022, 4, 28)) {
		t.Fatalf("2022-04-28 is not the month's last business day")
	}
}
