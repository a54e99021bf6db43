package schedule_test

import (
	"errors"
	"testing"
	"time"

	"github.com/meenmo/caplib/calendar"
	"github.com/meenmo/caplib/schedule"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestGenerateQuarterlyYear(t *testing.T) {
	t.Parallel()

	sched, err := schedule.Generate(schedule.Params{
		Start:      d(2022, 1, 1),
		End:        d(2023, 1, 1),
		Tenor:      schedule.MustParsePeriod("3M"),
		Calendar:   calendar.Weekends,
		Convention: calendar.ModifiedFollowing,
		Rule:       schedule.Backward,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	want := []time.Time{
		d(2022, 1, 3),
		d(2022, 4, 1),
		d(2022, 7, 1),
		d(2022, 10, 3),
		d(2023, 1, 2),
	}
	dates := sched.Dates()
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d", len(want), len(dates))
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Fatalf("date %d: got %s want %s", i,
				dates[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			t.Fatalf("dates not strictly increasing at %d", i)
		}
	}
}

func TestGenerateBackwardFrontStub(t *testing.T) {
	t.Parallel()

	sched, err := schedule.Generate(schedule.Params{
		Start:      d(2022, 1, 1),
		End:        d(2022, 8, 1),
		Tenor:      schedule.MustParsePeriod("3M"),
		Calendar:   calendar.Null,
		Convention: calendar.Unadjusted,
		Rule:       schedule.Backward,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	want := []time.Time{d(2022, 1, 1), d(2022, 2, 1), d(2022, 5, 1), d(2022, 8, 1)}
	dates := sched.Dates()
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d: %v", len(want), len(dates), dates)
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Fatalf("date %d: got %s want %s", i,
				dates[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestGenerateForwardBackStub(t *testing.T) {
	t.Parallel()

	sched, err := schedule.Generate(schedule.Params{
		Start:      d(2022, 1, 15),
		End:        d(2022, 7, 1),
		Tenor:      schedule.MustParsePeriod("3M"),
		Calendar:   calendar.Null,
		Convention: calendar.Unadjusted,
		Rule:       schedule.Forward,
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	want := []time.Time{d(2022, 1, 15), d(2022, 4, 15), d(2022, 7, 1)}
	dates := sched.Dates()
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d: %v", len(want), len(dates), dates)
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Fatalf("date %d: got %s want %s", i,
				dates[i].Format("2006-01-02"), want[i].Format("2006-01-02"))
		}
	}
}

func TestGenerateRejectsEmptyInterval(t *testing.T) {
	t.Parallel()

	_, err := schedule.Generate(schedule.Params{
		Start:      d(2022, 1, 1),
		End:        d(2022, 1, 1),
		Tenor:      schedule.MustParsePeriod("3M"),
		Calendar:   calendar.Null,
		Convention: calendar.Unadjusted,
		Rule:       schedule.Backward,
	})
	var cfgErr schedule.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want schedule.Period
	}{
		{"3M", schedule.Period{Length: 3, Unit: schedule.Months}},
		{"10y", schedule.Period{Length: 10, Unit: schedule.Years}},
		{"1W", schedule.Period{Length: 1, Unit: schedule.Weeks}},
		{"91D", schedule.Period{Length: 91, Unit: schedule.Days}},
	}
	for _, tc := range cases {
		got, err := schedule.ParsePeriod(tc.in)
		if err != nil {
			t.Fatalf("ParsePeriod(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePeriod(%q): got %v want %v", tc.in, got, tc.want)
		}
	}
	if _, err := schedule.ParsePeriod("3X"); err == nil {
		t.Fatalf("expected error for unknown unit")
	}
}

func TestPeriodAddToEndOfMonth(t *testing.T) {
	t.Parallel()

	p := schedule.MustParsePeriod("1M")
	got := p.AddTo(d(2022, 1, 31), 1, true)
	if !got.Equal(d(2022, 2, 28)) {
		t.Fatalf("eom roll: got %s", got.Format("2006-01-02"))
	}
}
