package index_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/meenmo/caplib/calendar"
	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/index"
	"github.com/meenmo/caplib/schedule"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func newTestIbor(rate float64) (*index.Ibor, *curve.Handle) {
	ref := d(2022, 1, 3)
	h := curve.NewHandle(curve.NewFlatForward(ref, rate, daycount.Act360))
	ix := index.NewIbor("IBOR3M", schedule.MustParsePeriod("3M"), 0, "EUR",
		calendar.Weekends, calendar.ModifiedFollowing, false, daycount.Act360, h)
	return ix, h
}

func TestIborForecastFixing(t *testing.T) {
	t.Parallel()

	ix, _ := newTestIbor(0.03)
	fix, err := ix.Fixing(d(2022, 4, 1))
	if err != nil {
		t.Fatalf("Fixing error: %v", err)
	}
	// A simple forward off a flat 3% continuous curve sits just above 3%.
	if fix < 0.03 || fix > 0.0305 {
		t.Fatalf("forecast fixing out of range: %.6f", fix)
	}
}

func TestIborPastFixing(t *testing.T) {
	t.Parallel()

	ix, _ := newTestIbor(0.03)
	past := d(2021, 12, 1)

	_, err := ix.Fixing(past)
	var missing index.MissingFixingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFixingError, got %v", err)
	}

	ix.AddFixing(past, 0.0175)
	fix, err := ix.Fixing(past)
	if err != nil {
		t.Fatalf("Fixing after AddFixing error: %v", err)
	}
	if fix != 0.0175 {
		t.Fatalf("stored fixing: got %.6f want 0.0175", fix)
	}
}

func TestIborRelinkChangesFixing(t *testing.T) {
	t.Parallel()

	ix, h := newTestIbor(0.03)
	fixing := d(2022, 4, 1)

	before, err := ix.Fixing(fixing)
	if err != nil {
		t.Fatalf("Fixing error: %v", err)
	}
	h.Relink(curve.NewFlatForward(d(2022, 1, 3), 0.06, daycount.Act360))
	after, err := ix.Fixing(fixing)
	if err != nil {
		t.Fatalf("Fixing after relink error: %v", err)
	}
	if after <= before {
		t.Fatalf("relink to higher curve should raise the fixing: %.6f -> %.6f", before, after)
	}
	if math.Abs(after/before-2.0) > 0.02 {
		t.Fatalf("fixing should roughly double: %.6f -> %.6f", before, after)
	}
}

func TestIborValueAndMaturity(t *testing.T) {
	t.Parallel()

	ref := d(2022, 1, 3)
	h := curve.NewHandle(curve.NewFlatForward(ref, 0.03, daycount.Act360))
	ix := index.NewIbor("IBOR3M", schedule.MustParsePeriod("3M"), 2, "EUR",
		calendar.Weekends, calendar.ModifiedFollowing, false, daycount.Act360, h)

	value := ix.ValueDate(d(2022, 1, 6)) // Thursday + 2 business days
	if !value.Equal(d(2022, 1, 10)) {
		t.Fatalf("value date: got %s", value.Format("2006-01-02"))
	}
	maturity := ix.MaturityDate(value)
	if !maturity.Equal(d(2022, 4, 11)) { // 2022-04-10 is a Sunday
		t.Fatalf("maturity date: got %s", maturity.Format("2006-01-02"))
	}
}

func TestFixingDateInvertsValueDate(t *testing.T) {
	t.Parallel()

	ref := d(2022, 1, 3)
	h := curve.NewHandle(curve.NewFlatForward(ref, 0.03, daycount.Act360))
	ix := index.NewIbor("IBOR3M", schedule.MustParsePeriod("3M"), 2, "EUR",
		calendar.Weekends, calendar.ModifiedFollowing, false, daycount.Act360, h)

	fixing := ix.FixingDate(d(2022, 1, 10)) // Monday - 2 business days
	if !fixing.Equal(d(2022, 1, 6)) {
		t.Fatalf("fixing date: got %s", fixing.Format("2006-01-02"))
	}

	// The pair must round-trip on every business day.
	for day := d(2022, 1, 3); day.Before(d(2022, 2, 1)); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		back := ix.ValueDate(ix.FixingDate(day))
		if !back.Equal(day) {
			t.Fatalf("round trip of %s: got %s",
				day.Format("2006-01-02"), back.Format("2006-01-02"))
		}
	}
}

func TestSwapFixingOnFlatCurve(t *testing.T) {
	t.Parallel()

	ix, _ := newTestIbor(0.03)
	sx := index.NewSwap("CMS5Y", schedule.MustParsePeriod("5Y"), schedule.MustParsePeriod("12M"),
		daycount.E30360, ix)

	fix, err := sx.Fixing(d(2022, 1, 3))
	if err != nil {
		t.Fatalf("Fixing error: %v", err)
	}
	// On a flat continuous 3% curve the par rate stays near 3%.
	if math.Abs(fix-0.03) > 0.002 {
		t.Fatalf("par swap rate off a flat 3%% curve: got %.6f", fix)
	}

	annuity, err := sx.Annuity(d(2022, 1, 3))
	if err != nil {
		t.Fatalf("Annuity error: %v", err)
	}
	if annuity <= 0 || annuity > 5.0 {
		t.Fatalf("annuity out of range: %.6f", annuity)
	}

	dates, err := sx.FixedDates(d(2022, 1, 3))
	if err != nil {
		t.Fatalf("FixedDates error: %v", err)
	}
	if len(dates) != 6 {
		t.Fatalf("expected 6 fixed-leg dates for a 5Y annual swap, got %d", len(dates))
	}
}

func TestSwapPastFixing(t *testing.T) {
	t.Parallel()

	ix, _ := newTestIbor(0.03)
	sx := index.NewSwap("CMS5Y", schedule.MustParsePeriod("5Y"), schedule.MustParsePeriod("12M"),
		daycount.E30360, ix)

	past := d(2021, 12, 1)
	_, err := sx.Fixing(past)
	var missing index.MissingFixingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFixingError, got %v", err)
	}

	sx.AddFixing(past, 0.021)
	fix, err := sx.Fixing(past)
	if err != nil {
		t.Fatalf("Fixing after AddFixing error: %v", err)
	}
	if fix != 0.021 {
		t.Fatalf("stored swap fixing: got %.6f want 0.021", fix)
	}
}
