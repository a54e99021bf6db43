package curve_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/daycount"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestFlatForwardDiscount(t *testing.T) {
	t.Parallel()

	ref := d(2022, 1, 1)
	c := curve.NewFlatForward(ref, 0.03, daycount.Act365F)

	df, err := c.Discount(d(2023, 1, 1))
	if err != nil {
		t.Fatalf("Discount error: %v", err)
	}
	want := math.Exp(-0.03)
	if math.Abs(df-want) > 1e-12 {
		t.Fatalf("one-year discount: got %.12f want %.12f", df, want)
	}

	fwd, err := c.ForwardRate(d(2022, 7, 1), d(2023, 7, 1), daycount.Act365F, curve.Continuous)
	if err != nil {
		t.Fatalf("ForwardRate error: %v", err)
	}
	if math.Abs(fwd-0.03) > 1e-12 {
		t.Fatalf("flat curve forward: got %.12f want 0.03", fwd)
	}
}

func TestDiscountCurveInterpolation(t *testing.T) {
	t.Parallel()

	dates := []time.Time{d(2022, 1, 1), d(2023, 1, 1), d(2024, 1, 1)}
	dfs := []float64{1.0, 0.965, 0.94}
	c, err := curve.NewDiscountCurve(dates, dfs, daycount.Act360)
	if err != nil {
		t.Fatalf("NewDiscountCurve error: %v", err)
	}

	// Pivots reprice exactly.
	for i, date := range dates {
		df, err := c.Discount(date)
		if err != nil {
			t.Fatalf("Discount(%s) error: %v", date.Format("2006-01-02"), err)
		}
		if math.Abs(df-dfs[i]) > 1e-12 {
			t.Fatalf("pivot %d: got %.12f want %.12f", i, df, dfs[i])
		}
	}

	// Log-linear between pivots: midpoint in year-fraction space carries
	// the geometric mean of the bracketing factors.
	mid := d(2022, 7, 2) // 182 of 365 days
	df, err := c.Discount(mid)
	if err != nil {
		t.Fatalf("Discount(mid) error: %v", err)
	}
	t1 := daycount.YearFraction(dates[0], dates[1], daycount.Act360)
	tm := daycount.YearFraction(dates[0], mid, daycount.Act360)
	want := math.Exp(math.Log(dfs[1]) * tm / t1)
	if math.Abs(df-want) > 1e-12 {
		t.Fatalf("interpolated df: got %.12f want %.12f", df, want)
	}
}

func TestDiscountCurveExtrapolation(t *testing.T) {
	t.Parallel()

	dates := []time.Time{d(2022, 1, 1), d(2023, 1, 1)}
	c, err := curve.NewDiscountCurve(dates, []float64{1.0, 0.96}, daycount.Act365F)
	if err != nil {
		t.Fatalf("NewDiscountCurve error: %v", err)
	}

	_, err = c.Discount(d(2024, 1, 1))
	var exErr curve.ExtrapolationError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtrapolationError, got %v", err)
	}

	c.EnableExtrapolation(true)
	df, err := c.Discount(d(2024, 1, 1))
	if err != nil {
		t.Fatalf("extrapolated Discount error: %v", err)
	}
	// The last log-linear segment continues: two years at the same slope.
	want := 0.96 * 0.96
	if math.Abs(df-want) > 1e-9 {
		t.Fatalf("extrapolated df: got %.12f want %.12f", df, want)
	}

	// Queries before the reference date always fail.
	if _, err := c.Discount(d(2021, 6, 1)); !errors.As(err, &exErr) {
		t.Fatalf("expected ExtrapolationError before reference date, got %v", err)
	}
}

func TestForwardCurveDiscountConsistency(t *testing.T) {
	t.Parallel()

	dates := []time.Time{d(2022, 1, 1), d(2023, 1, 1), d(2024, 1, 1)}
	fwds := []float64{0.04, 0.05, 0.06}
	c, err := curve.NewForwardCurve(dates, fwds, daycount.Act360, curve.BackwardFlat)
	if err != nil {
		t.Fatalf("NewForwardCurve error: %v", err)
	}

	// Backward flat: the first segment integrates the second pivot's rate.
	df, err := c.Discount(dates[1])
	if err != nil {
		t.Fatalf("Discount error: %v", err)
	}
	t1 := daycount.YearFraction(dates[0], dates[1], daycount.Act360)
	want := math.Exp(-fwds[1] * t1)
	if math.Abs(df-want) > 1e-12 {
		t.Fatalf("first pivot df: got %.12f want %.12f", df, want)
	}

	// The implied continuous forward over the second year is the pivot rate.
	fwd, err := c.ForwardRate(dates[1], dates[2], daycount.Act360, curve.Continuous)
	if err != nil {
		t.Fatalf("ForwardRate error: %v", err)
	}
	if math.Abs(fwd-fwds[2]) > 1e-12 {
		t.Fatalf("second-year forward: got %.12f want %.12f", fwd, fwds[2])
	}
}

func TestHandleRelink(t *testing.T) {
	t.Parallel()

	ref := d(2022, 1, 1)
	h := curve.NewHandle(curve.NewFlatForward(ref, 0.02, daycount.Act365F))

	before, err := h.Discount(d(2023, 1, 1))
	if err != nil {
		t.Fatalf("Discount error: %v", err)
	}
	h.Relink(curve.NewFlatForward(ref, 0.05, daycount.Act365F))
	after, err := h.Discount(d(2023, 1, 1))
	if err != nil {
		t.Fatalf("Discount after relink error: %v", err)
	}

	if math.Abs(before-math.Exp(-0.02)) > 1e-12 {
		t.Fatalf("pre-relink df: got %.12f", before)
	}
	if math.Abs(after-math.Exp(-0.05)) > 1e-12 {
		t.Fatalf("post-relink df: got %.12f", after)
	}
}

func TestDiscountCurveValidation(t *testing.T) {
	t.Parallel()

	dates := []time.Time{d(2022, 1, 1), d(2023, 1, 1)}
	if _, err := curve.NewDiscountCurve(dates, []float64{0.99, 0.96}, daycount.Act360); err == nil {
		t.Fatalf("expected error for first df != 1")
	}
	if _, err := curve.NewDiscountCurve(dates[:1], []float64{1.0}, daycount.Act360); err == nil {
		t.Fatalf("expected error for single pivot")
	}
	if _, err := curve.NewDiscountCurve(dates, []float64{1.0, -0.5}, daycount.Act360); err == nil {
		t.Fatalf("expected error for non-positive df")
	}
}
