// Package curve implements interpolated discount and forward term
// structures and the relinkable handles that share them.
package curve

import (
	"math"
	"time"

	"github.com/meenmo/caplib/daycount"
)

// Compounding selects the rate convention for forward rates.
type Compounding int

const (
	Simple Compounding = iota
	Continuous
)

// TermStructure is the capability set shared by all curves: discount
// factors and the forward rates implied by their ratios.
type TermStructure interface {
	// ReferenceDate is the anchor where the discount factor equals 1.
	ReferenceDate() time.Time
	// MaxDate is the last pivot; queries beyond it require extrapolation.
	MaxDate() time.Time
	// DayCount is the convention used for the curve's time axis.
	DayCount() daycount.Convention
	// Discount returns the discount factor at t.
	Discount(t time.Time) (float64, error)
	// ForwardRate returns the rate implied between d1 and d2 under the
	// given day count and compounding.
	ForwardRate(d1, d2 time.Time, dc daycount.Convention, comp Compounding) (float64, error)
}

// forwardFromDiscounts derives the forward rate between two dates from the
// curve's discount factors.
func forwardFromDiscounts(ts TermStructure, d1, d2 time.Time, dc daycount.Convention, comp Compounding) (float64, error) {
	df1, err := ts.Discount(d1)
	if err != nil {
		return 0, err
	}
	df2, err := ts.Discount(d2)
	if err != nil {
		return 0, err
	}
	tau := daycount.YearFraction(d1, d2, dc)
	if tau == 0 {
		return 0, nil
	}
	if comp == Continuous {
		return math.Log(df1/df2) / tau, nil
	}
	return (df1/df2 - 1.0) / tau, nil
}
