package curve

import (
	"math"
	"time"

	"github.com/meenmo/caplib/daycount"
)

// FlatForward is a constant continuously-compounded rate curve. It has no
// upper pivot, so it never extrapolates.
type FlatForward struct {
	ref  time.Time
	rate float64
	dc   daycount.Convention
}

// NewFlatForward builds a flat curve at the given continuously-compounded rate.
func NewFlatForward(ref time.Time, rate float64, dc daycount.Convention) *FlatForward {
	return &FlatForward{ref: ref, rate: rate, dc: dc}
}

func (c *FlatForward) ReferenceDate() time.Time      { return c.ref }
func (c *FlatForward) DayCount() daycount.Convention { return c.dc }

// MaxDate is unbounded for a flat curve.
func (c *FlatForward) MaxDate() time.Time {
	return time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
}

func (c *FlatForward) Discount(t time.Time) (float64, error) {
	if t.Before(c.ref) {
		return 0, ExtrapolationError{Date: t, MinDate: c.ref, MaxDate: c.MaxDate()}
	}
	return math.Exp(-c.rate * daycount.YearFraction(c.ref, t, c.dc)), nil
}

func (c *FlatForward) ForwardRate(d1, d2 time.Time, dc daycount.Convention, comp Compounding) (float64, error) {
	return forwardFromDiscounts(c, d1, d2, dc, comp)
}
