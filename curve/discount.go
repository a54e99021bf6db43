package curve

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/utils"
)

// DiscountCurve stores explicit (date, discount factor) pivots, anchored at
// factor 1 on the reference date, and interpolates log-linearly in the
// curve's year-fraction time.
type DiscountCurve struct {
	dates       []time.Time
	dfs         []float64
	times       []float64
	dc          daycount.Convention
	extrapolate bool
}

// NewDiscountCurve builds a discount curve from pivot dates and factors.
// The first pivot is the reference date and must carry a factor of 1.
func NewDiscountCurve(dates []time.Time, dfs []float64, dc daycount.Convention) (*DiscountCurve, error) {
	if len(dates) < 2 || len(dates) != len(dfs) {
		return nil, fmt.Errorf("NewDiscountCurve: need matching date/factor slices with at least 2 pivots, got %d/%d", len(dates), len(dfs))
	}
	if dfs[0] != 1.0 {
		return nil, fmt.Errorf("NewDiscountCurve: reference discount factor must be 1, got %v", dfs[0])
	}
	c := &DiscountCurve{
		dates: append([]time.Time(nil), dates...),
		dfs:   append([]float64(nil), dfs...),
		times: make([]float64, len(dates)),
		dc:    dc,
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return nil, fmt.Errorf("NewDiscountCurve: pivot dates must be strictly increasing at index %d", i)
		}
		if dfs[i] <= 0 {
			return nil, fmt.Errorf("NewDiscountCurve: non-positive discount factor %v at %s", dfs[i], dates[i].Format("2006-01-02"))
		}
		c.times[i] = daycount.YearFraction(dates[0], dates[i], dc)
	}
	return c, nil
}

// EnableExtrapolation allows queries beyond the last pivot, continuing the
// final segment's flat forward rate.
func (c *DiscountCurve) EnableExtrapolation(on bool) {
	c.extrapolate = on
}

func (c *DiscountCurve) ReferenceDate() time.Time      { return c.dates[0] }
func (c *DiscountCurve) MaxDate() time.Time            { return c.dates[len(c.dates)-1] }
func (c *DiscountCurve) DayCount() daycount.Convention { return c.dc }

// Discount interpolates ln(df) linearly in curve time between pivots.
func (c *DiscountCurve) Discount(t time.Time) (float64, error) {
	if t.Before(c.ReferenceDate()) {
		return 0, ExtrapolationError{Date: t, MinDate: c.ReferenceDate(), MaxDate: c.MaxDate()}
	}
	if t.After(c.MaxDate()) && !c.extrapolate {
		return 0, ExtrapolationError{Date: t, MinDate: c.ReferenceDate(), MaxDate: c.MaxDate()}
	}
	if t.Equal(c.ReferenceDate()) {
		return 1.0, nil
	}

	i1, i2 := utils.BracketIndices(c.dates, t)
	t1, t2 := c.times[i1], c.times[i2]
	tT := daycount.YearFraction(c.ReferenceDate(), t, c.dc)
	if t2 == t1 {
		return c.dfs[i1], nil
	}
	fwd := math.Log(c.dfs[i1]/c.dfs[i2]) / (t2 - t1)
	return c.dfs[i1] * math.Exp(-fwd*(tT-t1)), nil
}

// ForwardRate derives the rate between two dates from discount factor ratios.
func (c *DiscountCurve) ForwardRate(d1, d2 time.Time, dc daycount.Convention, comp Compounding) (float64, error) {
	return forwardFromDiscounts(c, d1, d2, dc, comp)
}

