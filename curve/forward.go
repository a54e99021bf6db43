package curve

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/caplib/daycount"
)

// ForwardInterp selects how pivot forward rates are interpolated.
type ForwardInterp int

const (
	// BackwardFlat holds each pivot's rate constant over the interval
	// ending at that pivot (market convention for forward curves).
	BackwardFlat ForwardInterp = iota
	// Linear interpolates the rate between pivots and integrates the
	// resulting trapezoids.
	Linear
)

// ForwardCurve stores (date, forward rate) pivots and derives discount
// factors by integrating the piecewise rate analytically.
type ForwardCurve struct {
	dates       []time.Time
	fwds        []float64
	times       []float64
	dc          daycount.Convention
	interp      ForwardInterp
	extrapolate bool
}

// NewForwardCurve builds a forward-rate curve. The first pivot is the
// reference date. Under BackwardFlat interpolation the first pivot's rate
// only applies at the reference instant itself.
func NewForwardCurve(dates []time.Time, fwds []float64, dc daycount.Convention, interp ForwardInterp) (*ForwardCurve, error) {
	if len(dates) < 2 || len(dates) != len(fwds) {
		return nil, fmt.Errorf("NewForwardCurve: need matching date/rate slices with at least 2 pivots, got %d/%d", len(dates), len(fwds))
	}
	c := &ForwardCurve{
		dates:  append([]time.Time(nil), dates...),
		fwds:   append([]float64(nil), fwds...),
		times:  make([]float64, len(dates)),
		dc:     dc,
		interp: interp,
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return nil, fmt.Errorf("NewForwardCurve: pivot dates must be strictly increasing at index %d", i)
		}
		c.times[i] = daycount.YearFraction(dates[0], dates[i], dc)
	}
	return c, nil
}

// EnableExtrapolation allows queries beyond the last pivot at the last
// pivot's rate.
func (c *ForwardCurve) EnableExtrapolation(on bool) {
	c.extrapolate = on
}

func (c *ForwardCurve) ReferenceDate() time.Time      { return c.dates[0] }
func (c *ForwardCurve) MaxDate() time.Time            { return c.dates[len(c.dates)-1] }
func (c *ForwardCurve) DayCount() daycount.Convention { return c.dc }

// Discount integrates the piecewise forward rate from the reference date
// to t and returns exp(-integral).
func (c *ForwardCurve) Discount(t time.Time) (float64, error) {
	if t.Before(c.ReferenceDate()) {
		return 0, ExtrapolationError{Date: t, MinDate: c.ReferenceDate(), MaxDate: c.MaxDate()}
	}
	if t.After(c.MaxDate()) && !c.extrapolate {
		return 0, ExtrapolationError{Date: t, MinDate: c.ReferenceDate(), MaxDate: c.MaxDate()}
	}

	tT := daycount.YearFraction(c.ReferenceDate(), t, c.dc)
	var integral float64
	prev := 0.0
	prevRate := c.fwds[0]
	for i := 1; i < len(c.times); i++ {
		hi := math.Min(tT, c.times[i])
		if hi > prev {
			switch c.interp {
			case Linear:
				integral += 0.5 * (prevRate + c.rateAt(hi)) * (hi - prev)
				prevRate = c.rateAt(hi)
			default:
				integral += c.fwds[i] * (hi - prev)
			}
			prev = hi
		}
		if tT <= c.times[i] {
			break
		}
	}
	if tT > c.times[len(c.times)-1] {
		integral += c.fwds[len(c.fwds)-1] * (tT - c.times[len(c.times)-1])
	}
	return math.Exp(-integral), nil
}

// ForwardRate derives the rate between two dates from discount factor ratios.
func (c *ForwardCurve) ForwardRate(d1, d2 time.Time, dc daycount.Convention, comp Compounding) (float64, error) {
	return forwardFromDiscounts(c, d1, d2, dc, comp)
}

// rateAt linearly interpolates the pivot rates at curve time t.
func (c *ForwardCurve) rateAt(t float64) float64 {
	n := len(c.times)
	if t >= c.times[n-1] {
		return c.fwds[n-1]
	}
	for i := 1; i < n; i++ {
		if t <= c.times[i] {
			w := (t - c.times[i-1]) / (c.times[i] - c.times[i-1])
			return c.fwds[i-1] + w*(c.fwds[i]-c.fwds[i-1])
		}
	}
	return c.fwds[n-1]
}
