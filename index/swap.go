package index

import (
	"time"

	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/schedule"
)

// Swap is a constant-maturity swap-rate index: it fixes the par rate of a
// fixed-vs-floating swap of fixed tenor. The floating side projects off
// the Ibor index's forwarding curve, which also discounts the annuity
// (single-curve convention).
type Swap struct {
	Name          string
	Tenor         schedule.Period // swap length, e.g. 5Y
	FixedFreq     schedule.Period // fixed leg coupon frequency, e.g. 12M
	FixedDayCount daycount.Convention
	Ibor          *Ibor

	fixings map[time.Time]float64
}

// NewSwap constructs a swap-rate index on top of an Ibor index.
func NewSwap(name string, tenor, fixedFreq schedule.Period, fixedDC daycount.Convention, ibor *Ibor) *Swap {
	return &Swap{
		Name:          name,
		Tenor:         tenor,
		FixedFreq:     fixedFreq,
		FixedDayCount: fixedDC,
		Ibor:          ibor,
		fixings:       make(map[time.Time]float64),
	}
}

// AddFixing stores a historical swap-rate fixing.
func (sx *Swap) AddFixing(date time.Time, rate float64) {
	sx.fixings[dateKey(date)] = rate
}

// PastFixing returns a stored historical swap-rate fixing.
func (sx *Swap) PastFixing(date time.Time) (float64, bool) {
	r, ok := sx.fixings[dateKey(date)]
	return r, ok
}

// ForwardingTermStructure exposes the curve handle shared with the
// underlying Ibor index.
func (sx *Swap) ForwardingTermStructure() *curve.Handle {
	return sx.Ibor.ForwardingTermStructure()
}

// Fixing returns the forward par swap rate for a fixing date:
// (DF(start) - DF(end)) / annuity. Dates before the curve's reference
// date require a stored historical fixing.
func (sx *Swap) Fixing(date time.Time) (float64, error) {
	ts := sx.Ibor.ForwardingTermStructure()
	if date.Before(ts.ReferenceDate()) {
		if r, ok := sx.fixings[dateKey(date)]; ok {
			return r, nil
		}
		return 0, MissingFixingError{Index: sx.Name, Date: date}
	}
	dates, err := sx.fixedSchedule(date)
	if err != nil {
		return 0, err
	}
	dfStart, err := ts.Discount(dates[0])
	if err != nil {
		return 0, err
	}
	dfEnd, err := ts.Discount(dates[len(dates)-1])
	if err != nil {
		return 0, err
	}
	annuity, err := sx.annuity(dates)
	if err != nil {
		return 0, err
	}
	return (dfStart - dfEnd) / annuity, nil
}

// Annuity returns the fixed-leg annuity (sum of accrual-weighted discount
// factors) for the swap fixing on the given date.
func (sx *Swap) Annuity(date time.Time) (float64, error) {
	dates, err := sx.fixedSchedule(date)
	if err != nil {
		return 0, err
	}
	return sx.annuity(dates)
}

// FixedDates returns the fixed-leg schedule dates for a fixing date. The
// CMS convexity engine uses these as annuity weights.
func (sx *Swap) FixedDates(date time.Time) ([]time.Time, error) {
	return sx.fixedSchedule(date)
}

func (sx *Swap) fixedSchedule(fixing time.Time) ([]time.Time, error) {
	start := sx.Ibor.ValueDate(fixing)
	end := sx.Tenor.AddTo(start, 1, sx.Ibor.EndOfMonth)
	sched, err := schedule.Generate(schedule.Params{
		Start:      start,
		End:        end,
		Tenor:      sx.FixedFreq,
		Calendar:   sx.Ibor.Calendar,
		Convention: sx.Ibor.Convention,
		Rule:       schedule.Backward,
		EndOfMonth: sx.Ibor.EndOfMonth,
	})
	if err != nil {
		return nil, err
	}
	return sched.Dates(), nil
}

func (sx *Swap) annuity(dates []time.Time) (float64, error) {
	ts := sx.Ibor.ForwardingTermStructure()
	var annuity float64
	for i := 1; i < len(dates); i++ {
		tau := daycount.YearFraction(dates[i-1], dates[i], sx.FixedDayCount)
		df, err := ts.Discount(dates[i])
		if err != nil {
			return 0, err
		}
		annuity += tau * df
	}
	return annuity, nil
}
