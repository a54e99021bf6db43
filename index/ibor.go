// Package index binds term structures, day counts, and tenors into
// floating-rate and swap-rate fixings.
package index

import (
	"fmt"
	"time"

	"github.com/meenmo/caplib/calendar"
	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/schedule"
)

// MissingFixingError reports a historical fixing that was requested but
// never stored.
type MissingFixingError struct {
	Index string
	Date  time.Time
}

func (e MissingFixingError) Error() string {
	return fmt.Sprintf("missing fixing: %s has no fixing for %s", e.Index, e.Date.Format("2006-01-02"))
}

// Ibor is a forward-looking term rate index (an IBOR-style benchmark).
// It holds a non-owning reference to its forwarding curve through a
// relinkable handle: relinking the handle redirects every subsequent
// fixing without rebuilding the index.
type Ibor struct {
	Name           string
	Tenor          schedule.Period
	SettlementDays int
	Currency       string
	Calendar       calendar.ID
	Convention     calendar.Convention
	EndOfMonth     bool
	DayCount       daycount.Convention

	forwarding *curve.Handle
	fixings    map[time.Time]float64
}

// NewIbor constructs an index forwarding off the given handle.
func NewIbor(name string, tenor schedule.Period, settlementDays int, currency string,
	cal calendar.ID, conv calendar.Convention, endOfMonth bool,
	dc daycount.Convention, forwarding *curve.Handle) *Ibor {
	return &Ibor{
		Name:           name,
		Tenor:          tenor,
		SettlementDays: settlementDays,
		Currency:       currency,
		Calendar:       cal,
		Convention:     conv,
		EndOfMonth:     endOfMonth,
		DayCount:       dc,
		forwarding:     forwarding,
		fixings:        make(map[time.Time]float64),
	}
}

// ForwardingTermStructure exposes the underlying curve handle for reuse by
// structures built on top of this index.
func (ix *Ibor) ForwardingTermStructure() *curve.Handle {
	return ix.forwarding
}

// AddFixing stores a historical fixing.
func (ix *Ibor) AddFixing(date time.Time, rate float64) {
	ix.fixings[dateKey(date)] = rate
}

// ValueDate returns the spot date for a fixing date.
func (ix *Ibor) ValueDate(fixing time.Time) time.Time {
	return calendar.AddBusinessDays(ix.Calendar, fixing, ix.SettlementDays)
}

// FixingDate inverts ValueDate: the date on which the index fixes for a
// given value (accrual start) date. Anything applying the settlement lag
// must go through this pair so the two directions cannot drift apart.
func (ix *Ibor) FixingDate(valueDate time.Time) time.Time {
	return calendar.AddBusinessDays(ix.Calendar, valueDate, -ix.SettlementDays)
}

// MaturityDate returns the index maturity for a value date.
func (ix *Ibor) MaturityDate(valueDate time.Time) time.Time {
	return calendar.Adjust(ix.Calendar, ix.Tenor.AddTo(valueDate, 1, ix.EndOfMonth), ix.Convention)
}

// Fixing returns the index rate for a fixing date. Dates on or after the
// forwarding curve's reference date are forecast from the curve; earlier
// dates require a stored historical fixing.
func (ix *Ibor) Fixing(date time.Time) (float64, error) {
	if date.Before(ix.forwarding.ReferenceDate()) {
		if r, ok := ix.fixings[dateKey(date)]; ok {
			return r, nil
		}
		return 0, MissingFixingError{Index: ix.Name, Date: date}
	}
	value := ix.ValueDate(date)
	maturity := ix.MaturityDate(value)
	return ix.forwarding.ForwardRate(value, maturity, ix.DayCount, curve.Simple)
}

// PastFixing returns a stored historical fixing regardless of the curve's
// reference date.
func (ix *Ibor) PastFixing(date time.Time) (float64, bool) {
	r, ok := ix.fixings[dateKey(date)]
	return r, ok
}

// ForwardRate projects the simple rate over an explicit accrual period from
// the forwarding curve, using the index day count. Coupon pricers use this
// so the projection period matches the coupon accrual exactly.
func (ix *Ibor) ForwardRate(start, end time.Time) (float64, error) {
	return ix.forwarding.ForwardRate(start, end, ix.DayCount, curve.Simple)
}

func dateKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
