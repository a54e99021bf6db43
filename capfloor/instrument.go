// Package capfloor implements interest-rate cap and floor instruments and
// their Black-76 pricing engine.
package capfloor

import (
	"fmt"
	"time"

	"github.com/meenmo/caplib/index"
	"github.com/meenmo/caplib/schedule"
)

// Type distinguishes caps from floors.
type Type int

const (
	Cap Type = iota
	Floor
)

func (t Type) String() string {
	if t == Floor {
		return "floor"
	}
	return "cap"
}

// Coupon is one floating accrual period. The index reference is non-owning:
// the coupon projects off whatever curve the index's handle currently links.
type Coupon struct {
	AccrualStart time.Time
	AccrualEnd   time.Time
	PaymentDate  time.Time
	FixingDate   time.Time
	Nominal      float64
	Gearing      float64
	Spread       float64
	Index        *index.Ibor
}

// FloatingLeg builds one coupon per accrual period of the schedule, paying
// at the accrual end, with the fixing set by the index's settlement lag.
func FloatingLeg(sched schedule.Schedule, nominal float64, ix *index.Ibor) []Coupon {
	dates := sched.Dates()
	coupons := make([]Coupon, 0, len(dates)-1)
	for i := 1; i < len(dates); i++ {
		start, end := dates[i-1], dates[i]
		coupons = append(coupons, Coupon{
			AccrualStart: start,
			AccrualEnd:   end,
			PaymentDate:  end,
			FixingDate:   ix.FixingDate(start),
			Nominal:      nominal,
			Gearing:      1.0,
			Spread:       0.0,
			Index:        ix,
		})
	}
	return coupons
}

// Instrument is an ordered sequence of coupons with one strike per coupon.
type Instrument struct {
	Name    string
	Type    Type
	Coupons []Coupon
	Strikes []float64
}

// NewCap builds a cap. A single strike is broadcast to every coupon;
// otherwise the strike count must match the coupon count.
func NewCap(name string, coupons []Coupon, strikes []float64) (*Instrument, error) {
	return newInstrument(name, Cap, coupons, strikes)
}

// NewFloor builds a floor with the same strike-broadcast rule as NewCap.
func NewFloor(name string, coupons []Coupon, strikes []float64) (*Instrument, error) {
	return newInstrument(name, Floor, coupons, strikes)
}

func newInstrument(name string, typ Type, coupons []Coupon, strikes []float64) (*Instrument, error) {
	if len(coupons) == 0 {
		return nil, ConfigurationError{Reason: "instrument has no coupons"}
	}
	switch len(strikes) {
	case len(coupons):
		// one strike per coupon
	case 1:
		s := strikes[0]
		strikes = make([]float64, len(coupons))
		for i := range strikes {
			strikes[i] = s
		}
	default:
		return nil, ConfigurationError{
			Reason: fmt.Sprintf("%d strikes for %d coupons; need one per coupon or a single broadcast strike", len(strikes), len(coupons)),
		}
	}
	return &Instrument{
		Name:    name,
		Type:    typ,
		Coupons: coupons,
		Strikes: append([]float64(nil), strikes...),
	}, nil
}
