package cms

import (
	"fmt"
	"time"

	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/index"
)

// ConfigurationError reports a malformed CMS coupon setup or mismatched
// market-data references.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("cms configuration: %s", e.Reason)
}

// Coupon is a floating coupon paying a (possibly capped/floored, geared)
// constant-maturity swap rate.
type Coupon struct {
	AccrualStart time.Time
	AccrualEnd   time.Time
	PaymentDate  time.Time
	FixingDate   time.Time
	Nominal      float64
	Gearing      float64
	Spread       float64
	Cap          *float64
	Floor        *float64
	Index        *index.Swap
	DayCount     daycount.Convention
}

// Pricer computes the convexity-adjusted swap rate for a CMS coupon.
type Pricer interface {
	AdjustedRate(c *Coupon) (float64, error)
}

// Rate applies the cap and floor to the adjusted swap rate, then gearing
// and spread.
func (c *Coupon) Rate(p Pricer) (float64, error) {
	adj, err := p.AdjustedRate(c)
	if err != nil {
		return 0, err
	}
	if c.Cap != nil && adj > *c.Cap {
		adj = *c.Cap
	}
	if c.Floor != nil && adj < *c.Floor {
		adj = *c.Floor
	}
	return c.Gearing*adj + c.Spread, nil
}

// Amount is the coupon cash amount: nominal times accrual fraction times
// the capped/floored geared rate.
func (c *Coupon) Amount(p Pricer) (float64, error) {
	rate, err := c.Rate(p)
	if err != nil {
		return 0, err
	}
	tau := daycount.YearFraction(c.AccrualStart, c.AccrualEnd, c.DayCount)
	return c.Nominal * tau * rate, nil
}

// NPV discounts the coupon amount by the payment-date discount factor.
func NPV(c *Coupon, p Pricer, discount *curve.Handle) (float64, error) {
	amount, err := c.Amount(p)
	if err != nil {
		return 0, err
	}
	df, err := discount.Discount(c.PaymentDate)
	if err != nil {
		return 0, err
	}
	return amount * df, nil
}
