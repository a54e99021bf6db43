package capfloor

import (
	"math"
	"time"

	"github.com/meenmo/caplib/black"
	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/vol"
)

// OptionletDiagnostic reports the derived quantities of one optionlet.
// Values are recomputed on every request, never cached.
type OptionletDiagnostic struct {
	AccrualStart   time.Time
	AccrualEnd     time.Time
	Price          float64
	DiscountFactor float64
	CapRate        float64
	ATMForward     float64
	StdDev         float64
}

// Engine values caps and floors under Black-76: each optionlet is a
// European option on the forward rate of its accrual period. The engine is
// stateless beyond its injected curve and volatility references, and the
// evaluation date is the discount curve's reference date.
type Engine struct {
	discount *curve.Handle
	vol      vol.OptionletVolatility
}

// NewEngine builds a Black cap/floor engine discounting on the handle and
// reading optionlet volatilities from v.
func NewEngine(discount *curve.Handle, v vol.OptionletVolatility) *Engine {
	return &Engine{discount: discount, vol: v}
}

// EvaluationDate is the discount curve's current reference date.
func (e *Engine) EvaluationDate() time.Time {
	return e.discount.ReferenceDate()
}

// NPV aggregates the discounted optionlet prices of the instrument.
func (e *Engine) NPV(inst *Instrument) (float64, error) {
	diags, err := e.Diagnostics(inst)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, d := range diags {
		total += d.Price
	}
	return total, nil
}

// Diagnostics prices every optionlet and returns the per-optionlet rows in
// schedule order.
func (e *Engine) Diagnostics(inst *Instrument) ([]OptionletDiagnostic, error) {
	if len(inst.Strikes) != len(inst.Coupons) {
		return nil, ConfigurationError{Reason: "strike count does not match coupon count"}
	}
	eval := e.EvaluationDate()
	if !e.vol.ReferenceDate().Equal(eval) {
		return nil, ConfigurationError{Reason: "volatility reference date differs from the discount curve's reference date"}
	}

	diags := make([]OptionletDiagnostic, 0, len(inst.Coupons))
	for i, c := range inst.Coupons {
		d, err := e.priceOptionlet(c, inst.Strikes[i], inst.Type, eval)
		if err != nil {
			return nil, err
		}
		diags = append(diags, d)
	}
	return diags, nil
}

func (e *Engine) priceOptionlet(c Coupon, strike float64, typ Type, eval time.Time) (OptionletDiagnostic, error) {
	if !c.Index.ForwardingTermStructure().ReferenceDate().Equal(eval) {
		return OptionletDiagnostic{}, ConfigurationError{
			Reason: "index forwarding curve reference date differs from the evaluation date",
		}
	}

	// Forward for the accrual period: forecast from the curve, or a stored
	// historical fixing for periods that already fixed.
	var forward float64
	expired := c.AccrualStart.Before(eval)
	if expired {
		past, ok := c.Index.PastFixing(c.FixingDate)
		if !ok {
			return OptionletDiagnostic{}, NegativeTimeError{EvaluationDate: eval, AccrualStart: c.AccrualStart}
		}
		forward = past
	} else {
		f, err := c.Index.ForwardRate(c.AccrualStart, c.AccrualEnd)
		if err != nil {
			return OptionletDiagnostic{}, err
		}
		forward = f
	}

	// An already-fixed coupon has no remaining optionality.
	stdDev := 0.0
	if !expired {
		expiry := daycount.YearFraction(eval, c.AccrualStart, e.vol.DayCount())
		if expiry > 0 {
			sigma, err := e.vol.Volatility(c.AccrualStart, strike)
			if err != nil {
				return OptionletDiagnostic{}, err
			}
			stdDev = sigma * math.Sqrt(expiry)
		}
	}

	opt := black.Call
	if typ == Floor {
		opt = black.Put
	}

	// Gearing and spread move the optionality onto an effective strike. A
	// negative gearing (reverse floater) flips the payoff direction, so the
	// option type flips with it and the price scales by the magnitude.
	effStrike := strike
	scale := 1.0
	if c.Gearing != 1.0 || c.Spread != 0.0 {
		if c.Gearing == 0 {
			return OptionletDiagnostic{}, ConfigurationError{Reason: "coupon gearing must be non-zero"}
		}
		effStrike = (strike - c.Spread) / c.Gearing
		scale = math.Abs(c.Gearing)
		if c.Gearing < 0 {
			if opt == black.Call {
				opt = black.Put
			} else {
				opt = black.Call
			}
		}
	}
	undiscounted, err := black.Price(opt, forward, effStrike, stdDev)
	if err != nil {
		return OptionletDiagnostic{}, err
	}
	undiscounted *= scale

	df, err := e.discount.Discount(c.PaymentDate)
	if err != nil {
		return OptionletDiagnostic{}, err
	}
	tau := daycount.YearFraction(c.AccrualStart, c.AccrualEnd, c.Index.DayCount)

	return OptionletDiagnostic{
		AccrualStart:   c.AccrualStart,
		AccrualEnd:     c.AccrualEnd,
		Price:          c.Nominal * tau * df * undiscounted,
		DiscountFactor: df,
		CapRate:        strike,
		ATMForward:     forward,
		StdDev:         stdDev,
	}, nil
}
