package cms

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/meenmo/caplib/black"
	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/vol"
)

var stdNormal = distuv.UnitNormal

// decay returns the mean-reversion damping B_a(t) = (1 - exp(-a*t)) / a.
// The expansion near a*t = 0 keeps it continuous through a = 0.
func decay(a, t float64) float64 {
	x := a * t
	if math.Abs(x) < 1e-6 {
		return t * (1 - x/2 + x*x/6)
	}
	return (1 - math.Exp(-x)) / a
}

// forwardAndVol resolves the forward swap rate, the time to fixing, and
// the swaption volatility at the forward. An already-fixed coupon comes
// back with zero expiry, so callers skip the adjustment.
func forwardAndVol(v vol.OptionletVolatility, c *Coupon) (s, expiry, sigma float64, err error) {
	ref := v.ReferenceDate()
	if !c.Index.ForwardingTermStructure().ReferenceDate().Equal(ref) {
		return 0, 0, 0, ConfigurationError{
			Reason: "swaption volatility reference date differs from the forwarding curve's reference date",
		}
	}
	s, err = c.Index.Fixing(c.FixingDate)
	if err != nil {
		return 0, 0, 0, err
	}
	expiry = daycount.YearFraction(ref, c.FixingDate, v.DayCount())
	if expiry <= 0 {
		return s, 0, 0, nil
	}
	sigma, err = v.Volatility(c.FixingDate, s)
	if err != nil {
		return 0, 0, 0, err
	}
	return s, expiry, sigma, nil
}

// HaganPricer adjusts the forward swap rate by the Hagan G-function
// convexity term
//
//	S + G'(S)/G(S) * S^2 * (exp(sigma^2 T) - 1)
//
// at the ATM swaption volatility. Mean reversion enters through the
// effective payment delay of the G-function.
type HaganPricer struct {
	vol           vol.OptionletVolatility
	meanReversion float64
}

// NewHaganPricer builds a Hagan convexity pricer. A mean reversion of
// zero is valid and reproduces the undamped payment delay.
func NewHaganPricer(v vol.OptionletVolatility, meanReversion float64) *HaganPricer {
	return &HaganPricer{vol: v, meanReversion: meanReversion}
}

// AdjustedRate returns the convexity-adjusted forward swap rate.
func (p *HaganPricer) AdjustedRate(c *Coupon) (float64, error) {
	s, expiry, sigma, err := forwardAndVol(p.vol, c)
	if err != nil {
		return 0, err
	}
	if expiry <= 0 {
		return s, nil
	}
	g, err := p.gFunction(c)
	if err != nil {
		return 0, err
	}
	adj := g.FirstDerivative(s) / g.Value(s) * s * s * math.Expm1(sigma*sigma*expiry)
	return s + adj, nil
}

// SmileAdjustedRate replicates E[S*G(S)]/G(S0) across the volatility
// smile with Gauss-Legendre quadrature instead of the ATM closed form.
// Strikes are integrated up to upperBound, which must exceed the forward.
func (p *HaganPricer) SmileAdjustedRate(c *Coupon, points int, upperBound float64) (float64, error) {
	s, expiry, _, err := forwardAndVol(p.vol, c)
	if err != nil {
		return 0, err
	}
	if expiry <= 0 {
		return s, nil
	}
	if points < 2 {
		return 0, ConfigurationError{Reason: "smile replication needs at least 2 quadrature points"}
	}
	if upperBound <= s {
		return 0, ConfigurationError{Reason: "smile replication upper bound must exceed the forward swap rate"}
	}
	g, err := p.gFunction(c)
	if err != nil {
		return 0, err
	}
	gs := g.Value(s)
	payoff := func(x float64) float64 { return x * g.Value(x) / gs }
	h := math.Max(1e-6, s*1e-4)
	curvature := func(k float64) float64 {
		return (payoff(k+h) - 2*payoff(k) + payoff(k-h)) / (h * h)
	}

	// Carr-Madan: E[f(S)] = f(S0) + int f''(k) put(k) dk below the forward
	// plus int f''(k) call(k) dk above it; S is a martingale under the
	// annuity measure so the first-order term vanishes.
	var volErr error
	optionWeighted := func(opt black.OptionType) func(float64) float64 {
		return func(k float64) float64 {
			sigmaK, err := p.vol.Volatility(c.FixingDate, k)
			if err != nil {
				volErr = err
				return 0
			}
			price, err := black.Price(opt, s, k, sigmaK*math.Sqrt(expiry))
			if err != nil {
				volErr = err
				return 0
			}
			return curvature(k) * price
		}
	}
	lower := math.Max(2*h, s*1e-3)
	adjusted := payoff(s) +
		quad.Fixed(optionWeighted(black.Put), lower, s, points, nil, 0) +
		quad.Fixed(optionWeighted(black.Call), s, upperBound, points, nil, 0)
	if volErr != nil {
		return 0, volErr
	}
	return adjusted, nil
}

func (p *HaganPricer) gFunction(c *Coupon) (*GFunctionStandard, error) {
	months := c.Index.FixedFreq.Months()
	if months <= 0 {
		return nil, ConfigurationError{Reason: "swap index fixed frequency must be a whole number of months"}
	}
	tenorMonths := c.Index.Tenor.Months()
	if tenorMonths <= 0 || tenorMonths%months != 0 {
		return nil, ConfigurationError{Reason: "swap index tenor must be a multiple of the fixed frequency"}
	}
	q := 12.0 / float64(months)
	n := tenorMonths / months
	swapStart := c.Index.Ibor.ValueDate(c.FixingDate)
	delay := daycount.YearFraction(swapStart, c.PaymentDate, c.Index.FixedDayCount)
	a := p.meanReversion
	delta := decay(a, delay) / decay(a, 1/q)
	return NewGFunctionStandard(q, delta, n), nil
}

// LinearTSRPricer maps the annuity ratio linearly in the terminal swap
// rate, with a slope set by the mean-reversion bond decay over the fixed
// leg. The adjustment is closed form under a lognormal terminal rate.
type LinearTSRPricer struct {
	vol           vol.OptionletVolatility
	meanReversion float64
}

// NewLinearTSRPricer builds a linear terminal-swap-rate pricer.
func NewLinearTSRPricer(v vol.OptionletVolatility, meanReversion float64) *LinearTSRPricer {
	return &LinearTSRPricer{vol: v, meanReversion: meanReversion}
}

// AdjustedRate returns S + u * S^2 * (exp(sigma^2 T) - 1), where u is the
// normalized slope of the linear annuity mapping.
func (p *LinearTSRPricer) AdjustedRate(c *Coupon) (float64, error) {
	s, expiry, sigma, err := forwardAndVol(p.vol, c)
	if err != nil {
		return 0, err
	}
	if expiry <= 0 {
		return s, nil
	}
	u, err := p.slope(c, s)
	if err != nil {
		return 0, err
	}
	return s + u*s*s*math.Expm1(sigma*sigma*expiry), nil
}

// CapletRate returns the undiscounted value of a caplet on the swap rate
// under the payment measure.
func (p *LinearTSRPricer) CapletRate(c *Coupon, strike float64) (float64, error) {
	return p.optionletRate(c, strike, black.Call)
}

// FloorletRate returns the undiscounted value of a floorlet on the swap
// rate under the payment measure.
func (p *LinearTSRPricer) FloorletRate(c *Coupon, strike float64) (float64, error) {
	return p.optionletRate(c, strike, black.Put)
}

func (p *LinearTSRPricer) optionletRate(c *Coupon, strike float64, opt black.OptionType) (float64, error) {
	s, expiry, sigma, err := forwardAndVol(p.vol, c)
	if err != nil {
		return 0, err
	}
	stdDev := sigma * math.Sqrt(expiry)
	base, err := black.Price(opt, s, strike, stdDev)
	if err != nil {
		return 0, err
	}
	if expiry <= 0 || stdDev == 0 {
		return base, nil
	}
	u, err := p.slope(c, s)
	if err != nil {
		return 0, err
	}
	// Lognormal first moments of the optionlet payoff: the measure change
	// contributes u * (E[S (S-K)^+] - S0 E[(S-K)^+]).
	d1 := (math.Log(s/strike) + 0.5*stdDev*stdDev) / stdDev
	var moment float64
	switch opt {
	case black.Call:
		moment = s*s*math.Exp(stdDev*stdDev)*stdNormal.CDF(d1+stdDev) - strike*s*stdNormal.CDF(d1)
	case black.Put:
		moment = strike*s*stdNormal.CDF(-d1) - s*s*math.Exp(stdDev*stdDev)*stdNormal.CDF(-d1-stdDev)
	}
	return base + u*(moment-s*base), nil
}

// slope is the normalized linear coefficient u of the annuity mapping
// P(Tp)/A = const * (1 + u*(S - S0)), derived from the one-factor bond
// decay of each fixed-leg payment.
func (p *LinearTSRPricer) slope(c *Coupon, s float64) (float64, error) {
	dates, err := c.Index.FixedDates(c.FixingDate)
	if err != nil {
		return 0, err
	}
	ts := c.Index.ForwardingTermStructure()
	dc := c.Index.FixedDayCount
	start := dates[0]
	a := p.meanReversion

	var annuity, weighted float64
	var dfEnd float64
	for i := 1; i < len(dates); i++ {
		tau := daycount.YearFraction(dates[i-1], dates[i], dc)
		df, err := ts.Discount(dates[i])
		if err != nil {
			return 0, err
		}
		t := daycount.YearFraction(start, dates[i], dc)
		annuity += tau * df
		weighted += tau * df * decay(a, t)
		dfEnd = df
	}
	tEnd := daycount.YearFraction(start, dates[len(dates)-1], dc)
	tPay := daycount.YearFraction(start, c.PaymentDate, dc)

	num := weighted/annuity - decay(a, tPay)
	den := decay(a, tEnd)*dfEnd/annuity + s*weighted/annuity
	return num / den, nil
}
