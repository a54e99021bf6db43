// Package cms prices constant-maturity-swap coupons with a convexity
// adjustment on the forward swap rate. Two models are provided: a Hagan
// G-function pricer (closed form at the ATM volatility, with an optional
// smile replication) and a linear terminal-swap-rate pricer.
package cms

import "math"

// GFunction models the ratio of the payment-date zero bond to the swap
// annuity as a function of the swap rate. The convexity adjustment is
// driven by its log-derivative at the forward.
type GFunction interface {
	Value(x float64) float64
	FirstDerivative(x float64) float64
}

// GFunctionStandard is the standard annuity model
//
//	G(x) = x / ((1+x/q)^delta * (1 - (1+x/q)^-n))
//
// where q is the fixed-leg payment frequency per year, n the number of
// fixed payments, and delta the payment delay as a fraction of a fixed
// period.
type GFunctionStandard struct {
	q     float64
	delta float64
	n     int
}

// NewGFunctionStandard builds the standard G-function.
func NewGFunctionStandard(q, delta float64, n int) *GFunctionStandard {
	return &GFunctionStandard{q: q, delta: delta, n: n}
}

func (g *GFunctionStandard) Value(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		// limit of x / (n*x/q) as x -> 0
		return g.q / float64(g.n)
	}
	a := 1 + x/g.q
	return x / (math.Pow(a, g.delta) * (1 - math.Pow(a, -float64(g.n))))
}

func (g *GFunctionStandard) FirstDerivative(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		// central difference around the removable singularity
		const h = 1e-7
		return (g.Value(x+h) - g.Value(x-h)) / (2 * h)
	}
	a := 1 + x/g.q
	an := math.Pow(a, -float64(g.n))
	d := 1 - an
	v := x / (math.Pow(a, g.delta) * d)
	// d/dx ln G = 1/x - delta/(q*a) - n*a^(-n-1)/(q*(1-a^-n))
	return v * (1/x - g.delta/(g.q*a) - float64(g.n)*an/(g.q*a*d))
}
