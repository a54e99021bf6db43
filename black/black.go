// Package black implements the Black-76 formula for European options on
// forward rates.
package black

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// OptionType distinguishes calls (caplets) from puts (floorlets).
type OptionType int

const (
	Call OptionType = iota
	Put
)

func (o OptionType) String() string {
	if o == Put {
		return "put"
	}
	return "call"
}

// NumericDomainError reports a non-positive forward or strike that would be
// fed into the Black-76 logarithm.
type NumericDomainError struct {
	Forward float64
	Strike  float64
}

func (e NumericDomainError) Error() string {
	return fmt.Sprintf("numeric domain: Black-76 requires positive forward and strike, got F=%v K=%v", e.Forward, e.Strike)
}

var stdNormal = distuv.UnitNormal

// Price returns the undiscounted Black-76 value of an option on a forward.
// stdDev is the total standard deviation sigma*sqrt(T). A zero stdDev
// collapses to intrinsic value without touching the logarithm.
func Price(opt OptionType, forward, strike, stdDev float64) (float64, error) {
	if stdDev == 0 {
		if opt == Call {
			return math.Max(forward-strike, 0), nil
		}
		return math.Max(strike-forward, 0), nil
	}
	if forward <= 0 || strike <= 0 {
		return 0, NumericDomainError{Forward: forward, Strike: strike}
	}

	d1 := (math.Log(forward/strike) + 0.5*stdDev*stdDev) / stdDev
	d2 := d1 - stdDev
	if opt == Call {
		return forward*stdNormal.CDF(d1) - strike*stdNormal.CDF(d2), nil
	}
	return strike*stdNormal.CDF(-d2) - forward*stdNormal.CDF(-d1), nil
}

// Vega returns the undiscounted Black-76 sensitivity to the total standard
// deviation.
func Vega(forward, strike, stdDev float64) (float64, error) {
	if forward <= 0 || strike <= 0 {
		return 0, NumericDomainError{Forward: forward, Strike: strike}
	}
	if stdDev == 0 {
		return 0, nil
	}
	d1 := (math.Log(forward/strike) + 0.5*stdDev*stdDev) / stdDev
	return forward * stdNormal.Prob(d1), nil
}
