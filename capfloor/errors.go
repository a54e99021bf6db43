package capfloor

import (
	"fmt"
	"time"
)

// ConfigurationError reports a malformed instrument or an inconsistent
// curve/volatility setup.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return "capfloor configuration: " + e.Reason
}

// NegativeTimeError reports a coupon whose accrual started before the
// evaluation date with no historical fixing supplied.
type NegativeTimeError struct {
	EvaluationDate time.Time
	AccrualStart   time.Time
}

func (e NegativeTimeError) Error() string {
	return fmt.Sprintf("negative time: accrual start %s precedes evaluation date %s and no historical fixing is stored",
		e.AccrualStart.Format("2006-01-02"), e.EvaluationDate.Format("2006-01-02"))
}
