package curve

import (
	"fmt"
	"time"
)

// ExtrapolationError reports a query outside the curve's pivot range while
// extrapolation is disabled.
type ExtrapolationError struct {
	Date    time.Time
	MinDate time.Time
	MaxDate time.Time
}

func (e ExtrapolationError) Error() string {
	return fmt.Sprintf("extrapolation: date %s outside curve range [%s, %s]",
		e.Date.Format("2006-01-02"),
		e.MinDate.Format("2006-01-02"),
		e.MaxDate.Format("2006-01-02"))
}
