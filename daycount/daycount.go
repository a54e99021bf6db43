// Package daycount implements year-fraction conventions for accrual and
// curve time calculations.
package daycount

import "time"

// Convention names a day count basis.
type Convention string

const (
	Act360  Convention = "ACT/360"
	Act365F Convention = "ACT/365F"
	E30360  Convention = "30E/360"
)

// YearFraction computes the year fraction between two dates under the given
// convention. The result is signed: end before start yields a negative
// fraction, which downstream signed computations rely on.
func YearFraction(start, end time.Time, conv Convention) float64 {
	switch conv {
	case Act360:
		return days(start, end) / 360.0
	case Act365F:
		return days(start, end) / 365.0
	case E30360:
		// 30E/360 ISDA (Eurobond basis): day-of-month capped at 30.
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return days(start, end) / 365.0
	}
}

func days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}
