package index

import (
	"github.com/meenmo/caplib/calendar"
	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/schedule"
)

// Preset index conventions for common EUR benchmarks.

// Euribor3M builds a 3-month EURIBOR index on the TARGET calendar.
func Euribor3M(forwarding *curve.Handle) *Ibor {
	return NewIbor("EURIBOR3M", schedule.MustParsePeriod("3M"), 2, "EUR",
		calendar.TARGET, calendar.ModifiedFollowing, true, daycount.Act360, forwarding)
}

// Euribor6M builds a 6-month EURIBOR index on the TARGET calendar.
func Euribor6M(forwarding *curve.Handle) *Ibor {
	return NewIbor("EURIBOR6M", schedule.MustParsePeriod("6M"), 2, "EUR",
		calendar.TARGET, calendar.ModifiedFollowing, true, daycount.Act360, forwarding)
}

// EurCMS builds a EUR swap-rate index of the given tenor: annual 30E/360
// fixed leg against 6-month EURIBOR.
func EurCMS(tenor schedule.Period, forwarding *curve.Handle) *Swap {
	ibor := Euribor6M(forwarding)
	return NewSwap("EUR-CMS-"+tenor.String(), tenor,
		schedule.MustParsePeriod("12M"), daycount.E30360, ibor)
}
