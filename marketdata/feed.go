package marketdata

import "time"

// FixingFeed supplies historical index fixings when no database is wired.
type FixingFeed interface {
	RateOn(date time.Time) (float64, bool)
}

// MapFixingFeed is a static map-backed feed for development and testing.
type MapFixingFeed struct {
	rates map[string]float64
}

// NewMapFixingFeed wraps a date-string-keyed rate map (keys formatted
// 2006-01-02).
func NewMapFixingFeed(rates map[string]float64) *MapFixingFeed {
	return &MapFixingFeed{rates: rates}
}

func (m *MapFixingFeed) RateOn(date time.Time) (float64, bool) {
	val, ok := m.rates[date.Format("2006-01-02")]
	return val, ok
}
