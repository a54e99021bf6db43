package vol

import (
	"fmt"
	"sort"
	"time"

	"github.com/meenmo/caplib/calendar"
	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/schedule"
)

// ExtrapolationPolicy controls queries outside the quoted grid.
type ExtrapolationPolicy int

const (
	// FlatExtrapolation clamps to the nearest grid edge.
	FlatExtrapolation ExtrapolationPolicy = iota
	// NoExtrapolation rejects out-of-grid queries with an error.
	NoExtrapolation
)

// CapFloorTermVolSurface holds quoted flat (cap-level, cumulative) Black
// volatilities on an (expiry tenor x strike) grid and interpolates them
// bilinearly in (time, strike).
type CapFloorTermVolSurface struct {
	ref      time.Time
	cal      calendar.ID
	conv     calendar.Convention
	dc       daycount.Convention
	policy   ExtrapolationPolicy
	expiries []time.Time
	times    []float64
	strikes  []float64
	vols     [][]float64 // [expiry][strike]
}

// NewCapFloorTermVolSurface builds a cap volatility surface from expiry
// tenors measured from the reference date. vols is row-major by expiry.
func NewCapFloorTermVolSurface(ref time.Time, cal calendar.ID, conv calendar.Convention,
	expiries []schedule.Period, strikes []float64, vols [][]float64,
	dc daycount.Convention, policy ExtrapolationPolicy) (*CapFloorTermVolSurface, error) {

	if len(expiries) == 0 || len(strikes) == 0 {
		return nil, fmt.Errorf("NewCapFloorTermVolSurface: empty expiry or strike axis")
	}
	if len(vols) != len(expiries) {
		return nil, fmt.Errorf("NewCapFloorTermVolSurface: %d vol rows for %d expiries", len(vols), len(expiries))
	}
	if !sort.Float64sAreSorted(strikes) {
		return nil, fmt.Errorf("NewCapFloorTermVolSurface: strikes must be increasing")
	}

	s := &CapFloorTermVolSurface{
		ref:      ref,
		cal:      cal,
		conv:     conv,
		dc:       dc,
		policy:   policy,
		expiries: make([]time.Time, len(expiries)),
		times:    make([]float64, len(expiries)),
		strikes:  append([]float64(nil), strikes...),
		vols:     make([][]float64, len(expiries)),
	}
	for i, p := range expiries {
		if len(vols[i]) != len(strikes) {
			return nil, fmt.Errorf("NewCapFloorTermVolSurface: row %d has %d vols for %d strikes", i, len(vols[i]), len(strikes))
		}
		d := calendar.Adjust(cal, p.AddTo(ref, 1, false), conv)
		s.expiries[i] = d
		s.times[i] = daycount.YearFraction(ref, d, dc)
		if i > 0 && s.times[i] <= s.times[i-1] {
			return nil, fmt.Errorf("NewCapFloorTermVolSurface: expiry tenors must be increasing at row %d", i)
		}
		s.vols[i] = append([]float64(nil), vols[i]...)
	}
	return s, nil
}

func (s *CapFloorTermVolSurface) ReferenceDate() time.Time      { return s.ref }
func (s *CapFloorTermVolSurface) DayCount() daycount.Convention { return s.dc }

// ExpiryDates returns the adjusted grid expiry dates.
func (s *CapFloorTermVolSurface) ExpiryDates() []time.Time { return s.expiries }

// Strikes returns the grid strike axis.
func (s *CapFloorTermVolSurface) Strikes() []float64 { return s.strikes }

// Volatility bilinearly interpolates the quoted grid at (expiry, strike).
func (s *CapFloorTermVolSurface) Volatility(expiry time.Time, strike float64) (float64, error) {
	t := daycount.YearFraction(s.ref, expiry, s.dc)
	return s.volatilityAt(t, strike)
}

func (s *CapFloorTermVolSurface) volatilityAt(t, strike float64) (float64, error) {
	if s.policy == NoExtrapolation {
		if t < s.times[0] || t > s.times[len(s.times)-1] ||
			strike < s.strikes[0] || strike > s.strikes[len(s.strikes)-1] {
			return 0, fmt.Errorf("cap vol surface: query (t=%v, strike=%v) outside quoted grid", t, strike)
		}
	}

	i0, i1, wt := bracketWeight(s.times, t)
	j0, j1, ws := bracketWeight(s.strikes, strike)

	lo := s.vols[i0][j0] + ws*(s.vols[i0][j1]-s.vols[i0][j0])
	hi := s.vols[i1][j0] + ws*(s.vols[i1][j1]-s.vols[i1][j0])
	return lo + wt*(hi-lo), nil
}

// bracketWeight locates x on a sorted axis and returns the bracketing
// indices with the interpolation weight, clamped flat outside the axis.
func bracketWeight(axis []float64, x float64) (int, int, float64) {
	n := len(axis)
	if n == 1 || x <= axis[0] {
		return 0, 0, 0
	}
	if x >= axis[n-1] {
		return n - 1, n - 1, 0
	}
	i := sort.SearchFloat64s(axis, x)
	if axis[i] == x {
		return i, i, 0
	}
	w := (x - axis[i-1]) / (axis[i] - axis[i-1])
	return i - 1, i, w
}
