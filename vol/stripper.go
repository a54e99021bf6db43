package vol

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/caplib/black"
	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/index"
	"github.com/meenmo/caplib/schedule"
)

// ConfigurationError reports a stripper setup whose market-data references
// disagree, such as mismatched reference dates between the quoted surface
// and the curves.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return "vol configuration: " + e.Reason
}

// StrippingFailure reports an optionlet bootstrap whose root search could
// not bracket or converge on a volatility, which signals a non-arbitrage-free
// or malformed input grid.
type StrippingFailure struct {
	Expiry time.Time
	Strike float64
	Reason string
}

func (e StrippingFailure) Error() string {
	return fmt.Sprintf("optionlet stripping failed at expiry %s strike %v: %s",
		e.Expiry.Format("2006-01-02"), e.Strike, e.Reason)
}

const (
	stripVolMin  = 1e-7
	stripVolMax  = 5.0
	stripTol     = 1e-10
	stripMaxIter = 200
)

// OptionletStripper converts cumulative cap volatilities into per-optionlet
// volatilities by sequential bootstrap: within each strike column, expiries
// are processed in increasing order and each bucket of new optionlets gets
// the single vol that reprices the quoted cap given all previously solved
// optionlets. Strike columns are independent of one another.
type OptionletStripper struct {
	surface  *CapFloorTermVolSurface
	index    *index.Ibor
	discount *curve.Handle

	periods []optionletPeriod
}

// optionletPeriod caches the curve-dependent quantities of one caplet.
type optionletPeriod struct {
	fixing  time.Time
	start   time.Time
	end     time.Time
	tau     float64 // accrual, index day count
	expT    float64 // time to fixing, surface day count
	forward float64
	df      float64 // discount at payment
}

// NewOptionletStripper prepares a stripper for the given surface. The index
// supplies the optionlet frequency and forward projections; the discount
// handle prices the caps.
func NewOptionletStripper(surface *CapFloorTermVolSurface, ibor *index.Ibor, discount *curve.Handle) (*OptionletStripper, error) {
	ref := surface.ReferenceDate()
	if !discount.ReferenceDate().Equal(ref) {
		return nil, ConfigurationError{Reason: "surface reference date differs from the discount curve's reference date"}
	}
	if !ibor.ForwardingTermStructure().ReferenceDate().Equal(ref) {
		return nil, ConfigurationError{Reason: "surface reference date differs from the forwarding curve's reference date"}
	}
	s := &OptionletStripper{surface: surface, index: ibor, discount: discount}
	if err := s.buildPeriods(); err != nil {
		return nil, err
	}
	return s, nil
}

// buildPeriods lays out the optionlet grid from the reference date to the
// last quoted expiry. The first index period is dropped: its fixing is
// known at the reference date, so its caplet carries no vol information.
func (s *OptionletStripper) buildPeriods() error {
	ref := s.surface.ReferenceDate()
	expiries := s.surface.ExpiryDates()
	last := expiries[len(expiries)-1]

	sched, err := schedule.Generate(schedule.Params{
		Start:      s.index.ValueDate(ref),
		End:        last,
		Tenor:      s.index.Tenor,
		Calendar:   s.index.Calendar,
		Convention: s.index.Convention,
		Rule:       schedule.Forward,
		EndOfMonth: s.index.EndOfMonth,
	})
	if err != nil {
		return err
	}

	dates := sched.Dates()
	for i := 1; i < len(dates)-1; i++ {
		start, end := dates[i], dates[i+1]
		fwd, err := s.index.ForwardRate(start, end)
		if err != nil {
			return err
		}
		df, err := s.discount.Discount(end)
		if err != nil {
			return err
		}
		s.periods = append(s.periods, optionletPeriod{
			fixing:  start,
			start:   start,
			end:     end,
			tau:     daycount.YearFraction(start, end, s.index.DayCount),
			expT:    daycount.YearFraction(ref, start, s.surface.DayCount()),
			forward: fwd,
			df:      df,
		})
	}
	if len(s.periods) == 0 {
		return fmt.Errorf("optionlet stripper: no optionlet periods before last expiry %s", last.Format("2006-01-02"))
	}
	return nil
}

// capPrice values a cap covering all optionlets fixing before expiry at a
// single flat volatility.
func (s *OptionletStripper) capPrice(expiry time.Time, strike, flatVol float64) (float64, error) {
	var total float64
	for _, p := range s.periods {
		if !p.fixing.Before(expiry) {
			break
		}
		price, err := black.Price(black.Call, p.forward, strike, flatVol*math.Sqrt(p.expT))
		if err != nil {
			return 0, err
		}
		total += p.tau * p.df * price
	}
	return total, nil
}

// ImpliedFlatVol solves for the single volatility that reprices a cap of
// the given expiry and strike to the target price.
func (s *OptionletStripper) ImpliedFlatVol(expiry time.Time, strike, targetPrice float64) (float64, error) {
	f := func(v float64) (float64, error) {
		p, err := s.capPrice(expiry, strike, v)
		if err != nil {
			return 0, err
		}
		return p - targetPrice, nil
	}
	return bisect(f, expiry, strike)
}

// Strip bootstraps every strike column and returns the optionlet-level
// surface adapter.
func (s *OptionletStripper) Strip() (*StrippedAdapter, error) {
	strikes := s.surface.Strikes()
	expiries := s.surface.ExpiryDates()

	volGrid := make([][]float64, len(s.periods))
	for i := range volGrid {
		volGrid[i] = make([]float64, len(strikes))
	}

	for j, strike := range strikes {
		known := 0.0
		cursor := 0
		for _, expiry := range expiries {
			flat, err := s.surface.Volatility(expiry, strike)
			if err != nil {
				return nil, err
			}
			target, err := s.capPrice(expiry, strike, flat)
			if err != nil {
				return nil, err
			}

			// Bucket of optionlets newly covered by this expiry.
			lo := cursor
			for cursor < len(s.periods) && s.periods[cursor].fixing.Before(expiry) {
				cursor++
			}
			if cursor == lo {
				continue
			}

			bucketPrice := func(v float64) (float64, error) {
				var sum float64
				for _, p := range s.periods[lo:cursor] {
					price, err := black.Price(black.Call, p.forward, strike, v*math.Sqrt(p.expT))
					if err != nil {
						return 0, err
					}
					sum += p.tau * p.df * price
				}
				return sum, nil
			}
			residual := func(v float64) (float64, error) {
				bp, err := bucketPrice(v)
				if err != nil {
					return 0, err
				}
				return known + bp - target, nil
			}

			solved, err := bisect(residual, expiry, strike)
			if err != nil {
				return nil, err
			}
			for k := lo; k < cursor; k++ {
				volGrid[k][j] = solved
			}
			bp, err := bucketPrice(solved)
			if err != nil {
				return nil, err
			}
			known += bp
		}
	}

	fixings := make([]time.Time, len(s.periods))
	times := make([]float64, len(s.periods))
	for i, p := range s.periods {
		fixings[i] = p.fixing
		times[i] = p.expT
	}
	return &StrippedAdapter{
		ref:     s.surface.ReferenceDate(),
		dc:      s.surface.DayCount(),
		fixings: fixings,
		times:   times,
		strikes: append([]float64(nil), strikes...),
		vols:    volGrid,
	}, nil
}

// bisect runs a bracketing bisection over the bounded vol range with a
// fixed iteration cap, so a non-converging search terminates as an error.
func bisect(f func(float64) (float64, error), expiry time.Time, strike float64) (float64, error) {
	lo, hi := stripVolMin, stripVolMax
	flo, err := f(lo)
	if err != nil {
		return 0, err
	}
	fhi, err := f(hi)
	if err != nil {
		return 0, err
	}
	if flo == 0 {
		return lo, nil
	}
	if fhi == 0 {
		return hi, nil
	}
	if flo*fhi > 0 {
		return 0, StrippingFailure{Expiry: expiry, Strike: strike,
			Reason: fmt.Sprintf("no sign change on [%g, %g]", stripVolMin, stripVolMax)}
	}

	for i := 0; i < stripMaxIter; i++ {
		mid := 0.5 * (lo + hi)
		fmid, err := f(mid)
		if err != nil {
			return 0, err
		}
		if math.Abs(fmid) < stripTol || hi-lo < stripTol {
			return mid, nil
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return 0, StrippingFailure{Expiry: expiry, Strike: strike, Reason: "root search did not converge"}
}

// StrippedAdapter exposes bootstrapped optionlet vols through the same
// OptionletVolatility interface as the quoted surface, now at
// optionlet level.
type StrippedAdapter struct {
	ref     time.Time
	dc      daycount.Convention
	fixings []time.Time
	times   []float64
	strikes []float64
	vols    [][]float64 // [optionlet][strike]
}

func (a *StrippedAdapter) ReferenceDate() time.Time      { return a.ref }
func (a *StrippedAdapter) DayCount() daycount.Convention { return a.dc }

// FixingDates returns the optionlet fixing dates of the stripped grid.
func (a *StrippedAdapter) FixingDates() []time.Time { return a.fixings }

// Strikes returns the strike axis of the stripped grid.
func (a *StrippedAdapter) Strikes() []float64 { return a.strikes }

// Volatility bilinearly interpolates the stripped optionlet grid, clamping
// flat outside it.
func (a *StrippedAdapter) Volatility(expiry time.Time, strike float64) (float64, error) {
	t := daycount.YearFraction(a.ref, expiry, a.dc)
	i0, i1, wt := bracketWeight(a.times, t)
	j0, j1, ws := bracketWeight(a.strikes, strike)
	lo := a.vols[i0][j0] + ws*(a.vols[i0][j1]-a.vols[i0][j0])
	hi := a.vols[i1][j0] + ws*(a.vols[i1][j1]-a.vols[i1][j0])
	return lo + wt*(hi-lo), nil
}
