// Package vol implements Black volatility structures for caps and floors:
// a constant vol, an interpolated cap (flat) vol surface, and an optionlet
// stripper that bootstraps per-caplet vols from cap quotes.
package vol

import (
	"sync/atomic"
	"time"

	"github.com/meenmo/caplib/daycount"
)

// OptionletVolatility quotes a Black volatility per (expiry, strike).
// Implementations differ in what the quote means: cap-level (cumulative)
// for a term surface, optionlet-level for constants and stripped adapters.
type OptionletVolatility interface {
	ReferenceDate() time.Time
	DayCount() daycount.Convention
	Volatility(expiry time.Time, strike float64) (float64, error)
}

// Constant is a flat Black volatility at every expiry and strike.
type Constant struct {
	ref time.Time
	vol float64
	dc  daycount.Convention
}

// NewConstant builds a flat optionlet volatility.
func NewConstant(ref time.Time, vol float64, dc daycount.Convention) *Constant {
	return &Constant{ref: ref, vol: vol, dc: dc}
}

func (c *Constant) ReferenceDate() time.Time      { return c.ref }
func (c *Constant) DayCount() daycount.Convention { return c.dc }

func (c *Constant) Volatility(expiry time.Time, strike float64) (float64, error) {
	return c.vol, nil
}

// Handle is a relinkable indirection to a volatility structure, mirroring
// curve.Handle: relinking is an atomic pointer swap observed by all holders.
type Handle struct {
	link atomic.Pointer[OptionletVolatility]
}

// NewHandle wraps v in a relinkable handle.
func NewHandle(v OptionletVolatility) *Handle {
	h := &Handle{}
	h.link.Store(&v)
	return h
}

// Relink atomically redirects the handle to a new volatility structure.
func (h *Handle) Relink(v OptionletVolatility) {
	h.link.Store(&v)
}

// Link returns the currently linked structure.
func (h *Handle) Link() OptionletVolatility {
	return *h.link.Load()
}

func (h *Handle) ReferenceDate() time.Time      { return h.Link().ReferenceDate() }
func (h *Handle) DayCount() daycount.Convention { return h.Link().DayCount() }

func (h *Handle) Volatility(expiry time.Time, strike float64) (float64, error) {
	return h.Link().Volatility(expiry, strike)
}
