package curve

import (
	"sync/atomic"
	"time"

	"github.com/meenmo/caplib/daycount"
)

// Handle is a relinkable indirection to a term structure. Every holder of
// the handle observes a relink immediately; the swap is a single atomic
// pointer replacement, so readers mid-query always see a consistent curve.
//
// Handle itself satisfies TermStructure, delegating to the current link.
type Handle struct {
	link atomic.Pointer[TermStructure]
}

// NewHandle wraps ts in a relinkable handle.
func NewHandle(ts TermStructure) *Handle {
	h := &Handle{}
	h.link.Store(&ts)
	return h
}

// Relink atomically redirects the handle to a new underlying curve.
func (h *Handle) Relink(ts TermStructure) {
	h.link.Store(&ts)
}

// Link returns the currently linked term structure.
func (h *Handle) Link() TermStructure {
	return *h.link.Load()
}

func (h *Handle) ReferenceDate() time.Time      { return h.Link().ReferenceDate() }
func (h *Handle) MaxDate() time.Time            { return h.Link().MaxDate() }
func (h *Handle) DayCount() daycount.Convention { return h.Link().DayCount() }

func (h *Handle) Discount(t time.Time) (float64, error) {
	return h.Link().Discount(t)
}

func (h *Handle) ForwardRate(d1, d2 time.Time, dc daycount.Convention, comp Compounding) (float64, error) {
	return h.Link().ForwardRate(d1, d2, dc, comp)
}
