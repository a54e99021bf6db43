// Package schedule generates accrual period boundaries from a tenor,
// calendar, and roll conventions.
package schedule

import (
	"fmt"
	"time"

	"github.com/meenmo/caplib/calendar"
)

// Rule selects the anchoring direction for date generation.
type Rule string

const (
	// Forward anchors periods at the start date; an irregular stub, if any,
	// lands at the end.
	Forward Rule = "FORWARD"
	// Backward anchors periods at the end date (Bloomberg SWPM convention
	// for IBOR swaps); an irregular stub, if any, lands at the front.
	Backward Rule = "BACKWARD"
)

// ConfigurationError reports a malformed schedule request.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return "schedule configuration: " + e.Reason
}

// Schedule is a strictly increasing sequence of adjusted dates. Consecutive
// pairs are the accrual periods.
type Schedule struct {
	dates []time.Time
}

// Dates returns the adjusted date sequence.
func (s Schedule) Dates() []time.Time {
	return s.dates
}

// Periods returns the number of accrual periods.
func (s Schedule) Periods() int {
	if len(s.dates) == 0 {
		return 0
	}
	return len(s.dates) - 1
}

// Params collects the inputs to Generate.
type Params struct {
	Start       time.Time
	End         time.Time
	Tenor       Period
	Calendar    calendar.ID
	Convention  calendar.Convention // interior and start dates
	TermConv    calendar.Convention // termination date; defaults to Convention
	Rule        Rule
	EndOfMonth  bool
}

// Generate produces the adjusted, strictly increasing date sequence for the
// given parameters.
func Generate(p Params) (Schedule, error) {
	if !p.End.After(p.Start) {
		return Schedule{}, ConfigurationError{
			Reason: fmt.Sprintf("end %s must be after start %s",
				p.End.Format("2006-01-02"), p.Start.Format("2006-01-02")),
		}
	}
	if p.Tenor.Length <= 0 {
		return Schedule{}, ConfigurationError{Reason: fmt.Sprintf("non-positive tenor %s", p.Tenor)}
	}
	if p.Convention == "" {
		p.Convention = calendar.Unadjusted
	}
	if p.TermConv == "" {
		p.TermConv = p.Convention
	}
	if p.Rule == "" {
		p.Rule = Backward
	}

	var unadjusted []time.Time
	switch p.Rule {
	case Backward:
		unadjusted = rollBackward(p)
	case Forward:
		unadjusted = rollForward(p)
	default:
		return Schedule{}, ConfigurationError{Reason: fmt.Sprintf("unknown generation rule %q", p.Rule)}
	}

	adjusted := make([]time.Time, 0, len(unadjusted))
	last := len(unadjusted) - 1
	for i, d := range unadjusted {
		var adj time.Time
		switch i {
		case last:
			adj = calendar.Adjust(p.Calendar, d, p.TermConv)
		default:
			adj = calendar.Adjust(p.Calendar, d, p.Convention)
		}
		// Adjustment can collapse neighbouring dates onto the same business
		// day; keep the sequence strictly increasing.
		if len(adjusted) > 0 && !adj.After(adjusted[len(adjusted)-1]) {
			continue
		}
		adjusted = append(adjusted, adj)
	}
	if len(adjusted) < 2 {
		return Schedule{}, ConfigurationError{Reason: "schedule collapsed to fewer than two dates after adjustment"}
	}

	return Schedule{dates: adjusted}, nil
}

// rollBackward steps back from the end date by the tenor until reaching or
// passing the start, producing a front stub if the step overshoots.
func rollBackward(p Params) []time.Time {
	var dates []time.Time
	for i := 0; ; i++ {
		d := p.Tenor.AddTo(p.End, -i, p.EndOfMonth)
		if !d.After(p.Start) {
			dates = append([]time.Time{p.Start}, dates...)
			break
		}
		dates = append([]time.Time{d}, dates...)
	}
	return dates
}

// rollForward steps forward from the start date by the tenor until reaching
// or passing the end, producing a back stub if the step overshoots.
func rollForward(p Params) []time.Time {
	var dates []time.Time
	for i := 0; ; i++ {
		d := p.Tenor.AddTo(p.Start, i, p.EndOfMonth)
		if !d.Before(p.End) {
			dates = append(dates, p.End)
			break
		}
		dates = append(dates, d)
	}
	return dates
}
