package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/meenmo/caplib/calendar"
	"github.com/meenmo/caplib/capfloor"
	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/index"
	"github.com/meenmo/caplib/schedule"
)

// A scenario file carries the market data and trade terms for one pricing
// run: a discount curve, an optional separate forwarding curve, the index
// definition, a volatility quote, and the instruments.
type scenario struct {
	Discount    curveInput         `json:"discount"`
	Forward     *curveInput        `json:"forward,omitempty"`
	Index       indexInput         `json:"index"`
	FlatVol     float64            `json:"flat_vol"`
	VolGrid     *volGridInput      `json:"vol_grid,omitempty"`
	Fixings     map[string]float64 `json:"fixings,omitempty"` // date -> historical rate
	Instruments []instrumentInput  `json:"instruments"`
	CMS         *cmsInput          `json:"cms,omitempty"`
}

type cmsInput struct {
	SwapTenor     string   `json:"swap_tenor"`
	FixedFreq     string   `json:"fixed_freq"`
	FixedDayCount string   `json:"fixed_day_count"`
	FixingDate    string   `json:"fixing_date"`
	AccrualStart  string   `json:"accrual_start"`
	AccrualEnd    string   `json:"accrual_end"`
	PaymentDate   string   `json:"payment_date"`
	Nominal       float64  `json:"nominal"`
	Gearing       float64  `json:"gearing"`
	Spread        float64  `json:"spread"`
	Cap           *float64 `json:"cap,omitempty"`
	Floor         *float64 `json:"floor,omitempty"`
	SwaptionVol   float64  `json:"swaption_vol"`
	MeanReversion float64  `json:"mean_reversion"`
}

type curveInput struct {
	ReferenceDate   string    `json:"reference_date"`
	DayCount        string    `json:"day_count"`
	Dates           []string  `json:"dates"`
	DiscountFactors []float64 `json:"discount_factors,omitempty"`
	ForwardRates    []float64 `json:"forward_rates,omitempty"`
}

type indexInput struct {
	Name           string `json:"name"`
	Tenor          string `json:"tenor"`
	SettlementDays int    `json:"settlement_days"`
	Currency       string `json:"currency"`
	Calendar       string `json:"calendar"`
	Convention     string `json:"convention"`
	EndOfMonth     bool   `json:"end_of_month"`
	DayCount       string `json:"day_count"`
}

type volGridInput struct {
	Expiries []string    `json:"expiries"`
	Strikes  []float64   `json:"strikes"`
	Vols     [][]float64 `json:"vols"`
}

type instrumentInput struct {
	Name    string  `json:"name"`
	Type    string  `json:"type"` // cap or floor
	Start   string  `json:"start"`
	End     string  `json:"end"`
	Tenor   string  `json:"tenor"`
	Strike  float64 `json:"strike"`
	Nominal float64 `json:"nominal"`
}

func loadScenario(path string) (*scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return &s, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date %q", s)
	}
	return t, nil
}

func parseDayCount(s string) (daycount.Convention, error) {
	switch s {
	case "act360", "ACT/360", "":
		return daycount.Act360, nil
	case "act365f", "ACT/365F":
		return daycount.Act365F, nil
	case "30e360", "30E/360":
		return daycount.E30360, nil
	}
	return "", fmt.Errorf("unknown day count %q", s)
}

func parseCalendar(s string) (calendar.ID, error) {
	switch s {
	case "null":
		return calendar.Null, nil
	case "weekends", "":
		return calendar.Weekends, nil
	case "target":
		return calendar.TARGET, nil
	}
	return "", fmt.Errorf("unknown calendar %q", s)
}

func parseConvention(s string) (calendar.Convention, error) {
	switch s {
	case "unadjusted":
		return calendar.Unadjusted, nil
	case "following":
		return calendar.Following, nil
	case "modifiedfollowing", "":
		return calendar.ModifiedFollowing, nil
	case "preceding":
		return calendar.Preceding, nil
	}
	return "", fmt.Errorf("unknown convention %q", s)
}

// buildCurve constructs a discount or forward term structure from its
// input pivots, with extrapolation enabled for pricing past the last pivot.
func buildCurve(in curveInput) (curve.TermStructure, error) {
	dc, err := parseDayCount(in.DayCount)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(in.Dates))
	for i, d := range in.Dates {
		if dates[i], err = parseDate(d); err != nil {
			return nil, err
		}
	}
	if in.ReferenceDate != "" {
		ref, err := parseDate(in.ReferenceDate)
		if err != nil {
			return nil, err
		}
		if len(dates) > 0 && !dates[0].Equal(ref) {
			return nil, fmt.Errorf("curve reference date %s does not match first pivot %s",
				in.ReferenceDate, in.Dates[0])
		}
	}
	switch {
	case len(in.DiscountFactors) > 0:
		c, err := curve.NewDiscountCurve(dates, in.DiscountFactors, dc)
		if err != nil {
			return nil, err
		}
		c.EnableExtrapolation(true)
		return c, nil
	case len(in.ForwardRates) > 0:
		c, err := curve.NewForwardCurve(dates, in.ForwardRates, dc, curve.BackwardFlat)
		if err != nil {
			return nil, err
		}
		c.EnableExtrapolation(true)
		return c, nil
	}
	return nil, fmt.Errorf("curve needs discount_factors or forward_rates")
}

func buildIndex(in indexInput, forwarding *curve.Handle) (*index.Ibor, error) {
	tenor, err := schedule.ParsePeriod(in.Tenor)
	if err != nil {
		return nil, err
	}
	cal, err := parseCalendar(in.Calendar)
	if err != nil {
		return nil, err
	}
	conv, err := parseConvention(in.Convention)
	if err != nil {
		return nil, err
	}
	dc, err := parseDayCount(in.DayCount)
	if err != nil {
		return nil, err
	}
	return index.NewIbor(in.Name, tenor, in.SettlementDays, in.Currency,
		cal, conv, in.EndOfMonth, dc, forwarding), nil
}

func buildInstrument(in instrumentInput, ix *index.Ibor) (*capfloor.Instrument, error) {
	start, err := parseDate(in.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(in.End)
	if err != nil {
		return nil, err
	}
	tenor, err := schedule.ParsePeriod(in.Tenor)
	if err != nil {
		return nil, err
	}
	sched, err := schedule.Generate(schedule.Params{
		Start:      start,
		End:        end,
		Tenor:      tenor,
		Calendar:   ix.Calendar,
		Convention: ix.Convention,
		Rule:       schedule.Forward,
		EndOfMonth: ix.EndOfMonth,
	})
	if err != nil {
		return nil, err
	}
	coupons := capfloor.FloatingLeg(sched, in.Nominal, ix)
	strikes := []float64{in.Strike}
	switch in.Type {
	case "cap", "":
		return capfloor.NewCap(in.Name, coupons, strikes)
	case "floor":
		return capfloor.NewFloor(in.Name, coupons, strikes)
	}
	return nil, fmt.Errorf("unknown instrument type %q", in.Type)
}
