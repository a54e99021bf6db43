package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meenmo/caplib/utils"
)

// Unit is a period's time unit.
type Unit string

const (
	Days   Unit = "D"
	Weeks  Unit = "W"
	Months Unit = "M"
	Years  Unit = "Y"
)

// Period is a tenor such as 3M or 10Y.
type Period struct {
	Length int
	Unit   Unit
}

// ParsePeriod converts tenor strings like "1W", "3M", "10Y" to a Period.
func ParsePeriod(tenor string) (Period, error) {
	s := strings.TrimSpace(strings.ToUpper(tenor))
	if len(s) < 2 {
		return Period{}, fmt.Errorf("ParsePeriod: malformed tenor %q", tenor)
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return Period{}, fmt.Errorf("ParsePeriod: malformed tenor %q", tenor)
	}
	switch Unit(s[len(s)-1:]) {
	case Days:
		return Period{n, Days}, nil
	case Weeks:
		return Period{n, Weeks}, nil
	case Months:
		return Period{n, Months}, nil
	case Years:
		return Period{n, Years}, nil
	}
	return Period{}, fmt.Errorf("ParsePeriod: unknown unit in %q", tenor)
}

// MustParsePeriod is ParsePeriod for literals; it panics on malformed input.
func MustParsePeriod(tenor string) Period {
	p, err := ParsePeriod(tenor)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Period) String() string {
	return fmt.Sprintf("%d%s", p.Length, p.Unit)
}

// Months reports the period length in months, or 0 for day/week periods.
func (p Period) Months() int {
	switch p.Unit {
	case Months:
		return p.Length
	case Years:
		return 12 * p.Length
	}
	return 0
}

// Years reports the period length as a year fraction.
func (p Period) Years() float64 {
	switch p.Unit {
	case Days:
		return float64(p.Length) / 365.0
	case Weeks:
		return float64(p.Length) * 7.0 / 365.0
	case Months:
		return float64(p.Length) / 12.0
	default:
		return float64(p.Length)
	}
}

// AddTo advances t by n periods. With eom set, month and year steps roll like
// Excel's EDATE so month-end dates stay at month end.
func (p Period) AddTo(t time.Time, n int, eom bool) time.Time {
	switch p.Unit {
	case Days:
		return t.AddDate(0, 0, n*p.Length)
	case Weeks:
		return t.AddDate(0, 0, 7*n*p.Length)
	case Months:
		if eom {
			return utils.AddMonth(t, n*p.Length)
		}
		return t.AddDate(0, n*p.Length, 0)
	default:
		if eom {
			return utils.AddMonth(t, 12*n*p.Length)
		}
		return t.AddDate(n*p.Length, 0, 0)
	}
}
