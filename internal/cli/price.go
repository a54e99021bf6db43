package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/meenmo/caplib/capfloor"
	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/internal/logging"
	"github.com/meenmo/caplib/marketdata"
	"github.com/meenmo/caplib/vol"
)

func newPriceCmd(app *App) *cobra.Command {
	var scenarioPath string

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price the caps and floors of a scenario under Black-76",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(scenarioPath)
			if err != nil {
				return err
			}
			engine, instruments, err := buildEngine(s)
			if err != nil {
				return err
			}
			for _, inst := range instruments {
				start := time.Now()
				diags, err := engine.Diagnostics(inst)
				if err != nil {
					return fmt.Errorf("pricing %s: %w", inst.Name, err)
				}
				var npv float64
				for _, d := range diags {
					npv += d.Price
				}
				logging.LogValuation(app.Logger, inst.Name, npv, time.Since(start))
				printDiagnostics(inst.Name, npv, diags)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario JSON file")
	cmd.MarkFlagRequired("scenario")
	return cmd
}

// buildEngine assembles curves, index, vol, and instruments from a scenario.
func buildEngine(s *scenario) (*capfloor.Engine, []*capfloor.Instrument, error) {
	discount, err := buildCurve(s.Discount)
	if err != nil {
		return nil, nil, err
	}
	discountHandle := curve.NewHandle(discount)

	forwardingHandle := discountHandle
	if s.Forward != nil {
		forwarding, err := buildCurve(*s.Forward)
		if err != nil {
			return nil, nil, err
		}
		forwardingHandle = curve.NewHandle(forwarding)
	}

	ix, err := buildIndex(s.Index, forwardingHandle)
	if err != nil {
		return nil, nil, err
	}
	if len(s.Fixings) > 0 {
		feed := marketdata.NewMapFixingFeed(s.Fixings)
		for dateStr := range s.Fixings {
			date, err := parseDate(dateStr)
			if err != nil {
				return nil, nil, fmt.Errorf("fixing date: %w", err)
			}
			if rate, ok := feed.RateOn(date); ok {
				ix.AddFixing(date, rate)
			}
		}
	}

	v := vol.OptionletVolatility(vol.NewConstant(discount.ReferenceDate(), s.FlatVol, ix.DayCount))
	if s.VolGrid != nil {
		v, err = buildStrippedVol(s, ix, discountHandle)
		if err != nil {
			return nil, nil, err
		}
	}

	instruments := make([]*capfloor.Instrument, 0, len(s.Instruments))
	for _, in := range s.Instruments {
		inst, err := buildInstrument(in, ix)
		if err != nil {
			return nil, nil, err
		}
		instruments = append(instruments, inst)
	}
	return capfloor.NewEngine(discountHandle, v), instruments, nil
}

func printDiagnostics(name string, npv float64, diags []capfloor.OptionletDiagnostic) {
	fmt.Printf("%s  NPV = %.4f\n", name, npv)
	fmt.Printf("%-12s %-12s %14s %10s %9s %11s %9s\n",
		"start", "end", "price", "df", "strike", "atm fwd", "stddev")
	for _, d := range diags {
		fmt.Printf("%-12s %-12s %14.4f %10.6f %9.4f %11.6f %9.6f\n",
			d.AccrualStart.Format("2006-01-02"),
			d.AccrualEnd.Format("2006-01-02"),
			d.Price, d.DiscountFactor, d.CapRate, d.ATMForward, d.StdDev)
	}
	fmt.Println()
}
