package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meenmo/caplib/cms"
	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/daycount"
	"github.com/meenmo/caplib/index"
	"github.com/meenmo/caplib/schedule"
	"github.com/meenmo/caplib/vol"
)

func newCMSCmd(app *App) *cobra.Command {
	var scenarioPath string

	cmd := &cobra.Command{
		Use:   "cms",
		Short: "Price a CMS coupon with Hagan and linear TSR convexity adjustments",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(scenarioPath)
			if err != nil {
				return err
			}
			if s.CMS == nil {
				return fmt.Errorf("scenario has no cms section")
			}
			coupon, discount, swaptionVol, err := buildCMSCoupon(s)
			if err != nil {
				return err
			}

			forward, err := coupon.Index.Fixing(coupon.FixingDate)
			if err != nil {
				return fmt.Errorf("forward swap rate: %w", err)
			}
			fmt.Printf("forward swap rate      %10.6f\n", forward)

			for _, row := range []struct {
				name   string
				pricer cms.Pricer
			}{
				{"hagan", cms.NewHaganPricer(swaptionVol, s.CMS.MeanReversion)},
				{"linear-tsr", cms.NewLinearTSRPricer(swaptionVol, s.CMS.MeanReversion)},
			} {
				adjusted, err := row.pricer.AdjustedRate(coupon)
				if err != nil {
					return fmt.Errorf("%s adjusted rate: %w", row.name, err)
				}
				npv, err := cms.NPV(coupon, row.pricer, discount)
				if err != nil {
					return fmt.Errorf("%s npv: %w", row.name, err)
				}
				app.Logger.Info().
					Str("pricer", row.name).
					Float64("adjusted_rate", adjusted).
					Float64("npv", npv).
					Msg("cms coupon priced")
				fmt.Printf("%-12s adjusted  %10.6f   npv %14.4f\n", row.name, adjusted, npv)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario JSON file")
	cmd.MarkFlagRequired("scenario")
	return cmd
}

func buildCMSCoupon(s *scenario) (*cms.Coupon, *curve.Handle, vol.OptionletVolatility, error) {
	discount, err := buildCurve(s.Discount)
	if err != nil {
		return nil, nil, nil, err
	}
	handle := curve.NewHandle(discount)
	ibor, err := buildIndex(s.Index, handle)
	if err != nil {
		return nil, nil, nil, err
	}

	in := s.CMS
	swapTenor, err := schedule.ParsePeriod(in.SwapTenor)
	if err != nil {
		return nil, nil, nil, err
	}
	fixedFreq, err := schedule.ParsePeriod(in.FixedFreq)
	if err != nil {
		return nil, nil, nil, err
	}
	fixedDC, err := parseDayCount(in.FixedDayCount)
	if err != nil {
		return nil, nil, nil, err
	}
	swapIndex := index.NewSwap(ibor.Name+"-CMS-"+in.SwapTenor, swapTenor, fixedFreq, fixedDC, ibor)

	fixing, err := parseDate(in.FixingDate)
	if err != nil {
		return nil, nil, nil, err
	}
	accrualStart, err := parseDate(in.AccrualStart)
	if err != nil {
		return nil, nil, nil, err
	}
	accrualEnd, err := parseDate(in.AccrualEnd)
	if err != nil {
		return nil, nil, nil, err
	}
	payment, err := parseDate(in.PaymentDate)
	if err != nil {
		return nil, nil, nil, err
	}

	gearing := in.Gearing
	if gearing == 0 {
		gearing = 1
	}
	coupon := &cms.Coupon{
		AccrualStart: accrualStart,
		AccrualEnd:   accrualEnd,
		PaymentDate:  payment,
		FixingDate:   fixing,
		Nominal:      in.Nominal,
		Gearing:      gearing,
		Spread:       in.Spread,
		Cap:          in.Cap,
		Floor:        in.Floor,
		Index:        swapIndex,
		DayCount:     ibor.DayCount,
	}
	swaptionVol := vol.NewConstant(discount.ReferenceDate(), in.SwaptionVol, daycount.Act365F)
	return coupon, handle, swaptionVol, nil
}
