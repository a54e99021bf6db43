package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meenmo/caplib/curve"
	"github.com/meenmo/caplib/index"
	"github.com/meenmo/caplib/schedule"
	"github.com/meenmo/caplib/vol"
)

func newStripCmd(app *App) *cobra.Command {
	var scenarioPath string

	cmd := &cobra.Command{
		Use:   "strip",
		Short: "Bootstrap optionlet volatilities from a cap volatility grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(scenarioPath)
			if err != nil {
				return err
			}
			if s.VolGrid == nil {
				return fmt.Errorf("scenario has no vol_grid to strip")
			}
			discount, err := buildCurve(s.Discount)
			if err != nil {
				return err
			}
			handle := curve.NewHandle(discount)
			ix, err := buildIndex(s.Index, handle)
			if err != nil {
				return err
			}
			stripped, err := buildStrippedVol(s, ix, handle)
			if err != nil {
				return err
			}
			app.Logger.Info().
				Int("expiries", len(stripped.FixingDates())).
				Int("strikes", len(stripped.Strikes())).
				Msg("optionlet stripping complete")
			printStripped(stripped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario JSON file")
	cmd.MarkFlagRequired("scenario")
	return cmd
}

// buildStrippedVol builds the quoted cap vol surface and strips it into
// per-optionlet volatilities.
func buildStrippedVol(s *scenario, ix *index.Ibor, discount *curve.Handle) (*vol.StrippedAdapter, error) {
	expiries := make([]schedule.Period, len(s.VolGrid.Expiries))
	for i, e := range s.VolGrid.Expiries {
		p, err := schedule.ParsePeriod(e)
		if err != nil {
			return nil, err
		}
		expiries[i] = p
	}
	surface, err := vol.NewCapFloorTermVolSurface(discount.ReferenceDate(), ix.Calendar, ix.Convention,
		expiries, s.VolGrid.Strikes, s.VolGrid.Vols, ix.DayCount, vol.FlatExtrapolation)
	if err != nil {
		return nil, err
	}
	stripper, err := vol.NewOptionletStripper(surface, ix, discount)
	if err != nil {
		return nil, err
	}
	return stripper.Strip()
}

func printStripped(a *vol.StrippedAdapter) {
	fmt.Printf("%-12s", "fixing")
	for _, k := range a.Strikes() {
		fmt.Printf(" %8.4f", k)
	}
	fmt.Println()
	for _, d := range a.FixingDates() {
		fmt.Printf("%-12s", d.Format("2006-01-02"))
		for _, k := range a.Strikes() {
			v, err := a.Volatility(d, k)
			if err != nil {
				fmt.Printf(" %8s", "n/a")
				continue
			}
			fmt.Printf(" %8.4f", v)
		}
		fmt.Println()
	}
}
