package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/meenmo/caplib/capfloor"
	"github.com/meenmo/caplib/internal/logging"
)

func newPortfolioCmd(app *App) *cobra.Command {
	var scenarioPath string

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Price every instrument in a scenario, isolating failures",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScenario(scenarioPath)
			if err != nil {
				return err
			}
			engine, instruments, err := buildEngine(s)
			if err != nil {
				return err
			}

			bar := newBar(len(instruments))
			results := capfloor.PricePortfolio(engine, instruments, func(capfloor.Result) {
				bar.Add(1)
			})

			var failed int
			fmt.Printf("%-24s %16s\n", "instrument", "npv")
			for _, r := range results {
				if r.Err != nil {
					failed++
					logger := logging.WithInstrument(app.Logger, r.Name)
					logger.Warn().Err(r.Err).Msg("valuation failed")
					fmt.Printf("%-24s %16s  (%v)\n", r.Name, "error", r.Err)
					continue
				}
				fmt.Printf("%-24s %16.4f\n", r.Name, r.NPV)
			}
			if failed > 0 {
				fmt.Printf("\n%d of %d instruments failed\n", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario JSON file")
	cmd.MarkFlagRequired("scenario")
	return cmd
}

func newBar(length int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		length,
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetDescription("pricing"),
	)
}
