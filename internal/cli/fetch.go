package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meenmo/caplib/marketdata"
)

func newFetchCmd(app *App) *cobra.Command {
	var (
		asOf      string
		curveName string
		surface   string
		indexName string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a market-data snapshot from the configured database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.Database.DSN == "" {
				return fmt.Errorf("no database.dsn configured")
			}
			date, err := parseDate(asOf)
			if err != nil {
				return err
			}

			store, err := marketdata.Open(app.Config.Database.DSN)
			if err != nil {
				return err
			}
			defer store.Close()
			ctx := cmd.Context()

			if curveName != "" {
				points, err := store.DiscountFactors(ctx, curveName, date)
				if err != nil {
					return err
				}
				fmt.Printf("curve %s as of %s\n", curveName, asOf)
				for _, p := range points {
					fmt.Printf("  %s  %12.8f\n", p.Date.Format("2006-01-02"), p.Value)
				}
			}

			if surface != "" {
				grid, err := store.CapVolGrid(ctx, surface, date)
				if err != nil {
					return err
				}
				fmt.Printf("vol surface %s as of %s\n%-8s", surface, asOf, "expiry")
				for _, k := range grid.Strikes {
					fmt.Printf(" %8.4f", k)
				}
				fmt.Println()
				for i, e := range grid.Expiries {
					fmt.Printf("%-8s", e.String())
					for _, v := range grid.Vols[i] {
						fmt.Printf(" %8.4f", v)
					}
					fmt.Println()
				}
			}

			if indexName != "" {
				fixings, err := store.Fixings(ctx, indexName, date.AddDate(-1, 0, 0), date)
				if err != nil {
					return err
				}
				fmt.Printf("fixings %s (1y to %s): %d rows\n", indexName, asOf, len(fixings))
			}

			app.Logger.Info().Str("as_of", asOf).Msg("snapshot fetched")
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "snapshot date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&curveName, "curve", "", "discount curve name")
	cmd.Flags().StringVar(&surface, "surface", "", "cap vol surface name")
	cmd.Flags().StringVar(&indexName, "index", "", "index name for fixings")
	cmd.MarkFlagRequired("as-of")
	return cmd
}
