// Package cli provides the command-line interface for the pricing tools.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meenmo/caplib/internal/config"
)

// App holds the command dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd builds the root command for the cap/floor pricing CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{Config: cfg, Logger: logger}

	rootCmd := &cobra.Command{
		Use:   "capfloor",
		Short: "Interest-rate cap/floor and CMS pricing tools",
		Long: `Prices interest-rate caps and floors under Black-76, strips optionlet
volatilities from cap quotes, and computes CMS convexity adjustments.

Market data and trade terms come from a JSON scenario file; see the
scenario flag of each command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/caplib)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newStripCmd(app))
	rootCmd.AddCommand(newCMSCmd(app))
	rootCmd.AddCommand(newPortfolioCmd(app))
	rootCmd.AddCommand(newFetchCmd(app))

	return rootCmd
}
