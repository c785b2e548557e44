package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// flagBonusRate overrides BONUS_RATE_PERCENT when non-negative.
var flagBonusRate float64

var rootCmd = &cobra.Command{
	Use:   "purchases",
	Short: "Track retail purchases and customer loyalty bonuses",
	Long: `purchases records retail transactions per customer and keeps running
loyalty totals: cumulative spend and bonus points, recomputed over the
whole ledger on every change. Records live in a CSV file by default;
sqlite and in-memory backends are available via STORE_BACKEND.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Float64Var(&flagBonusRate, "bonus-rate", -1,
		"bonus rate percent, overrides BONUS_RATE_PERCENT")
}
