// Command evapcalc runs the daily lake evaporation calculation and the
// sunshine estimators from the command line, for spot checks against portal
// values without a running service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "evapcalc",
	Short: "Daily lake evaporation calculator",
	Long: `evapcalc computes daily lake evaporation with the Shuttleworth
combination method from aggregated weather values, and exposes the sunshine
duration estimators used when no sunshine sensor is available.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
