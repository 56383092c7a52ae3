package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/dcsd/sim"
	"github.com/inference-sim/dcsd/sim/workload"
)

// --- dcsd excess ---

var (
	excessInputPath string
	excessCapacity  uint64
)

var excessCmd = &cobra.Command{
	Use:   "excess",
	Short: "Compute the expected occupancy above a fixed capacity from a saved DCSD",
	Long:  "Reads a DCSD CSV written by `dcsd run` and prints sum_i max(0, i-capacity) * p_i, the expected number of slots in use beyond the capacity.",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)
		probs, err := workload.LoadDistributionFile(excessInputPath)
		if err != nil {
			logrus.Fatalf("Unable to read DCSD: %v", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%g\n", sim.ExpectedExcessProbabilities(probs, excessCapacity))
	},
}

func init() {
	excessCmd.Flags().StringVar(&excessInputPath, "input", workload.StdioPath, "DCSD CSV written by `dcsd run` (- for stdin)")
	excessCmd.Flags().Uint64Var(&excessCapacity, "capacity", sim.DefaultCapacity, "Fixed capacity")
	excessCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
