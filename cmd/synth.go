package cmd

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/dcsd/sim"
	"github.com/inference-sim/dcsd/sim/workload"
)

// --- dcsd synth ---

var (
	synthType   string
	synthParams map[string]string
	synthDraws  int
	synthOutput string
	synthSeed   int64
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Synthesize a tenancy table from a parametric distribution",
	Long: `Draws tenancy lengths from a parametric distribution and writes the tallied
value,weight table that dcsd run reads.

Types and required --param keys:
  constant          value
  exponential       mean
  gaussian          mean, std_dev, min, max
  pareto_lognormal  alpha, xm, mu, sigma, mix_weight`,
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)

		spec, err := parseTenancySpec(synthType, synthParams)
		if err != nil {
			logrus.Fatalf("Invalid distribution: %v", err)
		}
		var rng *rand.Rand
		if cmd.Flags().Changed("seed") {
			rng = sim.NewPartitionedRNG(sim.NewSimulationKey(synthSeed)).ForSubsystem(sim.SubsystemSynth)
		} else {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		dist, err := synthesize(spec, synthDraws, rng)
		if err != nil {
			logrus.Fatalf("Synthesis failed: %v", err)
		}
		if err := workload.WriteEmpiricalFile(synthOutput, dist); err != nil {
			logrus.Fatalf("Unable to write tenancy table: %v", err)
		}
		logrus.Infof("Wrote %d tenancy values (max %d) from %d draws", dist.Len(), dist.MaxValue(), synthDraws)
	},
}

// parseTenancySpec converts --param key=value pairs into a TenancySpec.
func parseTenancySpec(typ string, params map[string]string) (workload.TenancySpec, error) {
	spec := workload.TenancySpec{Type: typ, Params: make(map[string]float64, len(params))}
	for k, v := range params {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return spec, fmt.Errorf("parameter %s=%q is not a number", k, v)
		}
		spec.Params[k] = f
	}
	return spec, nil
}

func synthesize(spec workload.TenancySpec, draws int, rng *rand.Rand) (sim.EmpiricalDistribution, error) {
	sampler, err := workload.NewLengthSampler(spec, rng)
	if err != nil {
		return sim.EmpiricalDistribution{}, err
	}
	return workload.SynthesizeTable(sampler, draws)
}

func init() {
	synthCmd.Flags().StringVar(&synthType, "type", "exponential", "Distribution type (constant, exponential, gaussian, pareto_lognormal)")
	synthCmd.Flags().StringToStringVar(&synthParams, "param", nil, "Distribution parameter as key=value (repeatable)")
	synthCmd.Flags().IntVar(&synthDraws, "draws", 100000, "Number of tenancy draws to tally")
	synthCmd.Flags().StringVar(&synthOutput, "output", workload.StdioPath, "Tenancy table CSV (- for stdout)")
	synthCmd.Flags().Int64Var(&synthSeed, "seed", 0, "Seed for draws (unseeded when omitted)")
	synthCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
