package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	sim "github.com/inference-sim/dcsd/sim"
)

// resolveRunConfig layers the run configuration: defaults < --config YAML <
// DCSD_* environment < flags the user actually set (cmd.Flags().Changed).
func resolveRunConfig(cmd *cobra.Command) (*sim.RunConfig, error) {
	cfg := &sim.RunConfig{}
	if configPath != "" {
		loaded, err := sim.LoadRunConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.OverlayEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") || cfg.Input == "" {
		cfg.Input = inputPath
	}
	if flags.Changed("output") || cfg.Output == "" {
		cfg.Output = outputPath
	}
	if flags.Changed("summary") {
		cfg.Summary = summaryPath
	}
	if flags.Changed("trace") {
		cfg.Trace = tracePath
	}
	if flags.Changed("capacity") {
		cfg.Capacity = &capacity
	}
	if flags.Changed("delta") {
		cfg.Delta = &delta
	}
	if flags.Changed("warmup-ticks") {
		cfg.WarmupTicks = &warmupTicks
	}
	if flags.Changed("samples-per-cycle") {
		cfg.SamplesPerCycle = &samplesPerCycle
	}
	if flags.Changed("max-cycles") {
		cfg.MaxCycles = &maxCycles
	}
	if flags.Changed("distance") {
		cfg.Distance = distanceMode
	}
	if flags.Changed("seed") {
		cfg.Seed = &seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func errTenancyTooLong(v uint64) error {
	return fmt.Errorf("longest tenancy %d exceeds the supported histogram bound %d", v, maxHistogramValue)
}
