package cmd

import (
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/dcsd/sim"
	"github.com/inference-sim/dcsd/sim/trace"
	"github.com/inference-sim/dcsd/sim/workload"
)

var (
	// CLI flags for the run command
	configPath      string  // Optional YAML run config
	inputPath       string  // Empirical tenancy table (CSV, "-" = stdin)
	outputPath      string  // DCSD output (CSV, "-" = stdout)
	summaryPath     string  // Optional YAML run summary
	tracePath       string  // Optional per-cycle convergence trace (CSV)
	capacity        uint64  // Fixed capacity for excess accounting
	delta           float64 // Convergence threshold
	warmupTicks     int64   // Warm-up ticks (-1 = longest tenancy)
	samplesPerCycle int     // Draws per measurement cycle
	maxCycles       int     // Hard cap on measurement cycles
	distanceMode    string  // Distance mode: full or legacy
	seed            int64   // Seed for tenancy draws (unseeded unless set)
	logLevel        string  // Log verbosity level
	printMetrics    bool    // Print the metrics block to stderr
)

// maxHistogramValue bounds the largest tenancy value accepted from input, since
// the histogram allocates one bucket per occupancy level up to it.
const maxHistogramValue = math.MaxInt32

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dcsd",
	Short: "Monte Carlo estimator for concurrent occupancy (cache-size) distributions",
}

// runCmd executes the simulation using parameters from the config file, DCSD_* env and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Estimate the DCSD of an empirical tenancy table",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)

		runCfg, err := resolveRunConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}
		engineCfg := sim.DefaultEngineConfig()
		runCfg.Apply(&engineCfg)
		if runCfg.Trace != "" {
			engineCfg.TraceLevel = trace.TraceLevelCycles
		}

		startTime := time.Now()
		engine, result, err := estimate(runCfg, engineCfg)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation finished in %s", time.Since(startTime))

		if err := workload.WriteDistributionFile(runCfg.Output, result.Histogram); err != nil {
			logrus.Fatalf("Unable to write DCSD: %v", err)
		}
		if runCfg.Summary != "" {
			summary := workload.NewSummary(engine, result)
			summary.CreatedAt = startTime.UTC().Format(time.RFC3339)
			summary.Input = runCfg.Input
			summary.Seed = runCfg.Seed
			if err := workload.ExportSummary(runCfg.Summary, summary); err != nil {
				logrus.Fatalf("Unable to write run summary: %v", err)
			}
		}
		if runCfg.Trace != "" {
			if err := workload.ExportTrace(runCfg.Trace, result.Trace); err != nil {
				logrus.Fatalf("Unable to write convergence trace: %v", err)
			}
		}
		if printMetrics {
			result.Metrics.Print(os.Stderr)
		}

		logrus.Info("Simulation complete.")
	},
}

// estimate loads the tenancy table, builds the sampler and engine, and runs it.
func estimate(runCfg *sim.RunConfig, engineCfg sim.EngineConfig) (*sim.Engine, *sim.Result, error) {
	dist, err := workload.LoadEmpiricalFile(runCfg.Input)
	if err != nil {
		return nil, nil, err
	}
	if dist.MaxValue() > maxHistogramValue {
		return nil, nil, errTenancyTooLong(dist.MaxValue())
	}

	var src rand.Source
	if runCfg.Seed != nil {
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(*runCfg.Seed))
		src = rng.ForSubsystem(sim.SubsystemSampler)
	} else {
		logrus.Debug("No seed given; tenancy draws are unseeded")
	}
	sampler, err := sim.NewWeightedSampler(dist, src)
	if err != nil {
		return nil, nil, err
	}

	engine, err := sim.NewEngine(sampler, engineCfg, int(dist.MaxValue()))
	if err != nil {
		return nil, nil, err
	}
	result, err := engine.Run()
	if err != nil {
		return nil, nil, err
	}
	return engine, result, nil
}

// setupLogging parses level and applies it to the standard logrus logger.
func setupLogging(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(parsed)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags binds the run flags to c. Registration resets every bound
// variable to its default.
func registerRunFlags(c *cobra.Command) {
	c.Flags().StringVar(&configPath, "config", "", "YAML run configuration file")
	c.Flags().StringVar(&inputPath, "input", workload.StdioPath, "Empirical tenancy table as value,weight CSV (- for stdin)")
	c.Flags().StringVar(&outputPath, "output", workload.StdioPath, "DCSD output CSV (- for stdout)")
	c.Flags().StringVar(&summaryPath, "summary", "", "Write a YAML run summary to this path")
	c.Flags().StringVar(&tracePath, "trace", "", "Write the per-cycle convergence trace CSV to this path")
	c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().BoolVar(&printMetrics, "metrics", false, "Print run metrics to stderr")

	// Engine parameters
	c.Flags().Uint64Var(&capacity, "capacity", sim.DefaultCapacity, "Fixed capacity used for excess accounting")
	c.Flags().Float64Var(&delta, "delta", sim.DefaultDelta, "Convergence threshold on successive-cycle distance")
	c.Flags().Int64Var(&warmupTicks, "warmup-ticks", sim.AutoWarmup, "Warm-up ticks before measuring (-1 = longest tenancy)")
	c.Flags().IntVar(&samplesPerCycle, "samples-per-cycle", sim.DefaultSamplesPerCycle, "Draws per measurement cycle")
	c.Flags().IntVar(&maxCycles, "max-cycles", sim.DefaultMaxCycles, "Hard cap on measurement cycles")
	c.Flags().StringVar(&distanceMode, "distance", string(sim.DistanceFull), "Distance mode for the convergence test (full, legacy)")
	c.Flags().Int64Var(&seed, "seed", 0, "Seed for tenancy draws (unseeded when omitted)")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd)

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(excessCmd)
	rootCmd.AddCommand(synthCmd)
}
