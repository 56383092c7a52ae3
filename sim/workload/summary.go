package workload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/dcsd/sim"
	"github.com/inference-sim/dcsd/sim/trace"
)

// Summary is the YAML sidecar describing one estimation run.
type Summary struct {
	CreatedAt      string              `yaml:"created_at,omitempty"`
	Input          string              `yaml:"input,omitempty"`
	Seed           *int64              `yaml:"seed,omitempty"` // nil when the run was unseeded
	Config         SummaryConfig       `yaml:"config"`
	Metrics        sim.RunMetrics      `yaml:"metrics"`
	ExpectedExcess float64             `yaml:"expected_excess"`
	Trace          *trace.TraceSummary `yaml:"trace,omitempty"`
}

// SummaryConfig echoes the engine configuration in summary form.
type SummaryConfig struct {
	Capacity        uint64  `yaml:"capacity"`
	Delta           float64 `yaml:"delta"`
	WarmupTicks     int64   `yaml:"warmup_ticks"`
	SamplesPerCycle int     `yaml:"samples_per_cycle"`
	MaxCycles       int     `yaml:"max_cycles"`
	Distance        string  `yaml:"distance"`
	Buckets         int     `yaml:"buckets"`
}

// NewSummary assembles a Summary from an engine and its result.
func NewSummary(engine *sim.Engine, result *sim.Result) *Summary {
	cfg := engine.Config()
	s := &Summary{
		Config: SummaryConfig{
			Capacity:        cfg.Capacity,
			Delta:           cfg.Delta,
			WarmupTicks:     engine.WarmupTicks(),
			SamplesPerCycle: cfg.SamplesPerCycle,
			MaxCycles:       cfg.MaxCycles,
			Distance:        string(cfg.DistanceMode),
			Buckets:         len(result.Histogram),
		},
		Metrics:        result.Metrics,
		ExpectedExcess: sim.ExpectedExcess(result.Histogram, cfg.Capacity),
	}
	if result.Trace.Enabled() {
		s.Trace = trace.Summarize(result.Trace)
	}
	return s
}

// ExportSummary writes s as YAML to path.
func ExportSummary(path string, s *Summary) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling run summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing run summary: %w", err)
	}
	return nil
}

// LoadSummary reads a YAML run summary.
func LoadSummary(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run summary: %w", err)
	}
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing run summary: %w", err)
	}
	return &s, nil
}
