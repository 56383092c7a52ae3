package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/inference-sim/dcsd/sim"
)

// MaxSynthTenancy caps synthesized tenancy lengths.
const MaxSynthTenancy = math.MaxInt32

// TenancySpec parameterizes a synthetic tenancy-length distribution.
type TenancySpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params"`
}

// LengthSampler draws tenancy lengths in ticks.
type LengthSampler interface {
	// Sample returns a tenancy length in [1, MaxSynthTenancy].
	Sample() uint64
}

// GaussianSampler produces clamped Gaussian tenancy lengths.
type GaussianSampler struct {
	dist     distuv.Normal
	min, max float64
}

func (s *GaussianSampler) Sample() uint64 {
	if s.min == s.max {
		return roundTenancy(s.min)
	}
	return roundTenancy(math.Min(s.max, math.Max(s.min, s.dist.Rand())))
}

// ExponentialSampler produces exponentially distributed tenancy lengths.
type ExponentialSampler struct {
	dist distuv.Exponential
}

func (s *ExponentialSampler) Sample() uint64 {
	return roundTenancy(s.dist.Rand())
}

// ParetoLogNormalSampler is a mixture of Pareto and LogNormal distributions.
// With probability mixWeight it draws from Pareto(alpha, xm), otherwise from
// LogNormal(mu, sigma). Heavy-tailed tables like this stress the histogram bound.
type ParetoLogNormalSampler struct {
	rng       *rand.Rand
	pareto    distuv.Pareto
	lognormal distuv.LogNormal
	mixWeight float64
}

func (s *ParetoLogNormalSampler) Sample() uint64 {
	if s.rng.Float64() < s.mixWeight {
		return roundTenancy(s.pareto.Rand())
	}
	return roundTenancy(s.lognormal.Rand())
}

// ConstantSampler always returns the same fixed length.
type ConstantSampler struct {
	value uint64
}

func (s *ConstantSampler) Sample() uint64 { return s.value }

// roundTenancy maps a real-valued draw onto [1, MaxSynthTenancy].
func roundTenancy(v float64) uint64 {
	if math.IsNaN(v) || v < 1 {
		return 1
	}
	if v >= MaxSynthTenancy {
		return MaxSynthTenancy
	}
	return uint64(math.Round(v))
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewLengthSampler creates a LengthSampler from a TenancySpec. Every draw comes
// from rng, so a seeded rng yields a reproducible sequence.
func NewLengthSampler(spec TenancySpec, rng *rand.Rand) (LengthSampler, error) {
	p := spec.Params
	switch spec.Type {
	case "gaussian":
		if err := requireParam(p, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		if p["std_dev"] < 0 || p["min"] > p["max"] {
			return nil, fmt.Errorf("gaussian requires std_dev >= 0 and min <= max")
		}
		return &GaussianSampler{
			dist: distuv.Normal{Mu: p["mean"], Sigma: p["std_dev"], Src: rng},
			min:  p["min"],
			max:  p["max"],
		}, nil

	case "exponential":
		if err := requireParam(p, "mean"); err != nil {
			return nil, err
		}
		if p["mean"] <= 0 {
			return nil, fmt.Errorf("exponential mean must be positive, got %v", p["mean"])
		}
		return &ExponentialSampler{dist: distuv.Exponential{Rate: 1 / p["mean"], Src: rng}}, nil

	case "pareto_lognormal":
		if err := requireParam(p, "alpha", "xm", "mu", "sigma", "mix_weight"); err != nil {
			return nil, err
		}
		if p["alpha"] <= 0 || p["xm"] <= 0 || p["sigma"] < 0 || p["mix_weight"] < 0 || p["mix_weight"] > 1 {
			return nil, fmt.Errorf("pareto_lognormal requires alpha > 0, xm > 0, sigma >= 0 and mix_weight in [0, 1]")
		}
		return &ParetoLogNormalSampler{
			rng:       rng,
			pareto:    distuv.Pareto{Xm: p["xm"], Alpha: p["alpha"], Src: rng},
			lognormal: distuv.LogNormal{Mu: p["mu"], Sigma: p["sigma"], Src: rng},
			mixWeight: p["mix_weight"],
		}, nil

	case "constant":
		if err := requireParam(p, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: roundTenancy(p["value"])}, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}

// SynthesizeTable draws n tenancy lengths and tallies them into a table
// ordered by value, weighted by how often each value was drawn.
func SynthesizeTable(s LengthSampler, n int) (sim.EmpiricalDistribution, error) {
	if n < 1 {
		return sim.EmpiricalDistribution{}, fmt.Errorf("%w: need at least one draw, got %d", sim.ErrInvalidDistribution, n)
	}
	tally := make(map[uint64]uint64)
	for range n {
		tally[s.Sample()]++
	}
	values := make([]uint64, 0, len(tally))
	for v := range tally {
		values = append(values, v)
	}
	slices.Sort(values)

	entries := make([]sim.Tenancy, len(values))
	for i, v := range values {
		entries[i] = sim.Tenancy{Value: v, Weight: float64(tally[v])}
	}
	return sim.NewEmpiricalDistribution(entries)
}

// WriteEmpiricalCSV writes dist in the value,weight format LoadEmpiricalCSV reads.
func WriteEmpiricalCSV(w io.Writer, dist sim.EmpiricalDistribution) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"value", "weight"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, e := range dist.Entries() {
		row := []string{strconv.FormatUint(e.Value, 10), strconv.FormatFloat(e.Weight, 'f', -1, 64)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for value %d: %w", e.Value, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteEmpiricalFile writes dist to path, or stdout for "-".
func WriteEmpiricalFile(path string, dist sim.EmpiricalDistribution) error {
	if path == StdioPath || path == "" {
		return WriteEmpiricalCSV(os.Stdout, dist)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating tenancy table: %w", err)
	}
	if err := WriteEmpiricalCSV(file, dist); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
