package workload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/dcsd/sim"
)

// StdioPath selects stdin for inputs and stdout for outputs.
const StdioPath = "-"

// LoadEmpiricalCSV reads a two-column (value, weight) tenancy table.
//
// A first row whose value column is not a number is treated as a header. Missing columns, unparsable fields and repeated values are
// ErrMalformedInput; a table that cannot be sampled is ErrInvalidDistribution.
func LoadEmpiricalCSV(r io.Reader) (sim.EmpiricalDistribution, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var entries []sim.Tenancy
	seen := make(map[uint64]int)
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return sim.EmpiricalDistribution{}, fmt.Errorf("%w: reading CSV row %d: %v", sim.ErrMalformedInput, line, err)
		}
		if line == 1 && isHeader(row) {
			logrus.Debugf("Skipping tenancy table header %v", row)
			continue
		}
		t, err := parseTenancy(row)
		if err != nil {
			return sim.EmpiricalDistribution{}, fmt.Errorf("%w: row %d: %v", sim.ErrMalformedInput, line, err)
		}
		if prev, ok := seen[t.Value]; ok {
			return sim.EmpiricalDistribution{}, fmt.Errorf("%w: row %d: value %d already defined on row %d",
				sim.ErrMalformedInput, line, t.Value, prev)
		}
		seen[t.Value] = line
		entries = append(entries, t)
	}

	dist, err := sim.NewEmpiricalDistribution(entries)
	if err != nil {
		return sim.EmpiricalDistribution{}, fmt.Errorf("building tenancy distribution: %w", err)
	}
	logrus.Debugf("Loaded %d tenancy values (max %d)", dist.Len(), dist.MaxValue())
	return dist, nil
}

// LoadEmpiricalFile opens path (or stdin for "-") and parses it with LoadEmpiricalCSV.
func LoadEmpiricalFile(path string) (sim.EmpiricalDistribution, error) {
	if path == StdioPath || path == "" {
		return LoadEmpiricalCSV(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return sim.EmpiricalDistribution{}, fmt.Errorf("opening tenancy table: %w", err)
	}
	defer func() { _ = file.Close() }()
	return LoadEmpiricalCSV(file)
}

// isHeader reports whether row's value column is not numeric at all. Numeric
// values that are not unsigned integers (-3, 1.5) are data and fail parsing.
func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
	return err != nil
}

func parseTenancy(row []string) (sim.Tenancy, error) {
	if len(row) < 2 {
		return sim.Tenancy{}, fmt.Errorf("expected 2 columns (value, weight), got %d", len(row))
	}
	value, err := strconv.ParseUint(strings.TrimSpace(row[0]), 10, 64)
	if err != nil {
		return sim.Tenancy{}, fmt.Errorf("value %q is not an unsigned integer", row[0])
	}
	weight, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return sim.Tenancy{}, fmt.Errorf("weight %q is not a number", row[1])
	}
	return sim.Tenancy{Value: value, Weight: weight}, nil
}
