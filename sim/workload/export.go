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
	"github.com/inference-sim/dcsd/sim/trace"
)

// CSV column headers.
var (
	dcsdColumns  = []string{"DCS", "probability"}
	traceColumns = []string{"cycle", "tick", "distance", "excess"}
)

// WriteDistributionCSV normalizes counts and writes one (index, probability)
// row per bucket in ascending index order, after a header row.
func WriteDistributionCSV(w io.Writer, counts []uint64) error {
	var observations uint64
	for _, c := range counts {
		observations += c
	}
	logrus.Infof("Writing DCSD over %d observations in %d buckets", observations, len(counts))
	writer := csv.NewWriter(w)
	if err := writer.Write(dcsdColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, p := range sim.Normalize(counts) {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(p, 'f', -1, 64)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flushing DCSD CSV: %w", err)
	}
	return nil
}

// WriteDistributionFile writes the DCSD to path, or stdout for "-".
func WriteDistributionFile(path string, counts []uint64) error {
	if path == StdioPath || path == "" {
		return WriteDistributionCSV(os.Stdout, counts)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating DCSD file: %w", err)
	}
	if err := WriteDistributionCSV(file, counts); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing DCSD file: %w", err)
	}
	logrus.Debugf("Successfully wrote DCSD to '%s'", path)
	return nil
}

// LoadDistributionCSV reads a table written by WriteDistributionCSV back into a
// probability slice. Indices must start at 0 and be contiguous.
func LoadDistributionCSV(r io.Reader) ([]float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("%w: reading CSV header: %v", sim.ErrMalformedInput, err)
	}
	var probs []float64
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading CSV row: %v", sim.ErrMalformedInput, err)
		}
		if len(row) < len(dcsdColumns) {
			return nil, fmt.Errorf("%w: CSV row has %d columns, expected %d", sim.ErrMalformedInput, len(row), len(dcsdColumns))
		}
		index, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil || index != len(probs) {
			return nil, fmt.Errorf("%w: expected index %d, got %q", sim.ErrMalformedInput, len(probs), row[0])
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: probability %q at index %d is not a number", sim.ErrMalformedInput, row[1], index)
		}
		probs = append(probs, p)
	}
	return probs, nil
}

// LoadDistributionFile opens path (or stdin for "-") and parses it with LoadDistributionCSV.
func LoadDistributionFile(path string) ([]float64, error) {
	if path == StdioPath || path == "" {
		return LoadDistributionCSV(os.Stdin)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening DCSD file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return LoadDistributionCSV(file)
}

// WriteTraceCSV writes one row per recorded cycle.
func WriteTraceCSV(w io.Writer, ct *trace.ConvergenceTrace) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(traceColumns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	if ct != nil {
		for _, c := range ct.Cycles {
			row := []string{
				strconv.Itoa(c.Cycle),
				strconv.FormatUint(c.Tick, 10),
				strconv.FormatFloat(c.Distance, 'f', -1, 64),
				strconv.FormatUint(c.Excess, 10),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("writing CSV row %d: %w", c.Cycle, err)
			}
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportTrace writes the convergence trace to path.
func ExportTrace(path string, ct *trace.ConvergenceTrace) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	if err := WriteTraceCSV(file, ct); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing trace: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing trace file: %w", err)
	}
	return nil
}
