package workload

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/dcsd/sim"
	"github.com/inference-sim/dcsd/sim/trace"
)

func TestWriteDistributionCSV_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDistributionCSV(&buf, []uint64{0, 3, 1}))

	want := "DCS,probability\n0,0\n1,0.75\n2,0.25\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteDistributionCSV_AllZero(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDistributionCSV(&buf, []uint64{0, 0}))
	assert.Equal(t, "DCS,probability\n0,0\n1,0\n", buf.String())
}

func TestWriteDistributionCSV_LogsObservationCount(t *testing.T) {
	// GIVEN an info-level logger with a capture hook
	hook := logtest.NewGlobal()
	level := logrus.GetLevel()
	logrus.SetLevel(logrus.InfoLevel)
	t.Cleanup(func() {
		logrus.SetLevel(level)
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	})

	// WHEN an empty histogram and a populated one are written
	require.NoError(t, WriteDistributionCSV(&bytes.Buffer{}, []uint64{0, 0, 0}))
	empty := hook.LastEntry().Message
	require.NoError(t, WriteDistributionCSV(&bytes.Buffer{}, []uint64{2, 5}))

	// THEN the log reports the real number of observations
	assert.Equal(t, "Writing DCSD over 0 observations in 3 buckets", empty)
	assert.Equal(t, "Writing DCSD over 7 observations in 2 buckets", hook.LastEntry().Message)
}

func TestDistributionCSV_ReadBack(t *testing.T) {
	// GIVEN a histogram written to disk
	path := filepath.Join(t.TempDir(), "dcsd.csv")
	require.NoError(t, WriteDistributionFile(path, []uint64{1, 2, 1}))

	// WHEN it is read back
	probs, err := LoadDistributionFile(path)
	require.NoError(t, err)

	// THEN the probabilities match the normalized histogram
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.25}, probs, 1e-12)
	assert.InDelta(t, 0.25, sim.ExpectedExcessProbabilities(probs, 1), 1e-12)
}

func TestLoadDistributionCSV_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"gap in indices", "DCS,probability\n0,0.5\n2,0.5\n"},
		{"bad probability", "DCS,probability\n0,half\n"},
		{"missing column", "DCS,probability\n0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDistributionCSV(strings.NewReader(tt.input))
			assert.True(t, errors.Is(err, sim.ErrMalformedInput), "got %v", err)
		})
	}
}

func TestWriteTraceCSV(t *testing.T) {
	ct := trace.NewConvergenceTrace(trace.TraceConfig{Level: trace.TraceLevelCycles})
	ct.Record(trace.CycleRecord{Cycle: 1, Tick: 1025, Distance: 1, Excess: 4})
	ct.Record(trace.CycleRecord{Cycle: 2, Tick: 2048, Distance: 0.5, Excess: 0})

	var buf bytes.Buffer
	require.NoError(t, WriteTraceCSV(&buf, ct))
	assert.Equal(t, "cycle,tick,distance,excess\n1,1025,1,4\n2,2048,0.5,0\n", buf.String())
}

func TestExportTrace_NilTraceWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, ExportTrace(path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cycle,tick,distance,excess\n", string(data))
}

func TestExportTrace_ReportsFileErrors(t *testing.T) {
	// A directory cannot be created as a file.
	err := ExportTrace(t.TempDir(), nil)
	assert.Error(t, err)
}

func TestExportTrace_WritesAllRows(t *testing.T) {
	ct := trace.NewConvergenceTrace(trace.TraceConfig{Level: trace.TraceLevelCycles})
	ct.Record(trace.CycleRecord{Cycle: 1, Tick: 10, Distance: 0.25, Excess: 2})

	path := filepath.Join(t.TempDir(), "trace.csv")
	require.NoError(t, ExportTrace(path, ct))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cycle,tick,distance,excess\n1,10,0.25,2\n", string(data))
}
