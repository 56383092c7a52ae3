package trace

import (
	"testing"
)

func TestConvergenceTrace_Record_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for cycles
	ct := NewConvergenceTrace(TraceConfig{Level: TraceLevelCycles})

	// WHEN a cycle record is recorded
	ct.Record(CycleRecord{Cycle: 1, Tick: 1023, Distance: 0.4, Excess: 12})

	// THEN the trace contains one record with correct data
	if len(ct.Cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d", len(ct.Cycles))
	}
	if ct.Cycles[0].Tick != 1023 {
		t.Errorf("expected tick 1023, got %d", ct.Cycles[0].Tick)
	}
	if ct.Cycles[0].Distance != 0.4 {
		t.Errorf("expected distance 0.4, got %v", ct.Cycles[0].Distance)
	}
}

func TestConvergenceTrace_LevelNone_DropsRecords(t *testing.T) {
	// GIVEN a trace with tracing disabled
	ct := NewConvergenceTrace(TraceConfig{Level: TraceLevelNone})

	// WHEN a record is offered
	ct.Record(CycleRecord{Cycle: 1})

	// THEN nothing is kept
	if len(ct.Cycles) != 0 {
		t.Errorf("expected 0 cycles, got %d", len(ct.Cycles))
	}
}

func TestConvergenceTrace_NilReceiver_IsSafe(t *testing.T) {
	var ct *ConvergenceTrace
	if ct.Enabled() {
		t.Error("nil trace must report disabled")
	}
	ct.Record(CycleRecord{Cycle: 1}) // must not panic
}

func TestConvergenceTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	ct := NewConvergenceTrace(TraceConfig{Level: TraceLevelCycles})
	for i := 1; i <= 3; i++ {
		ct.Record(CycleRecord{Cycle: i, Tick: uint64(i * 1023)})
	}
	for i, c := range ct.Cycles {
		if c.Cycle != i+1 {
			t.Errorf("record %d: cycle = %d, want %d", i, c.Cycle, i+1)
		}
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"", true},
		{"none", true},
		{"cycles", true},
		{"decisions", false},
		{"CYCLES", false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.want {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}
