package trace

// TraceLevel controls the verbosity of convergence tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelCycles records one CycleRecord per measurement cycle.
	TraceLevelCycles TraceLevel = "cycles"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelCycles: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// ConvergenceTrace collects cycle records during a simulation run.
type ConvergenceTrace struct {
	Config TraceConfig
	Cycles []CycleRecord
}

// NewConvergenceTrace creates a ConvergenceTrace ready for recording.
func NewConvergenceTrace(config TraceConfig) *ConvergenceTrace {
	return &ConvergenceTrace{
		Config: config,
		Cycles: make([]CycleRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe for nil.
func (ct *ConvergenceTrace) Enabled() bool {
	return ct != nil && ct.Config.Level == TraceLevelCycles
}

// Record appends a cycle record. It is a no-op when tracing is disabled.
func (ct *ConvergenceTrace) Record(record CycleRecord) {
	if !ct.Enabled() {
		return
	}
	ct.Cycles = append(ct.Cycles, record)
}
