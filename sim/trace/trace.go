package trace

// TraceLevel controls the verbosity of admission tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDays captures one DayRecord per simulated day.
	TraceLevelDays TraceLevel = "days"
)

var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone: true,
	TraceLevelDays: true,
	"":             true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects day records during a single simulation run.
type SimulationTrace struct {
	Config TraceConfig
	Days   []DayRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Days:   make([]DayRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on nil.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDays
}

// RecordDay appends a day record.
func (st *SimulationTrace) RecordDay(record DayRecord) {
	st.Days = append(st.Days, record)
}
