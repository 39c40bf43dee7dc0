package jsonadapt

// Severity expresses the severity level for input anomalies.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "ignore"
	}
}

// ParseOpt bundles parsing options. The zero value parses without limits and
// lets the last duplicate key win.
type ParseOpt struct {
	// OnDuplicateKey selects how repeated object keys are treated: Ignore keeps
	// the last value, Warn keeps the last value and reports to OnWarning, Error
	// fails the parse.
	OnDuplicateKey Severity
	MaxDepth       int   // Maximum container nesting; 0 disables the check.
	MaxBytes       int64 // Maximum input size; 0 disables the check.
	// OnWarning receives non-fatal issues (duplicate keys under Warn).
	OnWarning func(Issue)
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
