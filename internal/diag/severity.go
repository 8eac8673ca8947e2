package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// ParseSeverity maps an upstream severity label onto Severity.
// Unknown labels default to Error: a parser diagnostic we cannot
// classify is still a diagnostic the user must see.
func ParseSeverity(label string) Severity {
	switch label {
	case "info", "INFO", "Info":
		return SevInfo
	case "warning", "WARNING", "Warning":
		return SevWarning
	}
	return SevError
}
