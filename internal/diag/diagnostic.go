package diag

import (
	"fxsema/internal/source"
)

// Diagnostic is a single analysis finding. Diagnostics are append-only:
// once published into a Bag they are never mutated or removed.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Span     source.Span
	HasSpan  bool

	// UpstreamID preserves the original id of a republished parser
	// diagnostic; empty for diagnostics this analyzer produced.
	UpstreamID string
}

// ID returns the stable string id used in serialized output.
func (d Diagnostic) ID() string {
	if d.UpstreamID != "" {
		return d.UpstreamID
	}
	return d.Code.ID()
}
