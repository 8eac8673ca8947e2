package diagfmt

import (
	"encoding/json"
	"io"

	"fxsema/internal/diag"
	"fxsema/internal/source"
)

// LocationJSON pins a diagnostic to a byte range, optionally with
// resolved line/column positions.
type LocationJSON struct {
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticsOutput is the root structure of the JSON rendering.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

// BuildDiagnosticsOutput assembles the JSON structure without
// serializing it.
func BuildDiagnosticsOutput(bag *diag.Bag, text string, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	var ix *source.LineIndex
	if opts.IncludePositions {
		ix = source.NewLineIndex(text)
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := 0; i < maxItems; i++ {
		d := items[i]
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			ID:       d.ID(),
			Message:  d.Message,
		}
		if d.HasSpan {
			loc := &LocationJSON{StartByte: d.Span.Start, EndByte: d.Span.End}
			if ix != nil {
				loc.StartLine, loc.StartCol = ix.Position(d.Span.Start)
				loc.EndLine, loc.EndCol = ix.Position(d.Span.End)
			}
			dj.Location = loc
		}
		diagnostics = append(diagnostics, dj)
	}

	return DiagnosticsOutput{Diagnostics: diagnostics, Count: bag.Len()}
}

// JSON writes the diagnostics as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, text string, opts JSONOpts) error {
	out := BuildDiagnosticsOutput(bag, text, opts)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
