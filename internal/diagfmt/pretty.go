package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"fxsema/internal/diag"
	"fxsema/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	caretColor   = color.New(color.FgGreen)
)

// Pretty formats diagnostics in a human-readable form. Each entry
// prints as
//
//	<line>:<col>: <severity> <ID>: <message>
//
// optionally followed by the source line with a caret underline
// covering the span.
func Pretty(w io.Writer, bag *diag.Bag, text string, opts PrettyOpts) {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	ix := source.NewLineIndex(text)

	for _, d := range items {
		sev := d.Severity.String()
		if opts.Color {
			sev = severityColor(d.Severity).Sprint(sev)
		}

		if d.HasSpan {
			line, col := ix.Position(d.Span.Start)
			fmt.Fprintf(w, "%d:%d: %s %s: %s\n", line, col, sev, d.ID(), d.Message)
			if opts.ShowSource {
				printContext(w, ix, d.Span, line, col, opts.Color)
			}
		} else {
			fmt.Fprintf(w, "%s %s: %s\n", sev, d.ID(), d.Message)
		}
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	}
	return infoColor
}

func printContext(w io.Writer, ix *source.LineIndex, span source.Span, line, col uint32, useColor bool) {
	text := ix.Line(line)
	if text == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", text)

	width := int(span.Len())
	// Clamp the underline to the first line of a multi-line span.
	if remain := len(text) - int(col-1); width > remain {
		width = remain
	}
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if useColor {
		marker = caretColor.Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", int(col-1)), marker)
}
