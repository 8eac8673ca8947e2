package diagfmt

import (
	"strings"
	"testing"

	"fxsema/internal/diag"
	"fxsema/internal/source"
)

const sampleText = "float4 main() {\n  return qux;\n}\n"

func sampleBag() *diag.Bag {
	bag := diag.NewBag(uint32(len(sampleText)))
	// "qux" sits on line 2, columns 10-12.
	bag.Report(diag.TypeUnknownIdentifier, "unknown identifier 'qux'", source.Span{Start: 25, End: 28})
	bag.Report(diag.SemMissingEntryPoint, "entry point 'main' was not found")
	return bag
}

func TestPretty(t *testing.T) {
	var sb strings.Builder
	Pretty(&sb, sampleBag(), sampleText, PrettyOpts{ShowSource: true})
	out := sb.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("output lines = %d, want header+source+caret+spanless:\n%s", len(lines), out)
	}
	if lines[0] != "2:10: ERROR TYP2001: unknown identifier 'qux'" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "    return qux;" {
		t.Errorf("source line = %q", lines[1])
	}
	if lines[2] != "           ^~~" {
		t.Errorf("caret line = %q", lines[2])
	}
	if lines[3] != "ERROR SEM3001: entry point 'main' was not found" {
		t.Errorf("spanless line = %q", lines[3])
	}
}

func TestPrettyTruncation(t *testing.T) {
	var sb strings.Builder
	Pretty(&sb, sampleBag(), sampleText, PrettyOpts{Max: 1})
	out := strings.TrimRight(sb.String(), "\n")
	if strings.Count(out, "\n") != 0 || !strings.Contains(out, "TYP2001") {
		t.Errorf("truncated output = %q", out)
	}
}

func TestPrettyNoSourceContext(t *testing.T) {
	var sb strings.Builder
	Pretty(&sb, sampleBag(), sampleText, PrettyOpts{})
	if strings.Contains(sb.String(), "^") {
		t.Errorf("caret printed without ShowSource: %q", sb.String())
	}
}

func TestBuildDiagnosticsOutput(t *testing.T) {
	out := BuildDiagnosticsOutput(sampleBag(), sampleText, JSONOpts{IncludePositions: true})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("output = %+v", out)
	}

	first := out.Diagnostics[0]
	if first.ID != "TYP2001" || first.Severity != "ERROR" {
		t.Errorf("diagnostic = %+v", first)
	}
	loc := first.Location
	if loc == nil || loc.StartByte != 25 || loc.EndByte != 28 {
		t.Fatalf("location = %+v", loc)
	}
	if loc.StartLine != 2 || loc.StartCol != 10 || loc.EndLine != 2 || loc.EndCol != 13 {
		t.Errorf("positions = %+v", loc)
	}

	if out.Diagnostics[1].Location != nil {
		t.Error("spanless diagnostic must have no location")
	}
}

func TestBuildDiagnosticsOutputTruncatedCount(t *testing.T) {
	out := BuildDiagnosticsOutput(sampleBag(), sampleText, JSONOpts{Max: 1})
	if len(out.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", out.Diagnostics)
	}
	// Count reports the full bag so callers can tell output was cut.
	if out.Count != 2 {
		t.Errorf("count = %d, want 2", out.Count)
	}
	if out.Diagnostics[0].Location == nil || out.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("positions must be omitted by default: %+v", out.Diagnostics[0].Location)
	}
}
