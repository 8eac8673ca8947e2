package diag

import "testing"

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{StructDuplicateFunction, "STR1001"},
		{TypeUnknownIdentifier, "TYP2001"},
		{TypeUnknownCallee, "TYP2006"},
		{SemMissingEntryPoint, "SEM3001"},
		{SemInvalidReturnSemantic, "SEM3005"},
		{FxTechniqueMissingName, "FX5001"},
		{FxProfileStageMismatch, "FX5006"},
		{IOLoadFileError, "IO9001"},
		{UpstreamCode, "E0001"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCodeTitleKnown(t *testing.T) {
	codes := []Code{
		UpstreamCode,
		StructDuplicateFunction,
		TypeUnknownIdentifier, TypeBinaryMismatch, TypeIntrinsicMismatch,
		TypeConstructorMismatch, TypeCallMismatch, TypeUnknownCallee,
		SemMissingEntryPoint, SemSystemValueTooEarly, SemDuplicateSemantic,
		SemMissingSemantic, SemInvalidReturnSemantic,
		FxTechniqueMissingName, FxDuplicateTechnique, FxDuplicatePass,
		FxMissingVertexShader, FxMissingPixelShader, FxProfileStageMismatch,
		IOLoadFileError,
	}
	for _, c := range codes {
		if c.Title() == "Unknown diagnostic" {
			t.Errorf("code %s has no description", c.ID())
		}
	}
	if Code(4242).Title() != "Unknown diagnostic" {
		t.Error("unregistered code should report an unknown title")
	}
}

func TestDefaultSeverity(t *testing.T) {
	if SemSystemValueTooEarly.DefaultSeverity() != SevWarning {
		t.Error("system-value-too-early must default to warning")
	}
	if FxMissingPixelShader.DefaultSeverity() != SevWarning {
		t.Error("missing pixel shader must default to warning")
	}
	if TypeBinaryMismatch.DefaultSeverity() != SevError {
		t.Error("type mismatch must default to error")
	}
	if FxMissingVertexShader.DefaultSeverity() != SevError {
		t.Error("missing vertex shader must default to error")
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		label string
		want  Severity
	}{
		{"info", SevInfo},
		{"Warning", SevWarning},
		{"error", SevError},
		{"fatal", SevError},
		{"", SevError},
	}
	for _, tt := range tests {
		if got := ParseSeverity(tt.label); got != tt.want {
			t.Errorf("ParseSeverity(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}
