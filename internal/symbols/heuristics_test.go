package symbols

import (
	"testing"

	"fxsema/internal/source"
	"fxsema/internal/syntax"
)

func toks(words ...string) []syntax.Token {
	out := make([]syntax.Token, len(words))
	pos := uint32(0)
	for i, w := range words {
		out[i] = syntax.Token{
			Span: source.Span{Start: pos, End: pos + uint32(len(w))},
			Text: w,
		}
		pos += uint32(len(w)) + 1
	}
	return out
}

func TestExtractNameType(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []syntax.Token
		wantName string
		wantType string
		wantOK   bool
	}{
		{"plain", toks("float4", "color"), "color", "float4", true},
		{"qualified", toks("uniform", "const", "float4x4", "world"), "world", "float4x4", true},
		{"stops at semantic", toks("float4", "pos", ":", "POSITION"), "pos", "float4", true},
		{"stops at initializer", toks("float", "t", "=", "0"), "t", "float", true},
		{"array suffix", toks("float4", "bones", "[", "16", "]"), "bones", "float4[16]", true},
		{"register dropped", toks("float4x4", "vp", ":", "register", "(", "c0", ")"), "vp", "float4x4", true},
		{"too few words", toks("float4"), "", "", false},
		{"empty", nil, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, typeText, ok := ExtractNameType(tt.tokens)
			if ok != tt.wantOK || name != tt.wantName || typeText != tt.wantType {
				t.Fatalf("ExtractNameType = (%q, %q, %v), want (%q, %q, %v)",
					name, typeText, ok, tt.wantName, tt.wantType, tt.wantOK)
			}
		})
	}
}

func TestArraySuffix(t *testing.T) {
	if got := ArraySuffix(toks("float4", "bones", "[", "16", "]"), "bones"); got != "[16]" {
		t.Errorf("ArraySuffix = %q, want [16]", got)
	}
	if got := ArraySuffix(toks("float4", "color"), "color"); got != "" {
		t.Errorf("ArraySuffix = %q, want empty", got)
	}
	if got := ArraySuffix(toks("float4", "color"), "missing"); got != "" {
		t.Errorf("ArraySuffix on absent name = %q, want empty", got)
	}
}

func TestIsModifier(t *testing.T) {
	for _, w := range []string{"uniform", "Const", "INOUT", "row_major"} {
		if !IsModifier(w) {
			t.Errorf("IsModifier(%q) = false, want true", w)
		}
	}
	for _, w := range []string{"float4", "pos", ""} {
		if IsModifier(w) {
			t.Errorf("IsModifier(%q) = true, want false", w)
		}
	}
}
