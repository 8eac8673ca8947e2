package semtype

import "testing"

func TestParseStringRoundTrip(t *testing.T) {
	types := []SemType{
		Scalar(BaseBool),
		Scalar(BaseInt),
		Scalar(BaseUint),
		Scalar(BaseHalf),
		Scalar(BaseFloat),
		Scalar(BaseDouble),
		Void(),
		Vector(BaseFloat, 2),
		Vector(BaseFloat, 4),
		Vector(BaseInt, 3),
		Vector(BaseHalf, 2),
		Matrix(BaseFloat, 4, 4),
		Matrix(BaseFloat, 3, 4),
		Matrix(BaseDouble, 2, 2),
		Array(Vector(BaseFloat, 4), 16),
		Array(Scalar(BaseFloat), -1),
		Array(Matrix(BaseFloat, 4, 4), 2),
		Resource("Texture2D"),
		Resource("sampler2D"),
		Stream("TriangleStream", Vector(BaseFloat, 4)),
		Function(Vector(BaseFloat, 4), []SemType{Vector(BaseFloat, 4), Vector(BaseFloat, 2)}),
		Function(Void(), nil),
	}
	for _, want := range types {
		text := want.String()
		got := Parse(text)
		if !got.Equal(want) {
			t.Errorf("Parse(%q) = %v, want %v", text, got, want)
		}
		if got.String() != text {
			t.Errorf("String round trip broke: %q -> %q", text, got.String())
		}
	}
}

func TestParseAliases(t *testing.T) {
	tests := []struct {
		text string
		want SemType
	}{
		{"dword", Scalar(BaseUint)},
		{"dword2", Vector(BaseUint, 2)},
		{"matrix", Matrix(BaseFloat, 4, 4)},
		{"triangle float3", Vector(BaseFloat, 3)},
		{"lineadj float4", Vector(BaseFloat, 4)},
		{"  float4  ", Vector(BaseFloat, 4)},
	}
	for _, tt := range tests {
		if got := Parse(tt.text); !got.Equal(tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestParseNeverFails(t *testing.T) {
	if Parse("").IsValid() {
		t.Error("empty text must parse to the invalid type")
	}
	got := Parse("MyVertexStruct")
	if got.Kind != KindResource || got.Name != "MyVertexStruct" {
		t.Errorf("unknown name should become an opaque resource, got %v", got)
	}
	// Out-of-range widths do not silently become vectors.
	if Parse("float9").Kind == KindVector {
		t.Error("float9 must not parse as a vector")
	}
}

func TestParseResources(t *testing.T) {
	tests := []string{"sampler2D", "samplerCUBE", "Texture2DArray", "StructuredBuffer", "cbuffer"}
	for _, text := range tests {
		got := Parse(text)
		if got.Kind != KindResource {
			t.Errorf("Parse(%q).Kind = %v, want resource", text, got.Kind)
		}
	}
}

func TestComponentCount(t *testing.T) {
	tests := []struct {
		t    SemType
		want int
	}{
		{Scalar(BaseFloat), 1},
		{Vector(BaseFloat, 3), 3},
		{Matrix(BaseFloat, 4, 4), 16},
		{Matrix(BaseFloat, 3, 2), 6},
		{Resource("Texture2D"), 0},
		{Invalid(), 0},
	}
	for _, tt := range tests {
		if got := tt.t.ComponentCount(); got != tt.want {
			t.Errorf("ComponentCount(%s) = %d, want %d", tt.t, got, tt.want)
		}
	}
}
