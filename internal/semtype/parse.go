package semtype

import (
	"strconv"
	"strings"
)

var baseNames = map[string]Base{
	"void":   BaseVoid,
	"bool":   BaseBool,
	"int":    BaseInt,
	"uint":   BaseUint,
	"dword":  BaseUint,
	"half":   BaseHalf,
	"float":  BaseFloat,
	"double": BaseDouble,
}

// Geometry-shader input primitive prefixes. They qualify a parameter
// type and are stripped before the remainder is parsed.
var geometryPrefixes = []string{
	"triangleadj",
	"lineadj",
	"triangle",
	"point",
	"line",
}

// Parse recognizes the canonical textual type form. It never fails:
// anything unrecognized becomes an opaque Resource so that inference
// keeps flowing over loosely typed legacy shaders. Only an empty
// string yields an invalid type.
func Parse(text string) SemType {
	text = strings.TrimSpace(text)
	if text == "" {
		return Invalid()
	}

	// Stream wrappers: PointStream<float4>, TriangleStream<Vertex>.
	if open := strings.IndexByte(text, '<'); open > 0 && strings.HasSuffix(text, ">") {
		name := strings.TrimSpace(text[:open])
		elem := Parse(text[open+1 : len(text)-1])
		return Stream(name, elem)
	}

	// Geometry input prefixes qualify the element type.
	for _, prefix := range geometryPrefixes {
		if rest, ok := strings.CutPrefix(text, prefix+" "); ok {
			return Parse(rest)
		}
	}

	// Function signatures: Ret(Arg,...).
	if open := strings.IndexByte(text, '('); open > 0 && strings.HasSuffix(text, ")") {
		ret := Parse(text[:open])
		inner := text[open+1 : len(text)-1]
		var params []SemType
		for _, arg := range splitTopLevel(inner, ',') {
			arg = strings.TrimSpace(arg)
			if arg == "" {
				continue
			}
			params = append(params, Parse(arg))
		}
		return Function(ret, params)
	}

	// Array suffixes: Base[N] and Base[].
	if strings.HasSuffix(text, "]") {
		if open := strings.LastIndexByte(text, '['); open > 0 {
			elem := Parse(text[:open])
			inner := strings.TrimSpace(text[open+1 : len(text)-1])
			count := -1
			if inner != "" {
				if n, err := strconv.Atoi(inner); err == nil {
					count = n
				}
			}
			return Array(elem, count)
		}
	}

	// Matrix shapes: baseRxC.
	if t, ok := parseMatrix(text); ok {
		return t
	}

	// Vector shapes: baseN.
	if t, ok := parseVector(text); ok {
		return t
	}

	// Opaque resource handles by well-known name prefixes.
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "sampler") ||
		strings.HasPrefix(lower, "texture") ||
		strings.Contains(lower, "buffer") {
		return Resource(text)
	}

	// Legacy alias.
	if lower == "matrix" {
		return Matrix(BaseFloat, 4, 4)
	}

	if b, ok := baseNames[lower]; ok {
		return Scalar(b)
	}

	return Resource(text)
}

func parseMatrix(text string) (SemType, bool) {
	for name, base := range baseNames {
		rest, ok := strings.CutPrefix(text, name)
		if !ok || len(rest) != 3 || rest[1] != 'x' {
			continue
		}
		rows := int(rest[0] - '0')
		cols := int(rest[2] - '0')
		if rows < 1 || rows > 4 || cols < 1 || cols > 4 {
			continue
		}
		return Matrix(base, uint8(rows), uint8(cols)), true
	}
	return Invalid(), false
}

func parseVector(text string) (SemType, bool) {
	for name, base := range baseNames {
		rest, ok := strings.CutPrefix(text, name)
		if !ok || len(rest) != 1 {
			continue
		}
		width := int(rest[0] - '0')
		if width < 1 || width > 4 {
			continue
		}
		return Vector(base, uint8(width)), true
	}
	return Invalid(), false
}

// splitTopLevel splits on sep at nesting depth zero with respect to
// (), [] and <>.
func splitTopLevel(text string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '[', '<':
			depth++
		case ')', ']', '>':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, text[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, text[last:])
	return parts
}
