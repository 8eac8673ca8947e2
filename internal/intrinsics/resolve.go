package intrinsics

import (
	"strings"

	"fxsema/internal/semtype"
)

// Outcome classifies an intrinsic resolution attempt.
type Outcome uint8

const (
	// OutcomeUnknown means the name is not an intrinsic at all.
	OutcomeUnknown Outcome = iota
	// OutcomeMatched means a signature matched and a type was produced.
	OutcomeMatched
	// OutcomeMismatch means the name is a known intrinsic, every
	// argument was resolved, and still nothing matched.
	OutcomeMismatch
	// OutcomeDeclined means resolution was abandoned because at least
	// one argument is unresolved; no diagnostic should follow, the
	// cause was already reported upstream.
	OutcomeDeclined
	// OutcomeExempt marks FX binding helper syntax: typed void and
	// exempt from arity/type checking.
	OutcomeExempt
)

// FX binding helper call forms that appear inside technique passes.
// They are binding metadata, not executable calls.
var bindingHelpers = map[string]bool{
	"compile":             true,
	"compileshader":       true,
	"setvertexshader":     true,
	"setpixelshader":      true,
	"setgeometryshader":   true,
	"sethullshader":       true,
	"setdomainshader":     true,
	"setcomputeshader":    true,
	"setblendstate":       true,
	"setdepthstencilstate": true,
	"setrasterizerstate":  true,
}

// Sampling intrinsics: first argument must be an opaque sampler or
// texture resource, result is float4.
var samplingNames = map[string]bool{
	"tex1d": true, "tex2d": true, "tex3d": true, "texcube": true,
	"tex1dproj": true, "tex2dproj": true, "tex3dproj": true, "texcubeproj": true,
	"tex1dbias": true, "tex2dbias": true, "tex3dbias": true, "texcubebias": true,
	"tex1dlod": true, "tex2dlod": true, "tex3dlod": true, "texcubelod": true,
	"tex1dgrad": true, "tex2dgrad": true, "tex3dgrad": true, "texcubegrad": true,
	"sample": true, "samplelevel": true, "samplegrad": true, "samplebias": true,
	"samplecmp": true, "samplecmplevelzero": true, "load": true, "gather": true,
}

var dynamicNames = map[string]bool{
	"mul": true, "dot": true, "normalize": true, "saturate": true,
	"pow": true, "length": true, "transpose": true, "determinant": true,
}

// Normalize canonicalizes a callee name: case folded, and method-style
// calls like "tex.Sample" reduced to their last segment.
func Normalize(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// IsIntrinsic reports whether name resolves to any built-in.
func IsIntrinsic(name string) bool {
	n := Normalize(name)
	if dynamicNames[n] || samplingNames[n] || bindingHelpers[n] {
		return true
	}
	_, ok := catalog[n]
	return ok
}

// IsBindingHelper reports whether name is technique binding syntax.
func IsBindingHelper(name string) bool {
	return bindingHelpers[Normalize(name)]
}

// Resolve attempts intrinsic overload resolution for a call. Dynamic
// shape-polymorphic resolvers are tried first, then the static catalog.
func Resolve(name string, args []semtype.SemType) (semtype.SemType, Outcome) {
	n := Normalize(name)

	if bindingHelpers[n] {
		return semtype.Void(), OutcomeExempt
	}

	if dynamicNames[n] {
		return resolveDynamic(n, args)
	}
	if samplingNames[n] {
		return resolveSampling(args)
	}

	if _, known := catalog[n]; !known {
		return semtype.Invalid(), OutcomeUnknown
	}
	if ret, ok := lookupStatic(n, args); ok {
		return ret, OutcomeMatched
	}
	if anyUnresolved(args) {
		return semtype.Invalid(), OutcomeDeclined
	}
	return semtype.Invalid(), OutcomeMismatch
}

func anyUnresolved(args []semtype.SemType) bool {
	for _, a := range args {
		if !a.IsValid() {
			return true
		}
	}
	return false
}

func resolveDynamic(name string, args []semtype.SemType) (semtype.SemType, Outcome) {
	if anyUnresolved(args) {
		return semtype.Invalid(), OutcomeDeclined
	}
	switch name {
	case "mul":
		return resolveMul(args)
	case "dot":
		if len(args) == 2 && args[0].Numeric() && args[1].Numeric() {
			base := wider(args[0].Base, args[1].Base)
			return semtype.Scalar(base), OutcomeMatched
		}
	case "length":
		if len(args) == 1 && args[0].Numeric() {
			return semtype.Scalar(floatAtLeast(args[0].Base)), OutcomeMatched
		}
	case "determinant":
		if len(args) == 1 && args[0].Kind == semtype.KindMatrix {
			return semtype.Scalar(args[0].Base), OutcomeMatched
		}
	case "normalize", "saturate":
		if len(args) == 1 && args[0].Numeric() {
			return args[0], OutcomeMatched
		}
	case "transpose":
		if len(args) == 1 && args[0].Kind == semtype.KindMatrix {
			return semtype.Matrix(args[0].Base, args[0].Cols, args[0].Rows), OutcomeMatched
		}
	case "pow":
		if len(args) == 2 && args[0].Numeric() && args[1].Numeric() {
			return args[0], OutcomeMatched
		}
	}
	return semtype.Invalid(), OutcomeMismatch
}

// resolveMul handles the matrix multiply family keyed on inner
// dimension agreement, with a permissive width-mismatch fallback that
// tolerates the truncate/pad idioms of legacy shaders.
func resolveMul(args []semtype.SemType) (semtype.SemType, Outcome) {
	if len(args) != 2 {
		return semtype.Invalid(), OutcomeMismatch
	}
	l, r := args[0], args[1]
	base := wider(l.Base, r.Base)

	switch {
	case l.Kind == semtype.KindMatrix && r.Kind == semtype.KindVector:
		// Inner dimensions l.Cols and r.Width should agree; tolerate
		// mismatch and produce the row count either way.
		return semtype.Vector(base, l.Rows), OutcomeMatched
	case l.Kind == semtype.KindVector && r.Kind == semtype.KindMatrix:
		return semtype.Vector(base, r.Cols), OutcomeMatched
	case l.Kind == semtype.KindMatrix && r.Kind == semtype.KindMatrix:
		return semtype.Matrix(base, l.Rows, r.Cols), OutcomeMatched
	}
	if l.Numeric() && r.Numeric() {
		if t, ok := semtype.Permissive.PromoteBinary(l, r); ok {
			return t, OutcomeMatched
		}
	}
	return semtype.Invalid(), OutcomeMismatch
}

func resolveSampling(args []semtype.SemType) (semtype.SemType, Outcome) {
	if len(args) == 0 {
		return semtype.Invalid(), OutcomeMismatch
	}
	first := args[0]
	if !first.IsValid() {
		return semtype.Invalid(), OutcomeDeclined
	}
	if first.Kind == semtype.KindResource {
		lower := strings.ToLower(first.Name)
		if strings.Contains(lower, "sampler") || strings.Contains(lower, "texture") {
			return semtype.Vector(semtype.BaseFloat, 4), OutcomeMatched
		}
	}
	if anyUnresolved(args[1:]) {
		return semtype.Invalid(), OutcomeDeclined
	}
	return semtype.Invalid(), OutcomeMismatch
}

func wider(a, b semtype.Base) semtype.Base {
	if semtype.Rank(b) > semtype.Rank(a) {
		return b
	}
	return a
}

func floatAtLeast(b semtype.Base) semtype.Base {
	if semtype.Rank(b) < semtype.Rank(semtype.BaseFloat) {
		return semtype.BaseFloat
	}
	return b
}
