package intrinsics

import (
	"fxsema/internal/semtype"
)

// Signature is one fixed-shape overload of a built-in function.
type Signature struct {
	Params []semtype.SemType
	Return semtype.SemType
}

// catalog maps lowercase intrinsic names to their overloads. Shape
// polymorphism is expanded eagerly: one entry per scalar/vector width.
var catalog = map[string][]Signature{}

func addOverload(name string, params []semtype.SemType, ret semtype.SemType) {
	catalog[name] = append(catalog[name], Signature{Params: params, Return: ret})
}

func numericShapes(base semtype.Base) []semtype.SemType {
	return []semtype.SemType{
		semtype.Scalar(base),
		semtype.Vector(base, 2),
		semtype.Vector(base, 3),
		semtype.Vector(base, 4),
	}
}

func init() {
	floatShapes := numericShapes(semtype.BaseFloat)
	intShapes := numericShapes(semtype.BaseInt)

	// Componentwise unary: trig, exponential, rounding, gradients.
	unary := []string{
		"sin", "cos", "tan", "asin", "acos", "atan",
		"sinh", "cosh", "tanh",
		"exp", "exp2", "log", "log2", "log10",
		"sqrt", "rsqrt", "abs", "floor", "ceil", "frac", "round",
		"trunc", "sign", "ddx", "ddy", "fwidth",
	}
	for _, name := range unary {
		for _, shape := range floatShapes {
			addOverload(name, []semtype.SemType{shape}, shape)
		}
	}
	for _, shape := range intShapes {
		addOverload("abs", []semtype.SemType{shape}, shape)
		addOverload("sign", []semtype.SemType{shape}, shape)
	}

	// Componentwise binary.
	binary := []string{"atan2", "fmod", "step", "min", "max", "ldexp"}
	for _, name := range binary {
		for _, shape := range floatShapes {
			addOverload(name, []semtype.SemType{shape, shape}, shape)
		}
	}
	for _, shape := range intShapes {
		addOverload("min", []semtype.SemType{shape, shape}, shape)
		addOverload("max", []semtype.SemType{shape, shape}, shape)
	}

	// Componentwise ternary.
	ternary := []string{"clamp", "lerp", "smoothstep", "mad"}
	for _, name := range ternary {
		for _, shape := range floatShapes {
			addOverload(name, []semtype.SemType{shape, shape, shape}, shape)
		}
	}
	for _, shape := range intShapes {
		addOverload("clamp", []semtype.SemType{shape, shape, shape}, shape)
	}

	// Vector geometry.
	float3 := semtype.Vector(semtype.BaseFloat, 3)
	scalarFloat := semtype.Scalar(semtype.BaseFloat)
	addOverload("cross", []semtype.SemType{float3, float3}, float3)
	for _, shape := range floatShapes[1:] {
		addOverload("distance", []semtype.SemType{shape, shape}, scalarFloat)
		addOverload("reflect", []semtype.SemType{shape, shape}, shape)
		addOverload("refract", []semtype.SemType{shape, shape, scalarFloat}, shape)
	}

	// Boolean reductions.
	boolScalar := semtype.Scalar(semtype.BaseBool)
	for _, shape := range floatShapes {
		addOverload("any", []semtype.SemType{shape}, boolScalar)
		addOverload("all", []semtype.SemType{shape}, boolScalar)
		addOverload("isnan", []semtype.SemType{shape}, boolScalar)
		addOverload("isinf", []semtype.SemType{shape}, boolScalar)
	}
}

// lookupStatic matches args against the catalog. Width-preserving
// matches are tried first so a float3 argument binds the float3
// overload, not an earlier narrower one; the second pass relaxes to
// permissive promotion for the legacy width-mismatch idioms.
// Unresolved arguments act as wildcards that adopt the candidate
// parameter type rather than blocking the match.
func lookupStatic(name string, args []semtype.SemType) (semtype.SemType, bool) {
	strict := semtype.Policy{StrictWidths: true}
	if ret, ok := matchOverloads(name, args, strict); ok {
		return ret, true
	}
	return matchOverloads(name, args, semtype.Permissive)
}

func matchOverloads(name string, args []semtype.SemType, policy semtype.Policy) (semtype.SemType, bool) {
	for _, sig := range catalog[name] {
		if len(sig.Params) != len(args) {
			continue
		}
		matched := true
		for i, arg := range args {
			if !arg.IsValid() {
				continue // wildcard
			}
			if !policy.CanPromote(arg, sig.Params[i]) {
				matched = false
				break
			}
		}
		if matched {
			return sig.Return, true
		}
	}
	return semtype.Invalid(), false
}
