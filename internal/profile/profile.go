package profile

import (
	"strconv"
	"strings"
)

// Stage is a shader pipeline stage, inferred from a profile string's
// two-letter prefix.
type Stage uint8

const (
	StageUnknown Stage = iota
	StageVertex
	StagePixel
	StageGeometry
	StageHull
	StageDomain
	StageCompute
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "Vertex"
	case StagePixel:
		return "Pixel"
	case StageGeometry:
		return "Geometry"
	case StageHull:
		return "Hull"
	case StageDomain:
		return "Domain"
	case StageCompute:
		return "Compute"
	}
	return "Unknown"
}

var stagePrefixes = map[string]Stage{
	"vs": StageVertex,
	"ps": StagePixel,
	"gs": StageGeometry,
	"hs": StageHull,
	"ds": StageDomain,
	"cs": StageCompute,
}

// StageFromProfile derives the stage from a profile like "vs_2_0".
func StageFromProfile(profile string) Stage {
	lower := strings.ToLower(profile)
	for prefix, stage := range stagePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return stage
		}
	}
	return StageUnknown
}

// Generation extracts the shader-generation major version from a
// profile string ("vs_2_0" -> 2, "ps_4_0_level_9_1" -> 4). Profiles
// without a parseable version report 0.
func Generation(profile string) int {
	parts := strings.Split(strings.ToLower(profile), "_")
	if len(parts) < 2 {
		return 0
	}
	major, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return major
}

// StageFromIdentifier infers a stage from an FX binding identifier like
// "VertexShader" or "SetPixelShader", by substring match after
// stripping the Set/Shader decoration.
func StageFromIdentifier(ident string) Stage {
	lower := strings.ToLower(ident)
	lower = strings.TrimPrefix(lower, "set")
	lower = strings.TrimSuffix(lower, "shader")
	switch {
	case strings.Contains(lower, "vertex"):
		return StageVertex
	case strings.Contains(lower, "pixel"), strings.Contains(lower, "fragment"):
		return StagePixel
	case strings.Contains(lower, "geometry"):
		return StageGeometry
	case strings.Contains(lower, "hull"):
		return StageHull
	case strings.Contains(lower, "domain"):
		return StageDomain
	case strings.Contains(lower, "compute"):
		return StageCompute
	}
	return StageUnknown
}

// SystemValueMinimumGeneration is the first shader generation in which
// SV_* system-value semantics are legal.
const SystemValueMinimumGeneration = 4
