package fx

import (
	"strings"

	"fxsema/internal/diag"
	"fxsema/internal/profile"
)

// Validate applies the structural FX rules to the built technique
// model. Passes with zero bindings are fixed-function and never
// flagged.
func Validate(techniques []Technique, bag *diag.Bag) {
	seenTechniques := make(map[string]bool, len(techniques))
	for t := range techniques {
		tech := &techniques[t]
		key := strings.ToLower(tech.Name)
		if tech.Name != "" {
			if seenTechniques[key] {
				bag.Report(diag.FxDuplicateTechnique,
					"technique '"+tech.Name+"' is already defined", tech.Span)
			}
			seenTechniques[key] = true
		}

		seenPasses := make(map[string]bool, len(tech.Passes))
		for p := range tech.Passes {
			pass := &tech.Passes[p]
			if pass.Name != "" {
				passKey := strings.ToLower(pass.Name)
				if seenPasses[passKey] {
					bag.Report(diag.FxDuplicatePass,
						"pass '"+pass.Name+"' is already defined in technique '"+tech.Name+"'", pass.Span)
				}
				seenPasses[passKey] = true
			}
			validatePass(pass, bag)
		}
	}
}

func validatePass(pass *Pass, bag *diag.Bag) {
	if len(pass.Bindings) == 0 {
		return
	}

	var hasVertex, hasPixel bool
	for i := range pass.Bindings {
		binding := &pass.Bindings[i]
		switch binding.Stage {
		case profile.StageVertex:
			hasVertex = true
		case profile.StagePixel:
			hasPixel = true
		}
		if binding.Profile != "" {
			implied := profile.StageFromProfile(binding.Profile)
			if implied != profile.StageUnknown && implied != binding.Stage {
				bag.Report(diag.FxProfileStageMismatch,
					"profile '"+binding.Profile+"' targets the "+implied.String()+
						" stage but is bound as "+binding.Stage.String(), binding.Span)
			}
		}
	}

	if !hasVertex {
		bag.Report(diag.FxMissingVertexShader,
			"pass '"+pass.Name+"' binds shaders but has no vertex shader", pass.Span)
	}
	if !hasPixel {
		bag.Report(diag.FxMissingPixelShader,
			"pass '"+pass.Name+"' binds shaders but has no pixel shader", pass.Span)
	}
}
