package fx

import (
	"fxsema/internal/profile"
	"fxsema/internal/source"
	"fxsema/internal/symbols"
)

// ShaderBinding binds one pipeline stage of a pass to an entry
// function compiled at a given profile.
type ShaderBinding struct {
	Stage       profile.Stage
	Profile     string
	EntryName   string
	EntrySymbol symbols.SymbolID
	Span        source.Span
}

// StateAssignment is one neutral render-state setting of a pass.
// Values are kept as raw text; interpreting them is a backend concern.
type StateAssignment struct {
	Name  string
	Value string
	Span  source.Span
}

// Pass is an ordered group of shader bindings and state assignments.
// A pass with no bindings is a legitimate fixed-function pass.
type Pass struct {
	Name     string
	Bindings []ShaderBinding
	States   []StateAssignment
	Span     source.Span
}

// Technique is a named ordered list of passes. These records are pure
// output; nothing mutates them after the builder returns.
type Technique struct {
	Name   string
	Passes []Pass
	Span   source.Span
}

// BindingFor returns the first binding for the given stage across all
// passes of all techniques, or nil.
func BindingFor(techniques []Technique, stage profile.Stage) *ShaderBinding {
	for t := range techniques {
		for p := range techniques[t].Passes {
			for b := range techniques[t].Passes[p].Bindings {
				binding := &techniques[t].Passes[p].Bindings[b]
				if binding.Stage == stage {
					return binding
				}
			}
		}
	}
	return nil
}
