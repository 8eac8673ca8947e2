package sema

import (
	"fxsema/internal/diag"
	"fxsema/internal/fx"
	"fxsema/internal/profile"
	"fxsema/internal/semtype"
	"fxsema/internal/symbols"
)

// EntryPoint is the resolved active entry function of a run.
type EntryPoint struct {
	Name    string
	Symbol  symbols.SymbolID
	Stage   profile.Stage
	Profile string
}

// ResolveEntry picks the active entry point. A technique binding for
// the current profile's stage supersedes the CLI-supplied default; a
// missing entry degrades to the first declared function instead of
// failing the run.
func ResolveEntry(table *symbols.Table, techniques []fx.Technique, profileStr, entryName string, bag *diag.Bag) []EntryPoint {
	stage := profile.StageFromProfile(profileStr)

	if binding := fx.BindingFor(techniques, stage); binding != nil && binding.EntryName != "" {
		ep := EntryPoint{
			Name:    binding.EntryName,
			Symbol:  binding.EntrySymbol,
			Stage:   stage,
			Profile: profileStr,
		}
		if binding.Profile != "" {
			ep.Profile = binding.Profile
		}
		if !ep.Symbol.IsValid() {
			ep.Symbol = synthesizeEntry(table, binding.EntryName)
		}
		return []EntryPoint{ep}
	}

	if entryName == "" {
		entryName = "main"
	}
	if id := table.FindFunction(entryName); id.IsValid() {
		return []EntryPoint{{
			Name:    table.Get(id).Name,
			Symbol:  id,
			Stage:   stage,
			Profile: profileStr,
		}}
	}

	bag.Report(diag.SemMissingEntryPoint, "entry point '"+entryName+"' was not found")
	if first := table.FirstFunction(); first.IsValid() {
		return []EntryPoint{{
			Name:    table.Get(first).Name,
			Symbol:  first,
			Stage:   stage,
			Profile: profileStr,
		}}
	}
	return nil
}

// synthesizeEntry creates a placeholder Function symbol so consumers
// always receive a valid symbol id for a bound entry.
func synthesizeEntry(table *symbols.Table, name string) symbols.SymbolID {
	fnType := semtype.Function(semtype.Void(), nil)
	return table.New(&symbols.Symbol{
		Name:     name,
		Kind:     symbols.SymbolFunction,
		TypeText: fnType.String(),
		Type:     fnType,
		Flags:    symbols.FlagPlaceholder,
	})
}
