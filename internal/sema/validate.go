package sema

import (
	"strconv"
	"strings"

	"fxsema/internal/diag"
	"fxsema/internal/profile"
	"fxsema/internal/semtype"
	"fxsema/internal/source"
	"fxsema/internal/symbols"
	"fxsema/internal/syntax"
)

// ValidateEntry applies the stage- and generation-aware semantic rules
// to the resolved entry point. It is a pure function of the entry
// symbol, its parameters, the stage and the shader generation; all
// findings go to bag.
func ValidateEntry(doc *syntax.Document, table *symbols.Table, ep EntryPoint, bag *diag.Bag) {
	sym := table.Get(ep.Symbol)
	if sym == nil || sym.Flags&symbols.FlagPlaceholder != 0 {
		return
	}
	generation := profile.Generation(ep.Profile)
	structs := structNameSet(table)

	seen := make(map[string]bool)
	for _, paramID := range table.ParametersOf(ep.Symbol) {
		param := table.Get(paramID)
		span := declSpan(doc, param.Decl)

		if param.Semantic == nil {
			if param.Flags&symbols.FlagUniform != 0 {
				continue
			}
			if isStructTyped(param.Type, structs) {
				// Member-level semantics cover struct parameters.
				continue
			}
			bag.Report(diag.SemMissingSemantic,
				"parameter '"+param.Name+"' of entry point '"+sym.Name+"' has no semantic", span)
			continue
		}

		sem := *param.Semantic
		if sem.IsSystemValue() && generation < profile.SystemValueMinimumGeneration {
			bag.Report(diag.SemSystemValueTooEarly,
				"semantic '"+sem.String()+"' requires shader model 4, profile is '"+ep.Profile+"'", span)
		}
		key := sem.Name + "#" + strconv.Itoa(sem.Index)
		relaxed := param.Flags&(symbols.FlagUniform|symbols.FlagOut|symbols.FlagInOut) != 0
		if seen[key] && !relaxed {
			bag.Report(diag.SemDuplicateSemantic,
				"semantic '"+sem.String()+"' is bound to more than one parameter", span)
		}
		seen[key] = true
	}

	validateReturn(doc, sym, ep, generation, structs, bag)
}

func validateReturn(doc *syntax.Document, sym *symbols.Symbol, ep EntryPoint, generation int, structs map[string]bool, bag *diag.Bag) {
	var ret semtype.SemType
	if sym.Type.Return != nil {
		ret = *sym.Type.Return
	}
	span := declSpan(doc, sym.Decl)

	if sym.ReturnSemantic == nil {
		if ret.IsVoid() || !ret.IsValid() || isStructTyped(ret, structs) {
			return
		}
		bag.Report(diag.SemMissingSemantic,
			"entry point '"+sym.Name+"' returns a value but has no semantic", span)
		return
	}

	sem := *sym.ReturnSemantic
	if sem.IsSystemValue() && generation < profile.SystemValueMinimumGeneration {
		bag.Report(diag.SemSystemValueTooEarly,
			"semantic '"+sem.String()+"' requires shader model 4, profile is '"+ep.Profile+"'", span)
	}

	var allowed []string
	switch ep.Stage {
	case profile.StageVertex:
		allowed = []string{"POSITION", "SV_POSITION"}
	case profile.StagePixel:
		if generation >= profile.SystemValueMinimumGeneration {
			allowed = []string{"SV_TARGET", "SV_DEPTH", "SV_COVERAGE"}
		} else {
			allowed = []string{"COLOR", "DEPTH", "SV_TARGET", "SV_DEPTH", "SV_COVERAGE"}
		}
	default:
		return
	}
	for _, name := range allowed {
		if sem.Name == name {
			return
		}
	}
	bag.Report(diag.SemInvalidReturnSemantic,
		"semantic '"+sem.String()+"' is not valid for a "+ep.Stage.String()+" shader return value", span)
}

// isStructTyped treats an opaque type whose name matches a declared
// struct as struct-typed.
func isStructTyped(t semtype.SemType, structs map[string]bool) bool {
	return t.Kind == semtype.KindResource && structs[strings.ToLower(t.Name)]
}

func structNameSet(table *symbols.Table) map[string]bool {
	structs := make(map[string]bool)
	table.All(func(_ symbols.SymbolID, sym *symbols.Symbol) {
		if sym.Kind == symbols.SymbolStruct {
			structs[strings.ToLower(sym.Name)] = true
		}
	})
	return structs
}

func declSpan(doc *syntax.Document, id syntax.NodeID) source.Span {
	if n := doc.Node(id); n != nil {
		return n.Span
	}
	return source.Span{}
}
