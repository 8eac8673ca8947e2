package model

import (
	"sort"

	"fxsema/internal/diag"
	"fxsema/internal/fx"
	"fxsema/internal/sema"
	"fxsema/internal/symbols"
	"fxsema/internal/syntax"
)

// Build assembles the serialized model from the analysis artifacts.
// Everything here is a pure projection; no analysis happens anymore.
func Build(doc *syntax.Document, table *symbols.Table, res *sema.Result,
	entries []sema.EntryPoint, techniques []fx.Technique, bag *diag.Bag, profile string) *Model {

	m := Empty(profile)
	m.Syntax = buildSyntax(doc, table, res)
	m.Symbols = buildSymbols(table)
	m.Types = buildTypes(res)
	m.EntryPoints = buildEntries(entries)
	m.Techniques = buildTechniques(techniques)
	m.Diagnostics = buildDiagnostics(bag)
	return m
}

func buildSyntax(doc *syntax.Document, table *symbols.Table, res *sema.Result) Syntax {
	out := Syntax{RootID: uint32(doc.Root.ID)}
	doc.Walk(func(n *syntax.Node) bool {
		node := Node{
			ID:   uint32(n.ID),
			Kind: n.Kind.String(),
			Span: Span{Start: n.Span.Start, End: n.Span.End},
		}
		if n.Kind == syntax.NodeUnknown && n.KindTag != "" {
			// Forward-compatible: unknown parser tags pass through.
			node.Kind = n.KindTag
		}
		for i := range n.Children {
			node.Children = append(node.Children, ChildRef{
				Role:   n.Children[i].Role,
				NodeID: uint32(n.Children[i].Node.ID),
			})
		}
		if ref, ok := res.Refs[n.ID]; ok {
			node.Symbol = uint32(ref)
			if sym := table.Get(ref); sym != nil {
				node.SymbolKind = sym.Kind.String()
			}
		}
		if op, ok := res.Ops[n.ID]; ok {
			node.Operator = op
		}
		if callee, ok := res.Callees[n.ID]; ok {
			node.Callee = callee.Name
			node.CalleeKind = callee.Kind
		}
		out.Nodes = append(out.Nodes, node)
		return true
	})
	return out
}

func buildSymbols(table *symbols.Table) []Symbol {
	out := make([]Symbol, 0, table.Len())
	table.All(func(id symbols.SymbolID, sym *symbols.Symbol) {
		s := Symbol{
			ID:       uint32(id),
			Name:     sym.Name,
			Kind:     sym.Kind.String(),
			Type:     sym.TypeText,
			DeclNode: uint32(sym.Decl),
			Parent:   uint32(sym.Parent),
		}
		if sym.Semantic != nil {
			s.Semantic = &Semantic{Name: sym.Semantic.Name, Index: sym.Semantic.Index}
		}
		if sym.ReturnSemantic != nil {
			s.ReturnSemantic = &Semantic{Name: sym.ReturnSemantic.Name, Index: sym.ReturnSemantic.Index}
		}
		out = append(out, s)
	})
	return out
}

func buildTypes(res *sema.Result) []TypedNode {
	out := make([]TypedNode, 0, len(res.Types))
	for id, t := range res.Types {
		if !t.IsValid() {
			continue
		}
		out = append(out, TypedNode{NodeID: uint32(id), Type: t.String()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NodeID < out[j].NodeID })
	return out
}

func buildEntries(entries []sema.EntryPoint) []EntryPoint {
	out := make([]EntryPoint, 0, len(entries))
	for _, ep := range entries {
		out = append(out, EntryPoint{
			Name:    ep.Name,
			Symbol:  uint32(ep.Symbol),
			Stage:   ep.Stage.String(),
			Profile: ep.Profile,
		})
	}
	return out
}

func buildTechniques(techniques []fx.Technique) []Technique {
	out := make([]Technique, 0, len(techniques))
	for _, tech := range techniques {
		t := Technique{Name: tech.Name, Passes: []Pass{}}
		for _, pass := range tech.Passes {
			p := Pass{Name: pass.Name, Shaders: []ShaderBinding{}, States: []StateAssignment{}}
			for _, b := range pass.Bindings {
				p.Shaders = append(p.Shaders, ShaderBinding{
					Stage:   b.Stage.String(),
					Profile: b.Profile,
					Entry:   b.EntryName,
					Symbol:  uint32(b.EntrySymbol),
				})
			}
			for _, s := range pass.States {
				p.States = append(p.States, StateAssignment{Name: s.Name, Value: s.Value})
			}
			t.Passes = append(t.Passes, p)
		}
		out = append(out, t)
	}
	return out
}

func buildDiagnostics(bag *diag.Bag) []Diagnostic {
	out := make([]Diagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		dj := Diagnostic{
			Severity: d.Severity.String(),
			ID:       d.ID(),
			Message:  d.Message,
		}
		if d.HasSpan {
			dj.Span = &Span{Start: d.Span.Start, End: d.Span.End}
		}
		out = append(out, dj)
	}
	return out
}
