package fx

import (
	"strings"

	"fxsema/internal/diag"
	"fxsema/internal/profile"
	"fxsema/internal/semtype"
	"fxsema/internal/symbols"
	"fxsema/internal/syntax"
)

// Build finds technique declarations anywhere in the tree and scans
// their pass bodies at the token level into neutral binding and
// render-state records. Referenced entry points and state objects that
// were never declared get placeholder symbols so downstream consumers
// always hold a valid symbol id.
func Build(doc *syntax.Document, table *symbols.Table, bag *diag.Bag) []Technique {
	b := &builder{doc: doc, table: table, bag: bag}
	var techniques []Technique
	for _, node := range doc.FindAll(syntax.NodeTechniqueDecl) {
		techniques = append(techniques, b.technique(node))
	}
	Validate(techniques, bag)
	return techniques
}

type builder struct {
	doc   *syntax.Document
	table *symbols.Table
	bag   *diag.Bag
}

func (b *builder) technique(node *syntax.Node) Technique {
	tech := Technique{Span: node.Span}
	tech.Name = b.declaredName(node, "technique")
	if tech.Name == "" {
		b.bag.Report(diag.FxTechniqueMissingName, "technique has no name", node.Span)
	}
	var collect func(n *syntax.Node)
	collect = func(n *syntax.Node) {
		for i := range n.Children {
			child := n.Children[i].Node
			if child == nil {
				continue
			}
			if child.Kind == syntax.NodePassDecl {
				tech.Passes = append(tech.Passes, b.pass(child))
				continue
			}
			collect(child)
		}
	}
	collect(node)
	return tech
}

func (b *builder) pass(node *syntax.Node) Pass {
	p := Pass{Span: node.Span}
	p.Name = b.declaredName(node, "pass")

	tokens := b.doc.TokensIn(node.Span)
	start := 0
	for start < len(tokens) && tokens[start].Text != "{" {
		start++
	}
	stmt := make([]syntax.Token, 0, 8)
	for i := start + 1; i < len(tokens); i++ {
		switch tokens[i].Text {
		case ";":
			b.statement(&p, stmt)
			stmt = stmt[:0]
		case "{", "}":
			// Brace tokens are ignored by the statement scanner.
		default:
			stmt = append(stmt, tokens[i])
		}
	}
	b.statement(&p, stmt)
	return p
}

// statement classifies one ';'-terminated pass statement as either a
// shader binding or a neutral state assignment.
func (b *builder) statement(p *Pass, stmt []syntax.Token) {
	if len(stmt) == 0 {
		return
	}
	span := stmt[0].Span
	for _, t := range stmt[1:] {
		span = span.Cover(t.Span)
	}

	// Legacy form: VertexShader = compile vs_2_0 main(...);
	if len(stmt) >= 2 && stmt[1].Text == "=" {
		if idx := indexOfFold(stmt, "compile"); idx >= 0 && idx+2 < len(stmt) {
			p.Bindings = append(p.Bindings, ShaderBinding{
				Stage:       profile.StageFromIdentifier(stmt[0].Text),
				Profile:     stmt[idx+1].Text,
				EntryName:   stmt[idx+2].Text,
				EntrySymbol: b.entrySymbol(stmt[idx+2].Text),
				Span:        span,
			})
			return
		}
		p.States = append(p.States, StateAssignment{
			Name:  stmt[0].Text,
			Value: joinTokens(stmt[2:]),
			Span:  span,
		})
		b.stateObjectRef(stmt[2:])
		return
	}

	// SM4+ form: SetVertexShader(CompileShader(vs_4_0, main()));
	first := stmt[0].Text
	if stage := profile.StageFromIdentifier(first); stage != profile.StageUnknown &&
		strings.HasPrefix(strings.ToLower(first), "set") {
		if idx := indexOfFold(stmt, "CompileShader"); idx >= 0 {
			prof, entry := compileShaderArgs(stmt[idx:])
			p.Bindings = append(p.Bindings, ShaderBinding{
				Stage:       stage,
				Profile:     prof,
				EntryName:   entry,
				EntrySymbol: b.entrySymbol(entry),
				Span:        span,
			})
			return
		}
	}

	// SetBlendState(myState, ...) and friends.
	if strings.HasPrefix(strings.ToLower(first), "set") && len(stmt) >= 3 && stmt[1].Text == "(" {
		p.States = append(p.States, StateAssignment{
			Name:  strings.TrimPrefix(first, "Set"),
			Value: joinTokens(innerArgs(stmt[1:])),
			Span:  span,
		})
		b.stateObjectRef(stmt[2:])
		return
	}

	p.States = append(p.States, StateAssignment{
		Name:  first,
		Value: joinTokens(stmt[1:]),
		Span:  span,
	})
}

// compileShaderArgs extracts (profile, entry) from a
// CompileShader(profile, entry(...)) token run.
func compileShaderArgs(stmt []syntax.Token) (prof, entry string) {
	// stmt[0] is CompileShader; expect ( profile , entry ...
	if len(stmt) >= 4 && stmt[1].Text == "(" {
		prof = stmt[2].Text
		for i := 3; i < len(stmt)-1; i++ {
			if stmt[i].Text == "," {
				entry = stmt[i+1].Text
				break
			}
		}
	}
	return prof, entry
}

// entrySymbol resolves a bound entry name against declared functions,
// synthesizing a placeholder when the shader was never declared.
func (b *builder) entrySymbol(name string) symbols.SymbolID {
	if name == "" {
		return symbols.NoSymbolID
	}
	if id := b.table.FindFunction(name); id.IsValid() {
		return id
	}
	fnType := semtype.Function(semtype.Void(), nil)
	return b.table.New(&symbols.Symbol{
		Name:     name,
		Kind:     symbols.SymbolFunction,
		TypeText: fnType.String(),
		Type:     fnType,
		Flags:    symbols.FlagPlaceholder,
	})
}

// stateObjectRef synthesizes a StateObject placeholder for a
// referenced but undeclared state object identifier.
func (b *builder) stateObjectRef(tokens []syntax.Token) {
	if len(tokens) == 0 {
		return
	}
	name := tokens[0].Text
	if name == "(" && len(tokens) > 1 {
		name = tokens[1].Text
	}
	if !isIdentifier(name) || strings.EqualFold(name, "NULL") ||
		strings.EqualFold(name, "true") || strings.EqualFold(name, "false") {
		return
	}
	if b.table.FindByName(name).IsValid() {
		return
	}
	b.table.New(&symbols.Symbol{
		Name:  name,
		Kind:  symbols.SymbolStateObject,
		Flags: symbols.FlagPlaceholder,
	})
}

// declaredName pulls the declared name from the labeled child, falling
// back to the token after the introducing keyword.
func (b *builder) declaredName(node *syntax.Node, keyword string) string {
	if c := node.Child("name"); c != nil {
		return strings.TrimSpace(b.doc.Text(c.Span))
	}
	tokens := b.doc.TokensIn(node.Span)
	for i := 0; i+1 < len(tokens); i++ {
		if strings.HasPrefix(strings.ToLower(tokens[i].Text), keyword) {
			next := tokens[i+1].Text
			if isIdentifier(next) {
				return next
			}
			return ""
		}
	}
	return ""
}

func indexOfFold(tokens []syntax.Token, text string) int {
	for i := range tokens {
		if strings.EqualFold(tokens[i].Text, text) {
			return i
		}
	}
	return -1
}

// innerArgs strips one level of surrounding parentheses.
func innerArgs(tokens []syntax.Token) []syntax.Token {
	if len(tokens) >= 2 && tokens[0].Text == "(" && tokens[len(tokens)-1].Text == ")" {
		return tokens[1 : len(tokens)-1]
	}
	return tokens
}

func joinTokens(tokens []syntax.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, t.Text)
	}
	return strings.Join(parts, " ")
}

func isIdentifier(text string) bool {
	if text == "" {
		return false
	}
	c := text[0]
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
