package symbols

import (
	"strings"

	"fxsema/internal/diag"
	"fxsema/internal/semtype"
	"fxsema/internal/syntax"
)

// Build constructs the symbol table in a single top-down walk over the
// input tree. Diagnostics go into bag; the walk itself never fails.
func Build(doc *syntax.Document, bag *diag.Bag) *Table {
	b := &builder{
		doc:   doc,
		bag:   bag,
		table: NewTable(0),
	}
	b.walk(doc.Root, cursor{})
	return b.table
}

// cursor carries the walk context: the parent node kind, the enclosing
// function and the enclosing struct/cbuffer container.
type cursor struct {
	parent    syntax.NodeKind
	function  SymbolID
	container SymbolID
}

type builder struct {
	doc   *syntax.Document
	bag   *diag.Bag
	table *Table
}

func (b *builder) walk(n *syntax.Node, cur cursor) {
	if n == nil {
		return
	}
	switch n.Kind {
	case syntax.NodeFunctionDecl:
		b.function(n, cur)
	case syntax.NodeVariableDecl:
		b.variable(n, cur)
	case syntax.NodeStructDecl:
		b.structDecl(n)
	case syntax.NodeCBufferDecl:
		b.cbuffer(n)
	case syntax.NodeTechniqueDecl:
		// Technique bodies hold binding metadata, not declarations.
		// The fx builder owns them.
	default:
		next := cur
		next.parent = n.Kind
		for i := range n.Children {
			b.walk(n.Children[i].Node, next)
		}
	}
}

func (b *builder) function(n *syntax.Node, cur cursor) {
	name := b.childText(n, "name")
	if name == "" {
		return
	}
	if b.table.FindFunction(name).IsValid() {
		span := n.Span
		if nameNode := n.Child("name"); nameNode != nil {
			span = nameNode.Span
		}
		b.bag.Report(diag.StructDuplicateFunction,
			"function '"+name+"' is already declared", span)
		// Keep the first declaration, drop this one entirely.
		return
	}

	retText := b.childText(n, "return")
	if retText == "" || IsModifier(retText) {
		retText = "void"
	}
	retType := semtype.Parse(retText)

	var retSemantic *Semantic
	if semNode := n.Child("semantic"); semNode != nil {
		sem := NormalizeSemantic(strings.TrimPrefix(b.doc.Text(semNode.Span), ":"))
		retSemantic = &sem
	}

	params := n.ChildrenByRole("param")
	paramTypes := make([]semtype.SemType, 0, len(params))
	type paramInfo struct {
		sym Symbol
	}
	infos := make([]paramInfo, 0, len(params))
	for _, p := range params {
		sym := b.parameter(p)
		paramTypes = append(paramTypes, sym.Type)
		infos = append(infos, paramInfo{sym: sym})
	}

	fnType := semtype.Function(retType, paramTypes)
	fnID := b.table.New(&Symbol{
		Name:           name,
		Kind:           SymbolFunction,
		TypeText:       fnType.String(),
		Type:           fnType,
		Decl:           n.ID,
		Semantic:       retSemantic,
		ReturnSemantic: retSemantic,
	})
	for i := range infos {
		infos[i].sym.Parent = fnID
		b.table.New(&infos[i].sym)
	}

	if body := n.Child("body"); body != nil {
		b.walk(body, cursor{parent: n.Kind, function: fnID})
	}
}

// parameter derives name and type primarily from labeled children and
// falls back to the token-range heuristic when the tree's own typing
// is ambiguous.
func (b *builder) parameter(n *syntax.Node) Symbol {
	name := b.childText(n, "name")
	typeText := b.childText(n, "type")
	tokens := b.doc.TokensIn(n.Span)

	if name == "" || typeText == "" || IsModifier(typeText) {
		if hn, ht, ok := ExtractNameType(tokens); ok {
			name, typeText = hn, ht
		}
	}
	if suffix := ArraySuffix(tokens, name); suffix != "" && !strings.HasSuffix(typeText, "]") {
		typeText += suffix
	}

	sym := Symbol{
		Name:     name,
		Kind:     SymbolParameter,
		TypeText: typeText,
		Type:     semtype.Parse(typeText),
		Decl:     n.ID,
		Flags:    parameterFlags(tokens),
	}
	if semNode := n.Child("semantic"); semNode != nil {
		sem := NormalizeSemantic(strings.TrimPrefix(b.doc.Text(semNode.Span), ":"))
		sym.Semantic = &sem
	}
	return sym
}

func parameterFlags(tokens []syntax.Token) SymbolFlags {
	var flags SymbolFlags
	for _, t := range tokens {
		switch strings.ToLower(t.Text) {
		case "uniform":
			flags |= FlagUniform
		case "out":
			flags |= FlagOut
		case "inout":
			flags |= FlagInOut
		}
	}
	return flags
}

func (b *builder) variable(n *syntax.Node, cur cursor) {
	name := b.childText(n, "name")
	typeText := b.childText(n, "type")
	tokens := b.doc.TokensIn(n.Span)

	if name == "" || typeText == "" || IsModifier(typeText) {
		if hn, ht, ok := ExtractNameType(tokens); ok {
			name, typeText = hn, ht
		}
	}
	if name == "" {
		return
	}
	if suffix := ArraySuffix(tokens, name); suffix != "" && !strings.HasSuffix(typeText, "]") {
		typeText += suffix
	}

	kind := SymbolLocalVariable
	if !cur.function.IsValid() {
		kind = classifyGlobal(typeText)
	}
	b.table.New(&Symbol{
		Name:     name,
		Kind:     kind,
		TypeText: typeText,
		Type:     semtype.Parse(typeText),
		Decl:     n.ID,
		Parent:   cur.function,
	})

	// Locals may declare further locals in their initializers; keep walking.
	for i := range n.Children {
		if n.Children[i].Role == "init" {
			b.walk(n.Children[i].Node, cur)
		}
	}
}

// classifyGlobal assigns a symbol kind to a global by its type-name
// prefix. This covers legacy untyped declarations like
// "sampler2D diffuseSampler;".
func classifyGlobal(typeText string) SymbolKind {
	lower := strings.ToLower(typeText)
	switch {
	case strings.HasPrefix(lower, "sampler"):
		return SymbolSampler
	case strings.HasPrefix(lower, "texture"), strings.Contains(lower, "buffer"):
		return SymbolResource
	case strings.Contains(lower, "state"):
		return SymbolStateObject
	}
	return SymbolGlobalVariable
}

func (b *builder) structDecl(n *syntax.Node) {
	name := b.childText(n, "name")
	if name == "" {
		return
	}
	structID := b.table.New(&Symbol{
		Name: name,
		Kind: SymbolStruct,
		Decl: n.ID,
	})
	for i := range n.Children {
		member := n.Children[i].Node
		if member == nil || member.Kind != syntax.NodeFieldDecl {
			continue
		}
		memberName := b.childText(member, "name")
		memberType := b.childText(member, "type")
		tokens := b.doc.TokensIn(member.Span)
		if memberName == "" || memberType == "" || IsModifier(memberType) {
			if hn, ht, ok := ExtractNameType(tokens); ok {
				memberName, memberType = hn, ht
			}
		}
		if memberName == "" {
			continue
		}
		if suffix := ArraySuffix(tokens, memberName); suffix != "" && !strings.HasSuffix(memberType, "]") {
			memberType += suffix
		}
		sym := Symbol{
			Name:     memberName,
			Kind:     SymbolStructMember,
			TypeText: memberType,
			Type:     semtype.Parse(memberType),
			Decl:     member.ID,
			Parent:   structID,
		}
		if semNode := member.Child("semantic"); semNode != nil {
			sem := NormalizeSemantic(strings.TrimPrefix(b.doc.Text(semNode.Span), ":"))
			sym.Semantic = &sem
		}
		b.table.New(&sym)
	}
}

// cbuffer scans the buffer body at the token level: the upstream tree
// does not reliably type cbuffer fields, so each ';'-terminated
// statement inside the braces yields one member, with register()
// bindings dropped.
func (b *builder) cbuffer(n *syntax.Node) {
	name := b.childText(n, "name")
	if name == "" {
		name = "cbuffer"
	}
	bufID := b.table.New(&Symbol{
		Name: name,
		Kind: SymbolCBuffer,
		Decl: n.ID,
	})

	tokens := b.doc.TokensIn(n.Span)
	start := 0
	for start < len(tokens) && tokens[start].Text != "{" {
		start++
	}
	stmt := make([]syntax.Token, 0, 8)
	for i := start + 1; i < len(tokens); i++ {
		switch tokens[i].Text {
		case ";":
			b.cbufferMember(stmt, bufID)
			stmt = stmt[:0]
		case "}":
			b.cbufferMember(stmt, bufID)
			return
		default:
			stmt = append(stmt, tokens[i])
		}
	}
}

func (b *builder) cbufferMember(stmt []syntax.Token, bufID SymbolID) {
	name, typeText, ok := ExtractNameType(stmt)
	if !ok {
		return
	}
	b.table.New(&Symbol{
		Name:     name,
		Kind:     SymbolCBufferMember,
		TypeText: typeText,
		Type:     semtype.Parse(typeText),
		Parent:   bufID,
	})
}

func (b *builder) childText(n *syntax.Node, role string) string {
	c := n.Child(role)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(b.doc.Text(c.Span))
}
