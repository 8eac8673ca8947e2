package sema

import (
	"strings"

	"fxsema/internal/diag"
	"fxsema/internal/intrinsics"
	"fxsema/internal/semtype"
	"fxsema/internal/symbols"
	"fxsema/internal/syntax"
)

// CalleeRef records who a call resolved to, for the output model.
type CalleeRef struct {
	Name string
	Kind string // "intrinsic", "function", "constructor", "binding"
}

// Result holds everything inference produced: per-node types and the
// cross-references the output model serializes.
type Result struct {
	Types   map[syntax.NodeID]semtype.SemType
	Refs    map[syntax.NodeID]symbols.SymbolID
	Callees map[syntax.NodeID]CalleeRef
	Ops     map[syntax.NodeID]string
}

// Check runs expression type inference over the whole tree: one
// post-order walk assigning a type to every expression node. The
// per-node type cache is write-once; the first writer wins.
func Check(doc *syntax.Document, table *symbols.Table, bag *diag.Bag, policy semtype.Policy) *Result {
	c := &checker{
		doc:    doc,
		table:  table,
		bag:    bag,
		policy: policy,
		result: &Result{
			Types:   make(map[syntax.NodeID]semtype.SemType),
			Refs:    make(map[syntax.NodeID]symbols.SymbolID),
			Callees: make(map[syntax.NodeID]CalleeRef),
			Ops:     make(map[syntax.NodeID]string),
		},
	}
	c.buildMaps()
	c.walk(doc.Root, symbols.NoSymbolID, false)
	return c.result
}

type checker struct {
	doc    *syntax.Document
	table  *symbols.Table
	bag    *diag.Bag
	policy semtype.Policy
	result *Result

	// Read-only lookup maps, built once after the symbol walk.
	globals       map[string]symbols.SymbolID
	locals        map[symbols.SymbolID]map[string]symbols.SymbolID
	structMembers map[string]map[string]symbols.SymbolID
	functionDecls map[syntax.NodeID]symbols.SymbolID
}

func (c *checker) buildMaps() {
	c.globals = make(map[string]symbols.SymbolID)
	c.locals = make(map[symbols.SymbolID]map[string]symbols.SymbolID)
	c.structMembers = make(map[string]map[string]symbols.SymbolID)
	c.functionDecls = make(map[syntax.NodeID]symbols.SymbolID)

	structNames := make(map[symbols.SymbolID]string)
	c.table.All(func(id symbols.SymbolID, sym *symbols.Symbol) {
		key := strings.ToLower(sym.Name)
		switch sym.Kind {
		case symbols.SymbolFunction:
			c.functionDecls[sym.Decl] = id
			if _, exists := c.globals[key]; !exists {
				c.globals[key] = id
			}
		case symbols.SymbolParameter, symbols.SymbolLocalVariable:
			scope := c.locals[sym.Parent]
			if scope == nil {
				scope = make(map[string]symbols.SymbolID)
				c.locals[sym.Parent] = scope
			}
			if _, exists := scope[key]; !exists {
				scope[key] = id
			}
		case symbols.SymbolStruct:
			structNames[id] = strings.ToLower(sym.Name)
		case symbols.SymbolStructMember:
			// Parent struct is always declared before its members.
			owner := structNames[sym.Parent]
			members := c.structMembers[owner]
			if members == nil {
				members = make(map[string]symbols.SymbolID)
				c.structMembers[owner] = members
			}
			members[key] = id
		default:
			if _, exists := c.globals[key]; !exists {
				c.globals[key] = id
			}
		}
	})
}

// walk drives inference: function bodies are checked in their
// function's scope, technique subtrees are typed void with all
// diagnostics suppressed (their call syntax is binding metadata).
func (c *checker) walk(n *syntax.Node, fn symbols.SymbolID, suppress bool) {
	if n == nil {
		return
	}
	switch {
	case n.Kind == syntax.NodeStructDecl:
		// Field declarations are not expressions; their name and type
		// children would only misresolve as identifiers.
		return
	case n.Kind == syntax.NodeTechniqueDecl:
		suppress = true
	case n.Kind == syntax.NodeFunctionDecl:
		if id, ok := c.functionDecls[n.ID]; ok {
			fn = id
		}
	}
	if isExpr(n.Kind) {
		c.infer(n, fn, suppress)
		return
	}
	for i := range n.Children {
		c.walk(n.Children[i].Node, fn, suppress)
	}
}

func isExpr(kind syntax.NodeKind) bool {
	switch kind {
	case syntax.NodeIdentifier, syntax.NodeLiteral, syntax.NodeMemberExpr,
		syntax.NodeCallExpr, syntax.NodeBinaryExpr, syntax.NodeUnaryExpr,
		syntax.NodeCastExpr, syntax.NodeIndexExpr:
		return true
	}
	return false
}

// setType memoizes a node type; the first writer wins and later
// writes to the same node are no-ops.
func (c *checker) setType(id syntax.NodeID, t semtype.SemType) semtype.SemType {
	if existing, ok := c.result.Types[id]; ok {
		return existing
	}
	c.result.Types[id] = t
	return t
}

func (c *checker) infer(n *syntax.Node, fn symbols.SymbolID, suppress bool) semtype.SemType {
	if t, ok := c.result.Types[n.ID]; ok {
		return t
	}
	if suppress {
		// Binding metadata: type the whole subtree void, no diagnostics.
		for i := range n.Children {
			c.walk(n.Children[i].Node, fn, true)
		}
		return c.setType(n.ID, semtype.Void())
	}

	var t semtype.SemType
	switch n.Kind {
	case syntax.NodeIdentifier:
		t = c.identifier(n, fn, false)
	case syntax.NodeLiteral:
		t = c.literal(n)
	case syntax.NodeMemberExpr:
		t = c.member(n, fn)
	case syntax.NodeCallExpr:
		t = c.call(n, fn)
	case syntax.NodeBinaryExpr:
		t = c.binary(n, fn)
	case syntax.NodeUnaryExpr:
		c.result.Ops[n.ID] = c.operatorText(n)
		t = c.unaryOperand(n, fn)
	case syntax.NodeCastExpr:
		t = c.cast(n, fn)
	case syntax.NodeIndexExpr:
		t = c.index(n, fn)
	default:
		t = semtype.Invalid()
	}
	return c.setType(n.ID, t)
}

// identifier resolves against the scope-aware symbol maps. When quiet
// is set (callee position, technique metadata) no diagnostic is
// emitted for an unknown name.
func (c *checker) identifier(n *syntax.Node, fn symbols.SymbolID, quiet bool) semtype.SemType {
	name := strings.TrimSpace(c.doc.Text(n.Span))
	key := strings.ToLower(name)

	if fn.IsValid() {
		if id, ok := c.locals[fn][key]; ok {
			c.result.Refs[n.ID] = id
			return c.table.Get(id).Type
		}
	}
	if id, ok := c.globals[key]; ok {
		c.result.Refs[n.ID] = id
		return c.table.Get(id).Type
	}

	// Intrinsic and type names are legal identifiers in call and cast
	// positions; stay silent for those.
	if intrinsics.IsIntrinsic(name) || c.isTypeName(name) {
		return semtype.Invalid()
	}
	if !quiet {
		c.bag.Report(diag.TypeUnknownIdentifier, "unknown identifier '"+name+"'", n.Span)
	}
	return semtype.Invalid()
}

// isTypeName reports whether name denotes a recognizable type: a
// numeric shape, a known resource prefix, or a declared struct.
func (c *checker) isTypeName(name string) bool {
	parsed := semtype.Parse(name)
	switch parsed.Kind {
	case semtype.KindScalar, semtype.KindVector, semtype.KindMatrix:
		return true
	case semtype.KindResource:
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, "sampler") || strings.HasPrefix(lower, "texture") ||
			strings.Contains(lower, "buffer") {
			return true
		}
	}
	_, isStruct := c.structMembers[strings.ToLower(name)]
	return isStruct
}

func (c *checker) literal(n *syntax.Node) semtype.SemType {
	text := strings.TrimSpace(c.doc.Text(n.Span))
	switch {
	case text == "true" || text == "false":
		return semtype.Scalar(semtype.BaseBool)
	case strings.ContainsAny(text, ".eE") || strings.HasSuffix(text, "f") ||
		strings.HasSuffix(text, "h"):
		if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
			return semtype.Scalar(semtype.BaseInt)
		}
		return semtype.Scalar(semtype.BaseFloat)
	}
	return semtype.Scalar(semtype.BaseInt)
}

// member first consults the struct-member maps, then falls back to
// swizzle inference over the xyzw/rgba letter sets.
func (c *checker) member(n *syntax.Node, fn symbols.SymbolID) semtype.SemType {
	object := n.Child("object")
	memberNode := n.Child("member")
	if object == nil || memberNode == nil {
		return semtype.Invalid()
	}
	objType := c.infer(object, fn, false)
	memberName := strings.TrimSpace(c.doc.Text(memberNode.Span))
	key := strings.ToLower(memberName)

	// Struct-typed expressions carry their struct name as an opaque
	// resource type.
	if objType.Kind == semtype.KindResource {
		if members, ok := c.structMembers[strings.ToLower(objType.Name)]; ok {
			if id, ok := members[key]; ok {
				c.result.Refs[n.ID] = id
				return c.table.Get(id).Type
			}
		}
	}

	if t, ok := swizzleType(objType, memberName); ok {
		return t
	}
	return semtype.Invalid()
}

var swizzleSets = []string{"xyzw", "rgba"}

// swizzleType infers the type of a component selection: one selector
// letter yields the scalar base, N letters a vector of width N.
func swizzleType(objType semtype.SemType, selector string) (semtype.SemType, bool) {
	if len(selector) == 0 || len(selector) > 4 {
		return semtype.Invalid(), false
	}
	if objType.Kind != semtype.KindVector && objType.Kind != semtype.KindScalar {
		return semtype.Invalid(), false
	}
	lower := strings.ToLower(selector)
	for _, set := range swizzleSets {
		all := true
		for i := 0; i < len(lower); i++ {
			if !strings.ContainsRune(set, rune(lower[i])) {
				all = false
				break
			}
		}
		if all {
			if len(lower) == 1 {
				return semtype.Scalar(objType.Base), true
			}
			return semtype.Vector(objType.Base, uint8(len(lower))), true
		}
	}
	return semtype.Invalid(), false
}

func (c *checker) binary(n *syntax.Node, fn symbols.SymbolID) semtype.SemType {
	left := n.Child("left")
	right := n.Child("right")
	c.result.Ops[n.ID] = c.operatorText(n)
	if left == nil || right == nil {
		return semtype.Invalid()
	}
	lt := c.infer(left, fn, false)
	rt := c.infer(right, fn, false)

	op := c.result.Ops[n.ID]
	if isComparisonOp(op) {
		if lt.Numeric() && rt.Numeric() {
			return semtype.Scalar(semtype.BaseBool)
		}
		return semtype.Scalar(semtype.BaseBool)
	}

	t, ok := c.policy.PromoteBinary(lt, rt)
	if !ok {
		// Report only when both sides resolved; an unresolved side was
		// already diagnosed at its own node.
		if lt.IsValid() && rt.IsValid() {
			c.bag.Report(diag.TypeBinaryMismatch,
				"operands '"+lt.String()+"' and '"+rt.String()+"' are incompatible", n.Span)
		}
		return semtype.Invalid()
	}
	return t
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return true
	}
	return false
}

func (c *checker) unaryOperand(n *syntax.Node, fn symbols.SymbolID) semtype.SemType {
	operand := n.Child("operand")
	if operand == nil {
		return semtype.Invalid()
	}
	t := c.infer(operand, fn, false)
	if c.result.Ops[n.ID] == "!" {
		return semtype.Scalar(semtype.BaseBool)
	}
	return t
}

// cast adopts the annotated target type; the operand is still
// inferred so its own diagnostics surface.
func (c *checker) cast(n *syntax.Node, fn symbols.SymbolID) semtype.SemType {
	if operand := n.Child("expr"); operand != nil {
		c.infer(operand, fn, false)
	}
	typeNode := n.Child("type")
	if typeNode == nil {
		return semtype.Invalid()
	}
	text := strings.TrimSpace(c.doc.Text(typeNode.Span))
	c.result.Ops[n.ID] = text
	return semtype.Parse(text)
}

// index yields a vector's scalar, a matrix's row vector, or an
// array's element type.
func (c *checker) index(n *syntax.Node, fn symbols.SymbolID) semtype.SemType {
	base := n.Child("base")
	if base == nil {
		return semtype.Invalid()
	}
	if idx := n.Child("index"); idx != nil {
		c.infer(idx, fn, false)
	}
	baseType := c.infer(base, fn, false)
	switch baseType.Kind {
	case semtype.KindVector:
		return semtype.Scalar(baseType.Base)
	case semtype.KindMatrix:
		return semtype.Vector(baseType.Base, baseType.Cols)
	case semtype.KindArray:
		return *baseType.Elem
	}
	return semtype.Invalid()
}

func (c *checker) operatorText(n *syntax.Node) string {
	if opNode := n.Child("op"); opNode != nil {
		return strings.TrimSpace(c.doc.Text(opNode.Span))
	}
	// Fall back to the token between the two operand spans.
	left := n.Child("left")
	right := n.Child("right")
	if left != nil && right != nil {
		for _, tok := range c.doc.TokensIn(n.Span) {
			if tok.Span.Start >= left.Span.End && tok.Span.End <= right.Span.Start {
				return tok.Text
			}
		}
	}
	if operand := n.Child("operand"); operand != nil {
		for _, tok := range c.doc.TokensIn(n.Span) {
			if tok.Span.End <= operand.Span.Start {
				return tok.Text
			}
		}
	}
	return ""
}
