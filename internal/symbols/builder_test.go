package symbols

import (
	"strings"
	"testing"

	"fxsema/internal/diag"
	"fxsema/internal/semtype"
	"fxsema/internal/source"
	"fxsema/internal/syntax"
)

// lex tokenizes test sources the way the upstream token stream tiles
// them: identifier/number words and single-character punctuation.
func lex(src string) []syntax.Token {
	isWord := func(c byte) bool {
		return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
	}
	var out []syntax.Token
	for i := 0; i < len(src); {
		if src[i] == ' ' || src[i] == '\t' || src[i] == '\n' {
			i++
			continue
		}
		j := i + 1
		if isWord(src[i]) {
			for j < len(src) && isWord(src[j]) {
				j++
			}
		}
		out = append(out, syntax.Token{
			Span: source.Span{Start: uint32(i), End: uint32(j)},
			Text: src[i:j],
		})
		i = j
	}
	return out
}

// spanN locates the n-th occurrence (0-based) of sub in src.
func spanN(t *testing.T, src, sub string, n int) source.Span {
	t.Helper()
	off := 0
	for {
		i := strings.Index(src[off:], sub)
		if i < 0 {
			t.Fatalf("occurrence %d of %q not found in source", n, sub)
		}
		i += off
		if n == 0 {
			return source.Span{Start: uint32(i), End: uint32(i + len(sub))}
		}
		n--
		off = i + 1
	}
}

func mkNode(id uint32, kind syntax.NodeKind, span source.Span, children ...syntax.Child) *syntax.Node {
	return &syntax.Node{
		ID:       syntax.NodeID(id),
		Kind:     kind,
		KindTag:  kind.String(),
		Span:     span,
		Children: children,
	}
}

func role(r string, n *syntax.Node) syntax.Child {
	return syntax.Child{Role: r, Node: n}
}

func mkDoc(src string, root *syntax.Node) *syntax.Document {
	return &syntax.Document{Source: src, Root: root, Tokens: lex(src)}
}

func entryPointDoc(t *testing.T) *syntax.Document {
	t.Helper()
	src := "float4 main(float4 pos : POSITION) : SV_Position { return pos; }"
	full := source.Span{Start: 0, End: uint32(len(src))}

	param := mkNode(5, syntax.NodeParameterDecl, spanN(t, src, "float4 pos : POSITION", 0),
		role("type", mkNode(6, syntax.NodeTypeName, spanN(t, src, "float4", 1))),
		role("name", mkNode(7, syntax.NodeIdentifier, spanN(t, src, "pos", 0))),
		role("semantic", mkNode(8, syntax.NodeSemantic, spanN(t, src, ": POSITION", 0))),
	)
	body := mkNode(10, syntax.NodeBlock, spanN(t, src, "{ return pos; }", 0),
		role("stmt", mkNode(11, syntax.NodeReturnStmt, spanN(t, src, "return pos;", 0),
			role("expr", mkNode(12, syntax.NodeIdentifier, spanN(t, src, "pos", 1))),
		)),
	)
	fn := mkNode(2, syntax.NodeFunctionDecl, full,
		role("return", mkNode(3, syntax.NodeTypeName, spanN(t, src, "float4", 0))),
		role("name", mkNode(4, syntax.NodeIdentifier, spanN(t, src, "main", 0))),
		role("param", param),
		role("semantic", mkNode(9, syntax.NodeSemantic, spanN(t, src, ": SV_Position", 0))),
		role("body", body),
	)
	root := mkNode(1, syntax.NodeRoot, full, role("decl", fn))
	return mkDoc(src, root)
}

func TestBuildEntryPointFunction(t *testing.T) {
	doc := entryPointDoc(t)
	bag := diag.NewBag(doc.Len())
	table := Build(doc, bag)

	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if table.Len() != 2 {
		t.Fatalf("Len = %d, want function + parameter", table.Len())
	}

	fnID := table.FindFunction("main")
	if !fnID.IsValid() {
		t.Fatal("function 'main' not found")
	}
	fn := table.Get(fnID)
	if fn.ReturnSemantic == nil || fn.ReturnSemantic.Name != "SV_POSITION" {
		t.Errorf("return semantic = %+v, want SV_POSITION", fn.ReturnSemantic)
	}
	if got := fn.Type.Return.String(); got != "float4" {
		t.Errorf("return type = %q, want float4", got)
	}

	params := table.ParametersOf(fnID)
	if len(params) != 1 {
		t.Fatalf("ParametersOf = %v, want one parameter", params)
	}
	p := table.Get(params[0])
	if p.Name != "pos" || p.TypeText != "float4" {
		t.Errorf("parameter = %q %q", p.TypeText, p.Name)
	}
	if p.Semantic == nil || p.Semantic.Name != "POSITION" || p.Semantic.Index != 0 {
		t.Errorf("parameter semantic = %+v, want {POSITION, 0}", p.Semantic)
	}
	if p.Parent != fnID {
		t.Error("parameter must be parented to its function")
	}
}

func TestBuildDuplicateFunctionDropped(t *testing.T) {
	src := "float4 A() : COLOR {} float4 A() : COLOR {}"
	full := source.Span{Start: 0, End: uint32(len(src))}

	mkFn := func(id uint32, occ int) *syntax.Node {
		declSpan := spanN(t, src, "float4 A() : COLOR {}", occ)
		return mkNode(id, syntax.NodeFunctionDecl, declSpan,
			role("return", mkNode(id+1, syntax.NodeTypeName, spanN(t, src, "float4", occ))),
			role("name", mkNode(id+2, syntax.NodeIdentifier, spanN(t, src, "A", occ))),
			role("semantic", mkNode(id+3, syntax.NodeSemantic, spanN(t, src, ": COLOR", occ))),
		)
	}
	root := mkNode(1, syntax.NodeRoot, full,
		role("decl", mkFn(2, 0)),
		role("decl", mkFn(10, 1)),
	)
	doc := mkDoc(src, root)

	bag := diag.NewBag(doc.Len())
	table := Build(doc, bag)

	if table.Len() != 1 {
		t.Fatalf("Len = %d, want the first declaration only", table.Len())
	}
	if got := bag.CountCode(diag.StructDuplicateFunction); got != 1 {
		t.Fatalf("duplicate diagnostics = %d, want exactly 1", got)
	}
	fn := table.Get(table.FindFunction("A"))
	if fn.Decl != 2 {
		t.Errorf("surviving declaration node = %d, want the first one", fn.Decl)
	}
}

func TestBuildStructAndCBuffer(t *testing.T) {
	src := "struct VSOut { float4 pos : SV_Position; float2 uv : TEXCOORD0; }; cbuffer Params { float4x4 world; float t; }"
	full := source.Span{Start: 0, End: uint32(len(src))}

	field := func(id uint32, decl, typeText, name, sem string) *syntax.Node {
		children := []syntax.Child{
			role("type", mkNode(id+1, syntax.NodeTypeName, spanN(t, src, typeText, 0))),
			role("name", mkNode(id+2, syntax.NodeIdentifier, spanN(t, src, name, 0))),
		}
		if sem != "" {
			children = append(children, role("semantic", mkNode(id+3, syntax.NodeSemantic, spanN(t, src, sem, 0))))
		}
		return mkNode(id, syntax.NodeFieldDecl, spanN(t, src, decl, 0), children...)
	}

	structNode := mkNode(2, syntax.NodeStructDecl, spanN(t, src, "struct VSOut { float4 pos : SV_Position; float2 uv : TEXCOORD0; }", 0),
		role("name", mkNode(3, syntax.NodeIdentifier, spanN(t, src, "VSOut", 0))),
		role("field", field(4, "float4 pos : SV_Position", "float4", "pos", ": SV_Position")),
		role("field", field(8, "float2 uv : TEXCOORD0", "float2", "uv", ": TEXCOORD0")),
	)
	cbuffer := mkNode(20, syntax.NodeCBufferDecl, spanN(t, src, "cbuffer Params { float4x4 world; float t; }", 0),
		role("name", mkNode(21, syntax.NodeIdentifier, spanN(t, src, "Params", 0))),
	)
	root := mkNode(1, syntax.NodeRoot, full, role("decl", structNode), role("decl", cbuffer))
	doc := mkDoc(src, root)

	bag := diag.NewBag(doc.Len())
	table := Build(doc, bag)

	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}

	structID := table.FindByName("VSOut")
	if !structID.IsValid() || table.Get(structID).Kind != SymbolStruct {
		t.Fatal("struct VSOut not declared")
	}

	var members []*Symbol
	table.All(func(_ SymbolID, sym *Symbol) {
		if sym.Kind == SymbolStructMember && sym.Parent == structID {
			members = append(members, sym)
		}
	})
	if len(members) != 2 {
		t.Fatalf("struct members = %d, want 2", len(members))
	}
	if members[0].Name != "pos" || members[0].Semantic == nil || members[0].Semantic.Name != "SV_POSITION" {
		t.Errorf("member pos = %+v", members[0])
	}
	if members[1].Name != "uv" || members[1].Semantic == nil ||
		members[1].Semantic.Name != "TEXCOORD" || members[1].Semantic.Index != 0 {
		t.Errorf("member uv = %+v", members[1])
	}

	bufID := table.FindByName("Params")
	if !bufID.IsValid() || table.Get(bufID).Kind != SymbolCBuffer {
		t.Fatal("cbuffer Params not declared")
	}
	var fields []*Symbol
	table.All(func(_ SymbolID, sym *Symbol) {
		if sym.Kind == SymbolCBufferMember && sym.Parent == bufID {
			fields = append(fields, sym)
		}
	})
	if len(fields) != 2 {
		t.Fatalf("cbuffer members = %d, want 2", len(fields))
	}
	if fields[0].Name != "world" || !fields[0].Type.Equal(semtype.Matrix(semtype.BaseFloat, 4, 4)) {
		t.Errorf("cbuffer member world = %+v", fields[0])
	}
	if fields[1].Name != "t" || !fields[1].Type.Equal(semtype.Scalar(semtype.BaseFloat)) {
		t.Errorf("cbuffer member t = %+v", fields[1])
	}
}

func TestBuildGlobalClassification(t *testing.T) {
	src := "sampler2D samp; Texture2D tex; BlendState bs; float4 tint;"
	full := source.Span{Start: 0, End: uint32(len(src))}

	variable := func(id uint32, typeText, name string) *syntax.Node {
		return mkNode(id, syntax.NodeVariableDecl, spanN(t, src, typeText+" "+name, 0),
			role("type", mkNode(id+1, syntax.NodeTypeName, spanN(t, src, typeText, 0))),
			role("name", mkNode(id+2, syntax.NodeIdentifier, spanN(t, src, name, 0))),
		)
	}
	root := mkNode(1, syntax.NodeRoot, full,
		role("decl", variable(2, "sampler2D", "samp")),
		role("decl", variable(5, "Texture2D", "tex")),
		role("decl", variable(8, "BlendState", "bs")),
		role("decl", variable(11, "float4", "tint")),
	)
	doc := mkDoc(src, root)

	table := Build(doc, diag.NewBag(doc.Len()))
	tests := []struct {
		name string
		kind SymbolKind
	}{
		{"samp", SymbolSampler},
		{"tex", SymbolResource},
		{"bs", SymbolStateObject},
		{"tint", SymbolGlobalVariable},
	}
	for _, tt := range tests {
		sym := table.Get(table.FindByName(tt.name))
		if sym == nil {
			t.Fatalf("global %q not declared", tt.name)
		}
		if sym.Kind != tt.kind {
			t.Errorf("%q classified as %v, want %v", tt.name, sym.Kind, tt.kind)
		}
	}
}

func TestTableArena(t *testing.T) {
	table := NewTable(0)
	if table.Len() != 0 {
		t.Fatalf("fresh table Len = %d", table.Len())
	}
	id := table.New(&Symbol{Name: "f", Kind: SymbolFunction})
	if !id.IsValid() {
		t.Fatal("first allocation must produce a valid id")
	}
	if table.Get(NoSymbolID) != nil {
		t.Error("sentinel id must resolve to nil")
	}
	if table.Get(id).Name != "f" {
		t.Error("lookup by id failed")
	}
	if got := table.FindFunction("F"); got != id {
		t.Error("function lookup must be case-insensitive")
	}
}
