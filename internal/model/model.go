package model

// FormatVersion is bumped whenever the output shape changes materially.
const FormatVersion = 3

// Model is the backend-agnostic semantic model serialized to JSON.
type Model struct {
	FormatVersion int          `json:"formatVersion"`
	Profile       string       `json:"profile"`
	Syntax        Syntax       `json:"syntax"`
	Symbols       []Symbol     `json:"symbols"`
	Types         []TypedNode  `json:"types"`
	EntryPoints   []EntryPoint `json:"entryPoints"`
	Techniques    []Technique  `json:"techniques"`
	Diagnostics   []Diagnostic `json:"diagnostics"`
}

type Span struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

type Syntax struct {
	RootID uint32 `json:"rootId"`
	Nodes  []Node `json:"nodes"`
}

// ChildRef links a node to a child by id under its role label.
type ChildRef struct {
	Role   string `json:"role"`
	NodeID uint32 `json:"nodeId"`
}

// Node carries the syntax shape plus the cross-references resolved by
// analysis: referenced symbols for identifiers/calls/members, operator
// text for unary/binary/cast nodes, callee name/kind for calls.
type Node struct {
	ID         uint32     `json:"id"`
	Kind       string     `json:"kind"`
	Span       Span       `json:"span"`
	Children   []ChildRef `json:"children,omitempty"`
	Symbol     uint32     `json:"symbol,omitempty"`
	SymbolKind string     `json:"symbolKind,omitempty"`
	Operator   string     `json:"operator,omitempty"`
	Callee     string     `json:"callee,omitempty"`
	CalleeKind string     `json:"calleeKind,omitempty"`
}

type Symbol struct {
	ID             uint32    `json:"id"`
	Name           string    `json:"name"`
	Kind           string    `json:"kind"`
	Type           string    `json:"type,omitempty"`
	DeclNode       uint32    `json:"declNode,omitempty"`
	Parent         uint32    `json:"parent,omitempty"`
	Semantic       *Semantic `json:"semantic,omitempty"`
	ReturnSemantic *Semantic `json:"returnSemantic,omitempty"`
}

type Semantic struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
}

// TypedNode is one {nodeId, type} pair; one entry per distinct typed
// node, ordered by node id.
type TypedNode struct {
	NodeID uint32 `json:"nodeId"`
	Type   string `json:"type"`
}

type EntryPoint struct {
	Name    string `json:"name"`
	Symbol  uint32 `json:"symbol"`
	Stage   string `json:"stage"`
	Profile string `json:"profile"`
}

type Technique struct {
	Name   string `json:"name"`
	Passes []Pass `json:"passes"`
}

type Pass struct {
	Name    string            `json:"name"`
	Shaders []ShaderBinding   `json:"shaders"`
	States  []StateAssignment `json:"states"`
}

type ShaderBinding struct {
	Stage   string `json:"stage"`
	Profile string `json:"profile"`
	Entry   string `json:"entry"`
	Symbol  uint32 `json:"symbol"`
}

type StateAssignment struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Diagnostic struct {
	Severity string `json:"severity"`
	ID       string `json:"id"`
	Message  string `json:"message"`
	Span     *Span  `json:"span,omitempty"`
}

// Empty returns the deliberately empty model produced when the input
// tree cannot be decoded at all.
func Empty(profile string) *Model {
	return &Model{
		FormatVersion: FormatVersion,
		Profile:       profile,
		Symbols:       []Symbol{},
		Types:         []TypedNode{},
		EntryPoints:   []EntryPoint{},
		Techniques:    []Technique{},
		Diagnostics:   []Diagnostic{},
	}
}
