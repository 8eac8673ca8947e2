package symbols

import (
	"fxsema/internal/semtype"
	"fxsema/internal/syntax"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolFunction
	SymbolParameter
	SymbolLocalVariable
	SymbolGlobalVariable
	SymbolSampler
	SymbolResource
	SymbolStateObject
	SymbolStruct
	SymbolStructMember
	SymbolCBuffer
	SymbolCBufferMember
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolParameter:
		return "parameter"
	case SymbolLocalVariable:
		return "local"
	case SymbolGlobalVariable:
		return "global"
	case SymbolSampler:
		return "sampler"
	case SymbolResource:
		return "resource"
	case SymbolStateObject:
		return "state"
	case SymbolStruct:
		return "struct"
	case SymbolStructMember:
		return "member"
	case SymbolCBuffer:
		return "cbuffer"
	case SymbolCBufferMember:
		return "cbuffer-member"
	}
	return "invalid"
}

// SymbolFlags encode parameter qualifiers for quick checks.
type SymbolFlags uint8

const (
	FlagUniform SymbolFlags = 1 << iota
	FlagOut
	FlagInOut
	// FlagPlaceholder marks a symbol synthesized for a technique
	// binding whose target was never declared.
	FlagPlaceholder
)

// Symbol describes one named entity. Symbols are created during the
// single builder walk and never mutated afterwards; later stages
// reference them by SymbolID only.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	TypeText string
	Type     semtype.SemType
	Decl     syntax.NodeID
	Parent   SymbolID
	Flags    SymbolFlags

	Semantic       *Semantic // bound semantic, if any
	ReturnSemantic *Semantic // functions only
}
