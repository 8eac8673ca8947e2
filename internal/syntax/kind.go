package syntax

// NodeKind classifies a syntax node. The upstream parser tags nodes with
// strings; decoding maps them onto this closed enumeration so that every
// traversal switches exhaustively instead of comparing strings.
type NodeKind uint8

const (
	NodeUnknown NodeKind = iota
	NodeRoot
	NodeFunctionDecl
	NodeParameterDecl
	NodeVariableDecl
	NodeStructDecl
	NodeFieldDecl
	NodeCBufferDecl
	NodeTechniqueDecl
	NodePassDecl
	NodeBlock
	NodeReturnStmt
	NodeIdentifier
	NodeLiteral
	NodeMemberExpr
	NodeCallExpr
	NodeBinaryExpr
	NodeUnaryExpr
	NodeCastExpr
	NodeIndexExpr
	NodeSemantic
	NodeTypeName
)

var kindNames = map[string]NodeKind{
	"Root":          NodeRoot,
	"FunctionDecl":  NodeFunctionDecl,
	"ParameterDecl": NodeParameterDecl,
	"VariableDecl":  NodeVariableDecl,
	"StructDecl":    NodeStructDecl,
	"FieldDecl":     NodeFieldDecl,
	"CBufferDecl":   NodeCBufferDecl,
	"TechniqueDecl": NodeTechniqueDecl,
	"PassDecl":      NodePassDecl,
	"Block":         NodeBlock,
	"ReturnStmt":    NodeReturnStmt,
	"Identifier":    NodeIdentifier,
	"Literal":       NodeLiteral,
	"MemberExpr":    NodeMemberExpr,
	"CallExpr":      NodeCallExpr,
	"BinaryExpr":    NodeBinaryExpr,
	"UnaryExpr":     NodeUnaryExpr,
	"CastExpr":      NodeCastExpr,
	"IndexExpr":     NodeIndexExpr,
	"Semantic":      NodeSemantic,
	"TypeName":      NodeTypeName,
}

// KindFromString maps a parser kind tag onto NodeKind.
// Unknown tags map to NodeUnknown; ingestion never fails on them.
func KindFromString(s string) NodeKind {
	if k, ok := kindNames[s]; ok {
		return k
	}
	return NodeUnknown
}

func (k NodeKind) String() string {
	switch k {
	case NodeRoot:
		return "Root"
	case NodeFunctionDecl:
		return "FunctionDecl"
	case NodeParameterDecl:
		return "ParameterDecl"
	case NodeVariableDecl:
		return "VariableDecl"
	case NodeStructDecl:
		return "StructDecl"
	case NodeFieldDecl:
		return "FieldDecl"
	case NodeCBufferDecl:
		return "CBufferDecl"
	case NodeTechniqueDecl:
		return "TechniqueDecl"
	case NodePassDecl:
		return "PassDecl"
	case NodeBlock:
		return "Block"
	case NodeReturnStmt:
		return "ReturnStmt"
	case NodeIdentifier:
		return "Identifier"
	case NodeLiteral:
		return "Literal"
	case NodeMemberExpr:
		return "MemberExpr"
	case NodeCallExpr:
		return "CallExpr"
	case NodeBinaryExpr:
		return "BinaryExpr"
	case NodeUnaryExpr:
		return "UnaryExpr"
	case NodeCastExpr:
		return "CastExpr"
	case NodeIndexExpr:
		return "IndexExpr"
	case NodeSemantic:
		return "Semantic"
	case NodeTypeName:
		return "TypeName"
	}
	return "Unknown"
}
