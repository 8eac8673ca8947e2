package syntax

import (
	"encoding/json"
	"fmt"
	"sort"

	"fxsema/internal/source"
)

// NodeID is the stable integer id assigned by the upstream parser.
type NodeID uint32

const NoNodeID NodeID = 0

// Child links a node to one of its children under a role label.
type Child struct {
	Role string
	Node *Node
}

// Node is one syntax-tree node as produced by the upstream parser.
// Nodes are immutable after decoding.
type Node struct {
	ID       NodeID
	Kind     NodeKind
	KindTag  string // raw parser tag, kept for the output model
	Span     source.Span
	Children []Child
}

// Child returns the first child with the given role, or nil.
func (n *Node) Child(role string) *Node {
	for i := range n.Children {
		if n.Children[i].Role == role {
			return n.Children[i].Node
		}
	}
	return nil
}

// ChildrenByRole returns all children with the given role, in order.
func (n *Node) ChildrenByRole(role string) []*Node {
	var out []*Node
	for i := range n.Children {
		if n.Children[i].Role == role {
			out = append(out, n.Children[i].Node)
		}
	}
	return out
}

// Token is one lexed token. Token spans tile the source text.
type Token struct {
	Span source.Span
	Text string
}

// UpstreamDiagnostic is a diagnostic produced by the parser and
// republished as part of the analysis output.
type UpstreamDiagnostic struct {
	ID       string
	Message  string
	Severity string
	Span     *source.Span
}

// Document wraps the decoded input tree plus its token stream and
// provides the span/text/child queries used by every later pass.
type Document struct {
	Source   string
	Root     *Node
	Tokens   []Token
	Upstream []UpstreamDiagnostic

	index map[NodeID]*Node
}

// Len returns the source text length in bytes.
func (d *Document) Len() uint32 {
	return uint32(len(d.Source))
}

// Text returns the source text covered by span, clamped to the document.
func (d *Document) Text(span source.Span) string {
	span = span.Clamp(d.Len())
	return d.Source[span.Start:span.End]
}

// Node looks a node up by id.
func (d *Document) Node(id NodeID) *Node {
	return d.index[id]
}

// TokensIn returns the tokens fully contained in span.
func (d *Document) TokensIn(span source.Span) []Token {
	lo := sort.Search(len(d.Tokens), func(i int) bool {
		return d.Tokens[i].Span.Start >= span.Start
	})
	var out []Token
	for i := lo; i < len(d.Tokens) && d.Tokens[i].Span.End <= span.End; i++ {
		out = append(out, d.Tokens[i])
	}
	return out
}

// Walk visits the tree in deterministic pre-order. Returning false from
// visit prunes the subtree.
func (d *Document) Walk(visit func(n *Node) bool) {
	var rec func(n *Node)
	rec = func(n *Node) {
		if n == nil || !visit(n) {
			return
		}
		for i := range n.Children {
			rec(n.Children[i].Node)
		}
	}
	rec(d.Root)
}

// FindAll collects every node of the given kind in pre-order.
func (d *Document) FindAll(kind NodeKind) []*Node {
	var out []*Node
	d.Walk(func(n *Node) bool {
		if n.Kind == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

type spanJSON struct {
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
}

type childJSON struct {
	Role string    `json:"role"`
	Node *nodeJSON `json:"node"`
}

type nodeJSON struct {
	ID       uint32      `json:"id"`
	Kind     string      `json:"kind"`
	Span     spanJSON    `json:"span"`
	Children []childJSON `json:"children"`
}

type tokenJSON struct {
	Span spanJSON `json:"span"`
	Text string   `json:"text"`
}

type upstreamJSON struct {
	ID       string    `json:"id"`
	Message  string    `json:"message"`
	Severity string    `json:"severity"`
	Span     *spanJSON `json:"span"`
}

type documentJSON struct {
	Source      string         `json:"source"`
	Root        *nodeJSON      `json:"root"`
	Tokens      []tokenJSON    `json:"tokens"`
	Diagnostics []upstreamJSON `json:"diagnostics"`
}

// DecodeDocument parses the upstream parser's JSON document. It fails
// only on malformed JSON or a missing root; unknown node kinds decode
// to NodeUnknown rather than erroring.
func DecodeDocument(data []byte) (*Document, error) {
	var raw documentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if raw.Root == nil {
		return nil, fmt.Errorf("decode document: missing root node")
	}

	doc := &Document{
		Source: raw.Source,
		index:  make(map[NodeID]*Node),
	}

	doc.Root = decodeNode(raw.Root, doc.index)

	doc.Tokens = make([]Token, 0, len(raw.Tokens))
	for _, t := range raw.Tokens {
		doc.Tokens = append(doc.Tokens, Token{
			Span: source.Span{Start: t.Span.Start, End: t.Span.End},
			Text: t.Text,
		})
	}
	sort.SliceStable(doc.Tokens, func(i, j int) bool {
		return doc.Tokens[i].Span.Start < doc.Tokens[j].Span.Start
	})

	for _, u := range raw.Diagnostics {
		up := UpstreamDiagnostic{ID: u.ID, Message: u.Message, Severity: u.Severity}
		if u.Span != nil {
			up.Span = &source.Span{Start: u.Span.Start, End: u.Span.End}
		}
		doc.Upstream = append(doc.Upstream, up)
	}

	return doc, nil
}

func decodeNode(raw *nodeJSON, index map[NodeID]*Node) *Node {
	n := &Node{
		ID:      NodeID(raw.ID),
		Kind:    KindFromString(raw.Kind),
		KindTag: raw.Kind,
		Span:    source.Span{Start: raw.Span.Start, End: raw.Span.End},
	}
	index[n.ID] = n
	for _, c := range raw.Children {
		if c.Node == nil {
			continue
		}
		n.Children = append(n.Children, Child{Role: c.Role, Node: decodeNode(c.Node, index)})
	}
	return n
}
