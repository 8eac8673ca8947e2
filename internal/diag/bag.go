package diag

import (
	"fxsema/internal/source"
)

// Bag is the diagnostics sink passed into every analysis pass.
// It clamps spans against the document length on the way in, so no
// published diagnostic can point outside the source text.
type Bag struct {
	items  []Diagnostic
	docLen uint32
}

func NewBag(docLen uint32) *Bag {
	return &Bag{docLen: docLen}
}

// Add publishes a diagnostic with a clamped span.
func (b *Bag) Add(d Diagnostic) {
	if d.HasSpan {
		d.Span = d.Span.Clamp(b.docLen)
	}
	b.items = append(b.items, d)
}

// Report publishes a coded diagnostic at its default severity.
func (b *Bag) Report(code Code, msg string, span ...source.Span) {
	d := Diagnostic{
		Severity: code.DefaultSeverity(),
		Code:     code,
		Message:  msg,
	}
	if len(span) > 0 {
		d.Span = span[0]
		d.HasSpan = true
	}
	b.Add(d)
}

// HasErrors reports whether at least one diagnostic is an error.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the accumulated diagnostics.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends all diagnostics from another bag, preserving order.
func (b *Bag) Merge(other *Bag) {
	b.items = append(b.items, other.items...)
}

// CountCode returns how many diagnostics carry the given code.
func (b *Bag) CountCode(code Code) int {
	n := 0
	for i := range b.items {
		if b.items[i].Code == code {
			n++
		}
	}
	return n
}
