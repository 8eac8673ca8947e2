package driver

import (
	"fmt"

	"fxsema/internal/diag"
	"fxsema/internal/fx"
	"fxsema/internal/model"
	"fxsema/internal/sema"
	"fxsema/internal/semtype"
	"fxsema/internal/source"
	"fxsema/internal/symbols"
	"fxsema/internal/syntax"
)

// Options configure one analysis run.
type Options struct {
	Profile string
	Entry   string
	Policy  semtype.Policy
}

// Result bundles the serialized model with the raw diagnostic bag.
// Source carries the analyzed document text for formatters that
// resolve spans to line and column positions.
type Result struct {
	Model  *model.Model
	Bag    *diag.Bag
	Source string
}

// Analyze runs the full semantic-analysis pipeline over one decoded
// input document: symbols, technique model, type inference, entry
// resolution, validation, model assembly. The run is synchronous,
// single-threaded and free of I/O.
//
// A panic while walking a structurally broken tree is converted into
// an intentionally empty model: the mandate is to always return
// something, and at that point there is no span context left to
// attach a diagnostic to.
func Analyze(data []byte, opts Options) (res *Result, err error) {
	doc, err := syntax.DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	defer func() {
		if recover() != nil {
			res = &Result{Model: model.Empty(opts.Profile), Bag: diag.NewBag(0)}
			err = nil
		}
	}()

	bag := diag.NewBag(doc.Len())
	republishUpstream(doc, bag)

	table := symbols.Build(doc, bag)
	techniques := fx.Build(doc, table, bag)
	checked := sema.Check(doc, table, bag, opts.Policy)
	entries := sema.ResolveEntry(table, techniques, opts.Profile, opts.Entry, bag)
	for _, ep := range entries {
		sema.ValidateEntry(doc, table, ep, bag)
	}

	m := model.Build(doc, table, checked, entries, techniques, bag, opts.Profile)
	return &Result{Model: m, Bag: bag, Source: doc.Source}, nil
}

// republishUpstream ingests the parser's own diagnostics into the
// analysis stream, preserving their original ids.
func republishUpstream(doc *syntax.Document, bag *diag.Bag) {
	for _, up := range doc.Upstream {
		d := diag.Diagnostic{
			Severity:   diag.ParseSeverity(up.Severity),
			Code:       diag.UpstreamCode,
			Message:    up.Message,
			UpstreamID: up.ID,
		}
		if up.Span != nil {
			d.Span = source.Span{Start: up.Span.Start, End: up.Span.End}
			d.HasSpan = true
		}
		bag.Add(d)
	}
}
