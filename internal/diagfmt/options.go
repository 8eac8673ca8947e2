package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// ShowSource prints the offending source line with a caret
	// underline beneath each spanned diagnostic.
	ShowSource bool
	// Max truncates the printed list, 0 means unlimited.
	Max int
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col next to byte offsets
	Max              int  // output truncation, the bag is untouched
}
