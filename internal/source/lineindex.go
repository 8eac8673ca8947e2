package source

import "sort"

// LineIndex maps byte offsets in a document to 1-based line and column
// numbers. Built once per document, queried many times.
type LineIndex struct {
	text string
	// starts[i] is the byte offset of the first character of line i+1.
	starts []uint32
}

// NewLineIndex scans the text once and records line starts.
func NewLineIndex(text string) *LineIndex {
	starts := []uint32{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, uint32(i)+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

// Position resolves a byte offset to 1-based line and column. Offsets
// past the end of the document resolve to the last position.
func (ix *LineIndex) Position(offset uint32) (line, col uint32) {
	if offset > uint32(len(ix.text)) {
		offset = uint32(len(ix.text))
	}
	i := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	}) - 1
	return uint32(i) + 1, offset - ix.starts[i] + 1
}

// Line returns the text of a 1-based line without its newline.
func (ix *LineIndex) Line(line uint32) string {
	if line == 0 || int(line) > len(ix.starts) {
		return ""
	}
	start := ix.starts[line-1]
	end := uint32(len(ix.text))
	if int(line) < len(ix.starts) {
		end = ix.starts[line] - 1
	}
	return ix.text[start:end]
}
