package source

import (
	"fmt"
)

// Span is a half-open byte range into the analyzed document.
type Span struct {
	Start uint32 // inclusive
	End   uint32 // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover extends the span to include other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Clamp confines the span to [0, docLen] and enforces Start <= End.
// Every published diagnostic span passes through here.
func (s Span) Clamp(docLen uint32) Span {
	if s.Start > docLen {
		s.Start = docLen
	}
	if s.End > docLen {
		s.End = docLen
	}
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

// Contains reports whether other lies fully inside s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}
