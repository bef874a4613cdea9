package domain

import "fmt"

// Span is a byte range inside a file or an extracted string.
type Span struct {
	// Offset is the first byte of the span.
	Offset int `json:"offset"`
	// Length is the number of bytes covered.
	Length int `json:"length"`
}

// End returns the offset one past the last byte of the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Shift returns the span moved by delta bytes. The length is unchanged.
func (s Span) Shift(delta int) Span {
	return Span{Offset: s.Offset + delta, Length: s.Length}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d, %d)", s.Offset, s.Length)
}

// LintableString is a piece of a file that rules are run against.
type LintableString struct {
	// Kind is the grammar node type the string was extracted from.
	Kind string `json:"kind,omitempty"`
	// Offset is the absolute byte offset of Value within its file.
	Offset int `json:"offset"`
	// Value holds the raw bytes of the string.
	Value string `json:"value"`
}

// Span returns the byte range the string occupies in its file.
func (s LintableString) Span() Span {
	return Span{Offset: s.Offset, Length: len(s.Value)}
}
