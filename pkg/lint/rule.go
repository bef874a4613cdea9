// Package lint runs typography rules over lintable strings and fixes the typos they find.
package lint

import (
	"github.com/specvital/typocheck/pkg/domain"
)

// Rule checks one lintable string.
// Implementations must be stateless so a single rule can be shared across goroutines.
type Rule interface {
	// Name identifies the rule in logs.
	Name() string
	// Check returns the typos found in b. Spans are relative to b.
	Check(b []byte) []Typo
}

// Typo is a diagnostic produced by a Rule.
type Typo interface {
	// Code is the stable identifier of the diagnostic, e.g. "typocheck::space-before-punctuation-mark".
	Code() string
	Message() string
	// Label annotates the span when the typo is rendered.
	Label() string
	Help() string
	// Span is relative to the checked string until WithSource is called,
	// then absolute within the source file.
	Span() domain.Span
	// Source returns the file the typo was found in, or nil before WithSource.
	Source() *domain.SourceFile
	// WithSource attaches the file and shifts the span by offset.
	// Only the first call shifts the span.
	WithSource(src *domain.SourceFile, offset int)
	Fix() Fix
}

// FixKind tells how a typo can be fixed automatically.
type FixKind int

const (
	// FixNone means the typo has no automated fix.
	FixNone FixKind = iota
	// FixRemove removes Length bytes at Offset.
	FixRemove
)

func (k FixKind) String() string {
	switch k {
	case FixRemove:
		return "remove"
	default:
		return "none"
	}
}

// Fix is an edit against the file a typo was found in.
type Fix struct {
	Kind   FixKind
	Offset int
	Length int
}

// DefaultRules returns the rules enabled by default.
func DefaultRules() []Rule {
	return []Rule{Punctuation{}}
}
