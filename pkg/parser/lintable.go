package parser

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/typocheck/pkg/domain"
)

// MinLintableLength is the length a string must exceed to be checked.
const MinLintableLength = 3

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Empty reports whether the range covers no byte.
func (r Range) Empty() bool {
	return r.Len() == 0
}

// Intersects reports whether both ranges share at least one byte.
func (r Range) Intersects(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// LintableNode is a grammar node whose text is checked,
// minus the byte ranges of some of its children.
type LintableNode struct {
	// Kind is the grammar node type.
	Kind string
	// Range is the node's byte range in the file.
	Range Range
	// Ignored holds the byte ranges excluded from the node.
	Ignored []Range
}

// NewLintableNode wraps a tree-sitter node with no ignored children.
func NewLintableNode(node *sitter.Node) LintableNode {
	return LintableNode{
		Kind:  node.Type(),
		Range: NodeRange(node),
	}
}

// IgnoreChildren excludes the direct children of node for which ignore returns true.
func (n LintableNode) IgnoreChildren(node *sitter.Node, ignore func(*sitter.Node) bool) LintableNode {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if ignore(child) {
			n.Ignored = append(n.Ignored, NodeRange(child))
		}
	}
	return n
}

// Ranges returns the sub-ranges of the node left once the ignored ranges are carved out.
// The result is ordered, non-overlapping and never contains an empty range.
// Ignored ranges may overlap each other or stick out of the node.
func (n LintableNode) Ranges() []Range {
	if len(n.Ignored) == 0 {
		if n.Range.Empty() {
			return nil
		}
		return []Range{n.Range}
	}

	ignored := make([]Range, len(n.Ignored))
	copy(ignored, n.Ignored)
	sort.SliceStable(ignored, func(i, j int) bool {
		return ignored[i].Start < ignored[j].Start
	})

	var ranges []Range
	cursor := n.Range.Start
	for _, ig := range ignored {
		start := max(ig.Start, n.Range.Start)
		end := min(ig.End, n.Range.End)
		if start >= end {
			continue
		}
		if start > cursor {
			ranges = append(ranges, Range{Start: cursor, End: start})
		}
		cursor = max(cursor, end)
	}

	if cursor < n.Range.End {
		ranges = append(ranges, Range{Start: cursor, End: n.Range.End})
	}

	return ranges
}

// Strings returns the text of every range of the node that is long enough to be checked.
// Ranges outside of source are dropped.
func (n LintableNode) Strings(source []byte) []domain.LintableString {
	var strings []domain.LintableString
	for _, r := range n.Ranges() {
		if r.Len() <= MinLintableLength || r.End > len(source) || r.Start < 0 {
			continue
		}
		strings = append(strings, domain.LintableString{
			Kind:   n.Kind,
			Offset: r.Start,
			Value:  string(source[r.Start:r.End]),
		})
	}
	return strings
}
