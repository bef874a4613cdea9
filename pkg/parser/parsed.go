package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/typocheck/pkg/domain"
)

// Parsed is a file that has been parsed and can yield the strings to check.
// Callers must Close it once done to release the grammar trees.
type Parsed interface {
	// Strings returns the text to check with absolute offsets.
	Strings() []domain.LintableString
	Close()
}

// ParsedNodes is a Parsed backed by grammar nodes.
type ParsedNodes struct {
	source []byte
	nodes  []LintableNode
	trees  []*sitter.Tree
}

// NewParsedNodes creates a Parsed from nodes found in source.
// Trees are closed when the result is closed.
func NewParsedNodes(source []byte, nodes []LintableNode, trees ...*sitter.Tree) *ParsedNodes {
	return &ParsedNodes{
		source: source,
		nodes:  nodes,
		trees:  trees,
	}
}

func (p *ParsedNodes) Strings() []domain.LintableString {
	var strings []domain.LintableString
	for _, node := range p.nodes {
		strings = append(strings, node.Strings(p.source)...)
	}
	return strings
}

func (p *ParsedNodes) Close() {
	for _, tree := range p.trees {
		if tree != nil {
			tree.Close()
		}
	}
	p.trees = nil
}

// ParsedStrings is a Parsed built by a custom extractor that yields strings directly.
type ParsedStrings []domain.LintableString

func (p ParsedStrings) Strings() []domain.LintableString {
	strings := make([]domain.LintableString, 0, len(p))
	for _, s := range p {
		if len(s.Value) > MinLintableLength {
			strings = append(strings, s)
		}
	}
	return strings
}

func (p ParsedStrings) Close() {}
