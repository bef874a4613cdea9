package parser

import (
	"context"
	"fmt"
	"slices"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/tspool"
)

// RawStringParents lists node types whose string content is never checked.
// Raw and verbatim literals usually hold regular expressions or patterns.
var RawStringParents = []string{
	"raw_string_literal",
	"verbatim_string_literal",
	"multi_line_string_literal",
}

// QuerySpec configures query based extraction.
type QuerySpec struct {
	// Pattern is the tree-sitter query.
	Pattern string
	// IgnoreCaptures lists capture names that suppress their node.
	// A node captured under one of these names is never emitted,
	// even when another capture of the same node is not ignored.
	IgnoreCaptures []string
	// IgnoreChildren lists child node types carved out of emitted nodes.
	IgnoreChildren []string
}

// ParseGeneric parses source and keeps every node whose type is in kinds.
func ParseGeneric(ctx context.Context, lang domain.Language, source []byte, kinds []string) (Parsed, error) {
	tree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		return nil, err
	}

	nodes := GenericNodes(tree.RootNode(), kinds)
	return NewParsedNodes(source, nodes, tree), nil
}

// GenericNodes walks root in preorder and returns the nodes whose type is in kinds,
// longer than MinLintableLength, and not nested directly in a raw string literal.
func GenericNodes(root *sitter.Node, kinds []string) []LintableNode {
	var nodes []LintableNode

	WalkTree(root, func(node *sitter.Node) bool {
		if int(node.EndByte()-node.StartByte()) <= MinLintableLength {
			return true
		}
		if !slices.Contains(kinds, node.Type()) {
			return true
		}
		if parent := node.Parent(); parent != nil && slices.Contains(RawStringParents, parent.Type()) {
			return true
		}

		nodes = append(nodes, NewLintableNode(node))
		return true
	})

	return nodes
}

type nodeKey struct {
	start uint32
	end   uint32
	kind  string
}

func keyOf(node *sitter.Node) nodeKey {
	return nodeKey{start: node.StartByte(), end: node.EndByte(), kind: node.Type()}
}

// ParseQuery parses source and keeps the nodes captured by spec.Pattern.
func ParseQuery(ctx context.Context, lang domain.Language, source []byte, spec QuerySpec) (Parsed, error) {
	tree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		return nil, err
	}

	nodes, err := QueryNodes(tree.RootNode(), source, lang, spec)
	if err != nil {
		tree.Close()
		return nil, err
	}

	return NewParsedNodes(source, nodes, tree), nil
}

// QueryNodes runs spec against root. Suppression does not depend on the
// order in which captures are produced.
func QueryNodes(root *sitter.Node, source []byte, lang domain.Language, spec QuerySpec) ([]LintableNode, error) {
	captures, err := tspool.QueryCaptures(root, source, lang, spec.Pattern)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", lang, err)
	}

	suppressed := make(map[nodeKey]bool)
	for _, capture := range captures {
		if slices.Contains(spec.IgnoreCaptures, capture.Name) {
			suppressed[keyOf(capture.Node)] = true
		}
	}

	var nodes []LintableNode
	emitted := make(map[nodeKey]bool)
	for _, capture := range captures {
		key := keyOf(capture.Node)
		if suppressed[key] || emitted[key] {
			continue
		}
		if int(capture.Node.EndByte()-capture.Node.StartByte()) <= MinLintableLength {
			continue
		}
		emitted[key] = true

		node := NewLintableNode(capture.Node)
		if len(spec.IgnoreChildren) > 0 {
			node = node.IgnoreChildren(capture.Node, func(child *sitter.Node) bool {
				return slices.Contains(spec.IgnoreChildren, child.Type())
			})
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}
