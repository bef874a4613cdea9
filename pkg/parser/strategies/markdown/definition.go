// Package markdown extracts prose from Markdown documents.
//
// Block structure and inline structure are parsed into separate trees.
// Inline content overlapping a block quote is never checked, and within an
// inline node the code spans and images are carved out of the checked text.
package markdown

import (
	"context"
	"fmt"
	"slices"

	sitter "github.com/smacker/go-tree-sitter"
	mdparser "github.com/smacker/go-tree-sitter/markdown"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const (
	nodeBlockQuote = "block_quote"
	nodeInline     = "inline"
	nodeCodeSpan   = "code_span"
	nodeImage      = "image"
)

var ignoredInlineChildren = []string{nodeCodeSpan, nodeImage}

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageMarkdown,
		Detections: []string{"*.md", "*.markdown"},
		Mode:       framework.Custom{Parse: Parse},
	}
}

// Parse builds the block and inline trees of source and returns the inline nodes to check.
func Parse(ctx context.Context, source []byte) (parser.Parsed, error) {
	tree, err := mdparser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse markdown failed: %w", err)
	}
	if tree == nil || tree.BlockTree() == nil {
		return nil, fmt.Errorf("parse markdown failed: no tree")
	}

	trees := append([]*sitter.Tree{tree.BlockTree()}, tree.InlineTrees()...)
	quotes := blockQuoteRanges(tree.BlockTree().RootNode())

	var nodes []parser.LintableNode
	for _, inline := range tree.InlineTrees() {
		if inline == nil {
			continue
		}
		nodes = append(nodes, inlineNodes(inline.RootNode(), quotes)...)
	}

	return parser.NewParsedNodes(source, nodes, trees...), nil
}

func blockQuoteRanges(root *sitter.Node) []parser.Range {
	var ranges []parser.Range
	parser.WalkTree(root, func(node *sitter.Node) bool {
		if node.Type() == nodeBlockQuote {
			ranges = append(ranges, parser.NodeRange(node))
			return false
		}
		return true
	})
	return ranges
}

func inlineNodes(root *sitter.Node, quotes []parser.Range) []parser.LintableNode {
	var nodes []parser.LintableNode
	parser.WalkTree(root, func(node *sitter.Node) bool {
		r := parser.NodeRange(node)
		if slices.ContainsFunc(quotes, r.Intersects) {
			return true
		}
		if r.Len() <= parser.MinLintableLength || node.Type() != nodeInline {
			return true
		}

		lintable := parser.NewLintableNode(node).IgnoreChildren(node, func(child *sitter.Node) bool {
			return slices.Contains(ignoredInlineChildren, child.Type())
		})
		nodes = append(nodes, lintable)
		return true
	})
	return nodes
}
