package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/typocheck/pkg/parser/tspool"
)

// MaxTreeDepth bounds the depth visited by WalkTree.
const MaxTreeDepth = tspool.MaxTreeDepth

// NodeRange returns the byte range covered by node.
func NodeRange(node *sitter.Node) Range {
	return Range{Start: int(node.StartByte()), End: int(node.EndByte())}
}

// NodeText returns the bytes of source covered by node.
// It returns "" when the node does not fit in source.
func NodeText(node *sitter.Node, source []byte) string {
	r := NodeRange(node)
	if r.Start > r.End || r.End > len(source) {
		return ""
	}
	return string(source[r.Start:r.End])
}

// ChildOfType returns the first named child of node with the given type, or nil.
func ChildOfType(node *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// ChildrenOfType returns the named children of node with the given type.
func ChildrenOfType(node *sitter.Node, nodeType string) []*sitter.Node {
	var children []*sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == nodeType {
			children = append(children, child)
		}
	}
	return children
}

// WalkTree visits node and its descendants in preorder, anonymous nodes included.
// The visitor returns false to skip the children of a node.
// Nodes deeper than MaxTreeDepth below node are not visited.
func WalkTree(node *sitter.Node, visitor func(*sitter.Node) bool) {
	cursor := sitter.NewTreeCursor(node)
	defer cursor.Close()

	depth := 0
	for {
		if visitor(cursor.CurrentNode()) && depth < MaxTreeDepth && cursor.GoToFirstChild() {
			depth++
			continue
		}

		for {
			if depth == 0 {
				return
			}
			if cursor.GoToNextSibling() {
				break
			}
			cursor.GoToParent()
			depth--
		}
	}
}
