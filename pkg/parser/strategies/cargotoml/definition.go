// Package cargotoml checks the description of Rust crate manifests.
//
// Only the description of the [package] and [workspace.package] tables is
// checked, whether written in the table, as a dotted key or in an inline table. The rest of the manifest holds identifiers, versions and paths.
package cargotoml

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser"
	"github.com/specvital/typocheck/pkg/parser/framework"
	"github.com/specvital/typocheck/pkg/parser/tspool"
)

const (
	kindDescription = "description"

	keyDescription = "description"

	nodeTable       = "table"
	nodePair        = "pair"
	nodeBareKey     = "bare_key"
	nodeQuotedKey   = "quoted_key"
	nodeDottedKey   = "dotted_key"
	nodeInlineTable = "inline_table"
	nodeString      = "string"
)

var packageTables = []string{"package", "workspace.package"}

// ErrInvalidManifest is returned for manifests that are not valid TOML.
var ErrInvalidManifest = errors.New("cargotoml: invalid manifest")

type manifest struct {
	Package struct {
		Description any `toml:"description"`
	} `toml:"package"`
	Workspace struct {
		Package struct {
			Description any `toml:"description"`
		} `toml:"package"`
	} `toml:"workspace"`
}

func (m manifest) hasDescription() bool {
	_, pkg := m.Package.Description.(string)
	_, ws := m.Workspace.Package.Description.(string)
	return pkg || ws
}

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageCargoToml,
		Detections: []string{"Cargo.toml"},
		Mode:       framework.Custom{Parse: Parse},
	}
}

// Parse returns the text between the quotes of the package descriptions of source.
func Parse(ctx context.Context, source []byte) (parser.Parsed, error) {
	var m manifest
	if _, err := toml.Decode(string(source), &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	if !m.hasDescription() {
		return parser.ParsedStrings(nil), nil
	}

	tree, err := tspool.Parse(ctx, domain.LanguageCargoToml, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return parser.ParsedStrings(descriptions(tree.RootNode(), source)), nil
}

func descriptions(root *sitter.Node, source []byte) []domain.LintableString {
	var result []domain.LintableString

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case nodePair:
			result = appendDescriptions(result, nil, child, source)
		case nodeTable:
			key := child.NamedChild(0)
			if key == nil {
				continue
			}
			prefix := keyPath(key, source)
			for _, pair := range parser.ChildrenOfType(child, nodePair) {
				result = appendDescriptions(result, prefix, pair, source)
			}
		}
	}

	return result
}

// appendDescriptions adds the description found in pair, following inline tables.
func appendDescriptions(result []domain.LintableString, prefix []string, pair *sitter.Node, source []byte) []domain.LintableString {
	n := int(pair.NamedChildCount())
	if n < 2 {
		return result
	}

	path := append(slices.Clone(prefix), keyPath(pair.NamedChild(0), source)...)
	value := pair.NamedChild(n - 1)

	switch value.Type() {
	case nodeString:
		if !isDescription(path) {
			return result
		}
		if s, ok := stringContent(value, source); ok {
			result = append(result, s)
		}
	case nodeInlineTable:
		for _, inner := range parser.ChildrenOfType(value, nodePair) {
			result = appendDescriptions(result, path, inner, source)
		}
	}

	return result
}

func isDescription(path []string) bool {
	if len(path) < 2 || path[len(path)-1] != keyDescription {
		return false
	}
	return slices.Contains(packageTables, strings.Join(path[:len(path)-1], "."))
}

// keyPath flattens a bare, quoted or dotted key.
func keyPath(key *sitter.Node, source []byte) []string {
	switch key.Type() {
	case nodeBareKey:
		return []string{parser.NodeText(key, source)}
	case nodeQuotedKey:
		return []string{unquoteKey(parser.NodeText(key, source))}
	case nodeDottedKey:
		var path []string
		for i := 0; i < int(key.NamedChildCount()); i++ {
			path = append(path, keyPath(key.NamedChild(i), source)...)
		}
		return path
	default:
		return nil
	}
}

func unquoteKey(text string) string {
	if strings.HasPrefix(text, `"`) {
		if s, err := strconv.Unquote(text); err == nil {
			return s
		}
	}
	return strings.Trim(text, `"'`)
}

// stringContent strips the delimiters of a basic, literal or multi-line string.
func stringContent(node *sitter.Node, source []byte) (domain.LintableString, bool) {
	r := parser.NodeRange(node)
	text := parser.NodeText(node, source)

	quote := 1
	if strings.HasPrefix(text, `"""`) || strings.HasPrefix(text, `'''`) {
		quote = 3
	}
	if len(text) < 2*quote {
		return domain.LintableString{}, false
	}

	return domain.LintableString{
		Kind:   kindDescription,
		Offset: r.Start + quote,
		Value:  text[quote : len(text)-quote],
	}, true
}
