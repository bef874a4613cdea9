// Package framework maps file names to language definitions and parses files
// with the extraction strategy each language declares.
package framework

import (
	"context"
	"errors"
	"fmt"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser"
)

// ErrInvalidMode is returned when a definition carries no usable parse mode.
var ErrInvalidMode = errors.New("framework: invalid parse mode")

// Mode is the extraction strategy of a language.
// It is one of Generic, Query or Custom.
type Mode interface {
	mode()
}

// Generic keeps every grammar node whose type is listed in NodeTypes.
type Generic struct {
	Language  domain.Language
	NodeTypes []string
}

// Query keeps the nodes captured by a tree-sitter query.
type Query struct {
	Language domain.Language
	Spec     parser.QuerySpec
}

// CustomParser extracts lintable strings without a generic grammar walk.
type CustomParser func(ctx context.Context, source []byte) (parser.Parsed, error)

// Custom delegates parsing to a language specific function.
type Custom struct {
	Parse CustomParser
}

func (Generic) mode() {}
func (Query) mode()   {}
func (Custom) mode()  {}

// Definition describes one supported language.
// Definitions are immutable once registered.
type Definition struct {
	// Name is unique across a registry, e.g. "rust" or "Cargo.toml".
	Name domain.Language
	// Detections are glob patterns matched against the base name of a file.
	Detections []string
	// Mode is the extraction strategy.
	Mode Mode
}

// Parse extracts the lintable nodes of source.
// A grammar that cannot build a tree fails the whole file.
func (d *Definition) Parse(ctx context.Context, source []byte) (parser.Parsed, error) {
	switch m := d.Mode.(type) {
	case Generic:
		parsed, err := parser.ParseGeneric(ctx, m.Language, source, m.NodeTypes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
		return parsed, nil
	case Query:
		parsed, err := parser.ParseQuery(ctx, m.Language, source, m.Spec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
		return parsed, nil
	case Custom:
		if m.Parse == nil {
			return nil, fmt.Errorf("%s: %w", d.Name, ErrInvalidMode)
		}
		parsed, err := m.Parse(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("%s: %w", d.Name, ErrInvalidMode)
	}
}
