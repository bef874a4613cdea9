// Package csharp extracts the content of C# string literals.
package csharp

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const (
	nodeStringLiteralContent  = "string_literal_content"
	nodeStringLiteralFragment = "string_literal_fragment"
	// nodeStringContent appears inside interpolated strings.
	nodeStringContent = "string_content"
)

// NewDefinition returns the C# definition.
// Verbatim strings (@"...") are single tokens without content children, so they are skipped.
func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageCSharp,
		Detections: []string{"*.cs"},
		Mode: framework.Generic{
			Language: domain.LanguageCSharp,
			NodeTypes: []string{
				nodeStringLiteralContent,
				nodeStringLiteralFragment,
				nodeStringContent,
			},
		},
	}
}
