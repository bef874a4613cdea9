// Package kotlin extracts single line string contents from Kotlin sources.
// Multi-line strings are treated like raw strings and skipped.
package kotlin

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const (
	nodeLineStringContent = "line_string_content"
	nodeStringContent     = "string_content"
)

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageKotlin,
		Detections: []string{"*.kt", "*.kts"},
		Mode: framework.Generic{
			Language:  domain.LanguageKotlin,
			NodeTypes: []string{nodeLineStringContent, nodeStringContent},
		},
	}
}
