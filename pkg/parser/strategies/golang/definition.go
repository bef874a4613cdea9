// Package golang extracts interpreted string literals from Go sources.
// Raw string literals (backquoted) usually hold patterns or templates and are not checked.
package golang

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const nodeInterpretedStringLiteral = "interpreted_string_literal"

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageGo,
		Detections: []string{"*.go"},
		Mode: framework.Generic{
			Language:  domain.LanguageGo,
			NodeTypes: []string{nodeInterpretedStringLiteral},
		},
	}
}
