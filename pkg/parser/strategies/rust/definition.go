// Package rust extracts the content of Rust string literals.
// Raw string literals are skipped by the generic walker.
package rust

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const nodeStringContent = "string_content"

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageRust,
		Detections: []string{"*.rs"},
		Mode: framework.Generic{
			Language:  domain.LanguageRust,
			NodeTypes: []string{nodeStringContent},
		},
	}
}
