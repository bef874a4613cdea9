// Package javascript extracts string fragments from JavaScript sources.
package javascript

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const nodeStringFragment = "string_fragment"

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageJavaScript,
		Detections: []string{"*.js", "*.mjs", "*.cjs", "*.jsx"},
		Mode: framework.Generic{
			Language:  domain.LanguageJavaScript,
			NodeTypes: []string{nodeStringFragment},
		},
	}
}
