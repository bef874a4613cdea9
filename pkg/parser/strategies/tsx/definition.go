package tsx

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

// NewDefinition returns the TSX definition. JSX text is prose but also markup,
// so only string fragments are checked, as for TypeScript.
func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageTSX,
		Detections: []string{"*.tsx"},
		Mode: framework.Generic{
			Language:  domain.LanguageTSX,
			NodeTypes: []string{"string_fragment"},
		},
	}
}
