package java

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const nodeStringFragment = "string_fragment"

// NewDefinition returns the Java definition. Both string literals and text blocks
// expose their text as string fragments.
func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageJava,
		Detections: []string{"*.java"},
		Mode: framework.Generic{
			Language:  domain.LanguageJava,
			NodeTypes: []string{nodeStringFragment},
		},
	}
}
