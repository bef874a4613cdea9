package ruby

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageRuby,
		Detections: []string{"*.rb"},
		Mode: framework.Generic{
			Language:  domain.LanguageRuby,
			NodeTypes: []string{"string_content"},
		},
	}
}
