package c

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageC,
		Detections: []string{"*.c", "*.h"},
		Mode: framework.Generic{
			Language:  domain.LanguageC,
			NodeTypes: []string{"string_content"},
		},
	}
}
