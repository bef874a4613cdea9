// Package yaml extracts plain and quoted scalars from YAML documents.
package yaml

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const (
	nodeStringScalar      = "string_scalar"
	nodeDoubleQuoteScalar = "double_quote_scalar"
	nodeSingleQuoteScalar = "single_quote_scalar"
)

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageYAML,
		Detections: []string{"*.yml", "*.yaml"},
		Mode: framework.Generic{
			Language:  domain.LanguageYAML,
			NodeTypes: []string{nodeStringScalar, nodeDoubleQuoteScalar, nodeSingleQuoteScalar},
		},
	}
}
