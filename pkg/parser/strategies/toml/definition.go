// Package toml extracts string values and quoted keys from TOML documents.
package toml

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const nodeString = "string"

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageTOML,
		Detections: []string{"*.toml"},
		Mode: framework.Generic{
			Language:  domain.LanguageTOML,
			NodeTypes: []string{nodeString},
		},
	}
}
