// Package typescript extracts string fragments from TypeScript sources.
package typescript

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const nodeStringFragment = "string_fragment"

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageTypeScript,
		Detections: []string{"*.ts", "*.mts", "*.cts"},
		Mode: framework.Generic{
			Language:  domain.LanguageTypeScript,
			NodeTypes: []string{nodeStringFragment},
		},
	}
}
