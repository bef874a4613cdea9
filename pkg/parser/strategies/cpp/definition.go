// Package cpp extracts the content of C++ string literals.
// Raw strings (R"(...)") expose raw_string_content instead and are never checked.
package cpp

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const nodeStringContent = "string_content"

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageCpp,
		Detections: []string{"*.cpp", "*.cc", "*.cxx", "*.hpp", "*.hh"},
		Mode: framework.Generic{
			Language:  domain.LanguageCpp,
			NodeTypes: []string{nodeStringContent},
		},
	}
}
