// Package python extracts string literals from Python sources with a query.
//
// Module, class and function docstrings are captured under their own name and
// never checked. Interpolated expressions of f-strings are carved out of the text.
package python

import (
	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const (
	captureDocstring  = "docstring"
	nodeInterpolation = "interpolation"
)

// stringsQuery captures module, class and function docstrings before any string.
const stringsQuery = `
(module . (expression_statement (string) @docstring))
(class_definition body: (block . (expression_statement (string) @docstring)))
(function_definition body: (block . (expression_statement (string) @docstring)))
(string) @string
`

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguagePython,
		Detections: []string{"*.py", "*.pyi"},
		Mode: framework.Query{
			Language: domain.LanguagePython,
			Spec: parser.QuerySpec{
				Pattern:        stringsQuery,
				IgnoreCaptures: []string{captureDocstring},
				IgnoreChildren: []string{nodeInterpolation},
			},
		},
	}
}
