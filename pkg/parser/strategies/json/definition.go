// Package json extracts string keys and values from JSON documents.
package json

import (
	"context"
	stdjson "encoding/json"
	"errors"
	"fmt"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

const kindStringContent = "string_content"

// ErrInvalidJSON is returned for documents that are not valid JSON.
var ErrInvalidJSON = errors.New("json: invalid document")

func NewDefinition() *framework.Definition {
	return &framework.Definition{
		Name:       domain.LanguageJSON,
		Detections: []string{"*.json"},
		Mode:       framework.Custom{Parse: Parse},
	}
}

// Parse validates source and returns the raw bytes between the quotes of every string.
// Escape sequences are kept as written so offsets match the file.
func Parse(ctx context.Context, source []byte) (parser.Parsed, error) {
	if !stdjson.Valid(source) {
		var v any
		if err := stdjson.Unmarshal(source, &v); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
		}
		return nil, ErrInvalidJSON
	}

	return parser.ParsedStrings(scanStrings(source)), nil
}

// scanStrings expects valid JSON: outside of strings a quote always opens one.
func scanStrings(source []byte) []domain.LintableString {
	var found []domain.LintableString

	for i := 0; i < len(source); i++ {
		if source[i] != '"' {
			continue
		}

		start := i + 1
		end := start
		for end < len(source) && source[end] != '"' {
			if source[end] == '\\' {
				end++
			}
			end++
		}
		if end > len(source) {
			end = len(source)
		}

		found = append(found, domain.LintableString{
			Kind:   kindStringContent,
			Offset: start,
			Value:  string(source[start:end]),
		})
		i = end
	}

	return found
}
