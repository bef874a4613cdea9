package report

import (
	"encoding/json"
	"io"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/lint"
)

// TypoJSON is the JSON form of a typo. One object is written per line.
type TypoJSON struct {
	Code     string      `json:"code"`
	Severity string      `json:"severity"`
	Message  string      `json:"message"`
	Help     string      `json:"help,omitempty"`
	Filename string      `json:"filename"`
	Line     int         `json:"line,omitempty"`
	Column   int         `json:"column,omitempty"`
	Labels   []LabelJSON `json:"labels"`
}

// LabelJSON annotates a byte span of the file.
type LabelJSON struct {
	Label string      `json:"label"`
	Span  domain.Span `json:"span"`
}

// JSONRenderer writes typos as JSON lines.
type JSONRenderer struct{}

func (JSONRenderer) Render(w io.Writer, typo lint.Typo) error {
	out := TypoJSON{
		Code:     typo.Code(),
		Severity: "error",
		Message:  typo.Message(),
		Help:     typo.Help(),
		Labels: []LabelJSON{
			{Label: typo.Label(), Span: typo.Span()},
		},
	}

	if src := typo.Source(); src != nil {
		loc := src.Locate(typo.Span().Offset)
		out.Filename = src.Path
		out.Line = loc.Line
		out.Column = loc.Column
	}

	return json.NewEncoder(w).Encode(out)
}
