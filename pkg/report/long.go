package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/specvital/typocheck/pkg/lint"
)

const tabWidth = 4

// LongRenderer prints a typo with the offending source line and a marker under the span:
//
//	typocheck::space-before-punctuation-mark
//
//	  × In English typography there is no space before a punctuation mark
//	   ╭─[README.md:1:5]
//	 1 │ Note : this
//	   ·     ┬
//	   ·     ╰── Invalid space here
//	   ╰────
//	  help: remove the space before `:`
type LongRenderer struct {
	code   *color.Color
	cross  *color.Color
	gutter *color.Color
	marker *color.Color
	help   *color.Color
}

// NewLongRenderer creates a renderer. Colors are forced on or off, regardless of the terminal.
func NewLongRenderer(colored bool) *LongRenderer {
	r := &LongRenderer{
		code:   color.New(color.FgRed, color.Bold),
		cross:  color.New(color.FgRed),
		gutter: color.New(color.Faint),
		marker: color.New(color.FgMagenta, color.Bold),
		help:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.code, r.cross, r.gutter, r.marker, r.help} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *LongRenderer) Render(w io.Writer, typo lint.Typo) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", r.code.Sprint(typo.Code()))
	fmt.Fprintf(&b, "  %s %s\n", r.cross.Sprint("×"), typo.Message())

	if src := typo.Source(); src != nil {
		span := typo.Span()
		loc := src.Locate(span.Offset)
		text, lineStart := src.Line(span.Offset)

		number := fmt.Sprint(loc.Line)
		pad := strings.Repeat(" ", len(number)+2)
		prefix := text
		if n := span.Offset - lineStart; n >= 0 && n <= len(text) {
			prefix = text[:n]
		}
		indent := strings.Repeat(" ", runewidth.StringWidth(expandTabs(prefix)))

		fmt.Fprintf(&b, "%s%s[%s:%d:%d]\n", pad, r.gutter.Sprint("╭─"), loc.File, loc.Line, loc.Column)
		fmt.Fprintf(&b, " %s %s %s\n", r.gutter.Sprint(number), r.gutter.Sprint("│"), expandTabs(text))
		fmt.Fprintf(&b, "%s%s %s%s\n", pad, r.gutter.Sprint("·"), indent, r.marker.Sprint("┬"))
		fmt.Fprintf(&b, "%s%s %s%s\n", pad, r.gutter.Sprint("·"), indent, r.marker.Sprint("╰── "+typo.Label()))
		fmt.Fprintf(&b, "%s%s\n", pad, r.gutter.Sprint("╰────"))
	}

	if help := typo.Help(); help != "" {
		fmt.Fprintf(&b, "  %s %s\n", r.help.Sprint("help:"), help)
	}
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
