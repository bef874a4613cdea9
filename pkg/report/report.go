// Package report writes scan results to the terminal.
package report

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/lint"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format selects how typos are rendered.
type Format string

const (
	FormatLong Format = "long"
	FormatJSON Format = "json"
)

// ParseFormat parses a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatLong, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Renderer writes one typo.
type Renderer interface {
	Render(w io.Writer, typo lint.Typo) error
}

// NewRenderer returns the renderer of format. Color only applies to FormatLong.
func NewRenderer(format Format, colored bool) (Renderer, error) {
	switch format {
	case FormatLong:
		return NewLongRenderer(colored), nil
	case FormatJSON:
		return JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Sink is a scanner.Reporter writing file paths and strings to out and typos to diag.
// It is safe for concurrent use; each write is done under a lock.
type Sink struct {
	mu       sync.Mutex
	out      io.Writer
	diag     io.Writer
	renderer Renderer
}

// NewSink creates a sink. A nil renderer renders typos with FormatLong without color.
func NewSink(out, diag io.Writer, renderer Renderer) *Sink {
	if renderer == nil {
		renderer = NewLongRenderer(false)
	}
	return &Sink{
		out:      out,
		diag:     diag,
		renderer: renderer,
	}
}

func (s *Sink) ReportFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprintln(s.out, path)
	return err
}

func (s *Sink) ReportString(_ string, str domain.LintableString) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprintln(s.out, str.Value)
	return err
}

func (s *Sink) ReportTypo(typo lint.Typo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.renderer.Render(s.diag, typo)
}
