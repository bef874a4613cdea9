package lint

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/framework"
)

// ignoreFiller replaces the bytes matched by an ignore pattern.
// It is neither a space nor a punctuation mark, so masked text never produces a typo.
const ignoreFiller = 'x'

// Linter checks a single file.
type Linter struct {
	def    *framework.Definition
	source *domain.SourceFile
	rules  []Rule
	ignore []*regexp.Regexp
}

// NewLinter creates a linter for source parsed with def.
// DefaultRules are used when no rule is given.
func NewLinter(def *framework.Definition, source *domain.SourceFile, rules ...Rule) *Linter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Linter{
		def:    def,
		source: source,
		rules:  rules,
	}
}

// LinterFromPath reads path and resolves its language with registry.
// It returns nil without error when the file type is not supported.
func LinterFromPath(registry *framework.Registry, path string, rules ...Rule) (*Linter, error) {
	def := registry.Find(path)
	if def == nil {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return NewLinter(def, domain.NewSourceFile(path, content), rules...), nil
}

// ExtendIgnoreRe adds patterns whose matches are never reported.
func (l *Linter) ExtendIgnoreRe(patterns []*regexp.Regexp) {
	l.ignore = append(l.ignore, patterns...)
}

// Definition returns the language definition the file is parsed with.
func (l *Linter) Definition() *framework.Definition {
	return l.def
}

// Source returns the checked file.
func (l *Linter) Source() *domain.SourceFile {
	return l.source
}

// Strings returns the lintable strings of the file.
func (l *Linter) Strings(ctx context.Context) ([]domain.LintableString, error) {
	parsed, err := l.def.Parse(ctx, l.source.Content)
	if err != nil {
		return nil, err
	}
	defer parsed.Close()

	return parsed.Strings(), nil
}

// Typos runs every rule over every lintable string and returns the typos
// with spans absolute within the file.
func (l *Linter) Typos(ctx context.Context) ([]Typo, error) {
	strings, err := l.Strings(ctx)
	if err != nil {
		return nil, err
	}

	var typos []Typo
	for _, s := range strings {
		value := l.mask([]byte(s.Value))
		for _, rule := range l.rules {
			for _, typo := range rule.Check(value) {
				typo.WithSource(l.source, s.Offset)
				typos = append(typos, typo)
			}
		}
	}
	return typos, nil
}

// mask overwrites the matches of the ignore patterns, keeping the length of b.
func (l *Linter) mask(b []byte) []byte {
	for _, re := range l.ignore {
		for _, loc := range re.FindAllIndex(b, -1) {
			for i := loc[0]; i < loc[1]; i++ {
				b[i] = ignoreFiller
			}
		}
	}
	return b
}
