package lint

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/strategies/all"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLinter_Typos(t *testing.T) {
	source := `fn main() {
    println("{}", "Oh no !");
    let url = "see https://example.com/?q=1 : the docs";
}
`
	path := writeFile(t, "main.rs", source)

	linter, err := LinterFromPath(all.NewRegistry(), path)
	require.NoError(t, err)
	require.NotNil(t, linter)
	assert.Equal(t, domain.LanguageRust, linter.Definition().Name)

	typos, err := linter.Typos(context.Background())
	require.NoError(t, err)

	require.Len(t, typos, 2)
	assert.Equal(t, strings.Index(source, " !"), typos[0].Span().Offset)
	assert.Equal(t, strings.Index(source, " : the"), typos[1].Span().Offset)
	for _, typo := range typos {
		assert.Same(t, linter.Source(), typo.Source())
		assert.Equal(t, byte(' '), source[typo.Span().Offset])
	}
}

func TestLinter_ExtendIgnoreRe(t *testing.T) {
	source := `fn main() {
    let a = "ignored : value";
    let b = "checked : value";
}
`
	path := writeFile(t, "main.rs", source)

	linter, err := LinterFromPath(all.NewRegistry(), path)
	require.NoError(t, err)
	linter.ExtendIgnoreRe([]*regexp.Regexp{regexp.MustCompile(`ignored : \w+`)})

	typos, err := linter.Typos(context.Background())
	require.NoError(t, err)

	require.Len(t, typos, 1)
	assert.Equal(t, strings.Index(source, " : value\";\n}"), typos[0].Span().Offset)
}

func TestLinter_Strings(t *testing.T) {
	path := writeFile(t, "README.md", "# Title\n\nSome text `code` here\n")

	linter, err := LinterFromPath(all.NewRegistry(), path)
	require.NoError(t, err)
	require.NotNil(t, linter)

	strs, err := linter.Strings(context.Background())
	require.NoError(t, err)

	var values []string
	for _, s := range strs {
		values = append(values, s.Value)
	}
	assert.Equal(t, []string{"Title", "Some text ", " here"}, values)
}

func TestLinterFromPath(t *testing.T) {
	t.Run("unsupported file", func(t *testing.T) {
		linter, err := LinterFromPath(all.NewRegistry(), "file.withextensionthatdoesnotexist")
		assert.NoError(t, err)
		assert.Nil(t, linter)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LinterFromPath(all.NewRegistry(), filepath.Join(t.TempDir(), "missing.rs"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeFile(t, "data.json", `{"a": `)

		linter, err := LinterFromPath(all.NewRegistry(), path)
		require.NoError(t, err)

		_, err = linter.Typos(context.Background())
		assert.Error(t, err)
	})
}

type markRule struct{}

func (markRule) Name() string { return "mark" }

func (markRule) Check(b []byte) []Typo {
	return []Typo{NewSpaceBeforePunctuation(0, '!')}
}

func TestNewLinter_CustomRules(t *testing.T) {
	def := all.NewRegistry().Find("main.go")
	require.NotNil(t, def)

	src := domain.NewSourceFile("main.go", []byte("package main\n\nvar s = \"hello world\"\n"))
	typos, err := NewLinter(def, src, markRule{}).Typos(context.Background())
	require.NoError(t, err)

	require.Len(t, typos, 1)
	assert.Equal(t, 22, typos[0].Span().Offset)
}
