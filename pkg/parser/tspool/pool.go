// Package tspool resolves tree-sitter grammars and parses sources with them.
//
// Every Parse call uses a fresh parser, so Parse is safe for concurrent use.
// A parser cancelled through its context keeps an internal flag set and fails
// later parses, which rules out reusing parsers.
package tspool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"

	"github.com/specvital/typocheck/pkg/domain"
)

// MaxTreeDepth is the maximum recursion depth when walking AST trees.
const MaxTreeDepth = 1000

var (
	// ErrNoGrammar is returned when a language has no tree-sitter grammar.
	ErrNoGrammar = errors.New("tspool: no grammar for language")
	// ErrNoTree is returned when the parser produced no tree.
	ErrNoTree = errors.New("tspool: parser returned no tree")
)

var (
	grammars map[domain.Language]*sitter.Language
	langOnce sync.Once
)

func initLanguages() {
	langOnce.Do(func() {
		grammars = map[domain.Language]*sitter.Language{
			domain.LanguageC:          c.GetLanguage(),
			domain.LanguageCargoToml:  toml.GetLanguage(),
			domain.LanguageCpp:        cpp.GetLanguage(),
			domain.LanguageCSharp:     csharp.GetLanguage(),
			domain.LanguageGo:         golang.GetLanguage(),
			domain.LanguageJava:       java.GetLanguage(),
			domain.LanguageJavaScript: javascript.GetLanguage(),
			domain.LanguageKotlin:     kotlin.GetLanguage(),
			domain.LanguagePython:     python.GetLanguage(),
			domain.LanguageRuby:       ruby.GetLanguage(),
			domain.LanguageRust:       rust.GetLanguage(),
			domain.LanguageTOML:       toml.GetLanguage(),
			domain.LanguageTSX:        tsx.GetLanguage(),
			domain.LanguageTypeScript: typescript.GetLanguage(),
			domain.LanguageYAML:       yaml.GetLanguage(),
		}
	})
}

// GetLanguage returns the tree-sitter grammar for the given language,
// or nil when the language is not backed by a single grammar (JSON, Markdown).
func GetLanguage(lang domain.Language) *sitter.Language {
	initLanguages()
	return grammars[lang]
}

// Get returns a parser for the given language.
// The returned parser is NOT safe for concurrent use.
// Caller MUST call parser.Close() when done to free resources.
func Get(lang domain.Language) (*sitter.Parser, error) {
	grammar := GetLanguage(lang)
	if grammar == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoGrammar, lang)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	return parser, nil
}

// Parse parses source using a fresh parser.
// Caller MUST call tree.Close() to free resources.
func Parse(ctx context.Context, lang domain.Language, source []byte) (*sitter.Tree, error) {
	parser, err := Get(lang)
	if err != nil {
		return nil, err
	}
	defer parser.Close()

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s failed: %w", lang, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("parse %s failed: %w", lang, ErrNoTree)
	}

	return tree, nil
}
