// Package all assembles the registry of every supported language.
package all

import (
	"sync"

	"github.com/specvital/typocheck/pkg/parser/framework"
	"github.com/specvital/typocheck/pkg/parser/strategies/c"
	"github.com/specvital/typocheck/pkg/parser/strategies/cargotoml"
	"github.com/specvital/typocheck/pkg/parser/strategies/cpp"
	"github.com/specvital/typocheck/pkg/parser/strategies/csharp"
	"github.com/specvital/typocheck/pkg/parser/strategies/golang"
	"github.com/specvital/typocheck/pkg/parser/strategies/java"
	"github.com/specvital/typocheck/pkg/parser/strategies/javascript"
	"github.com/specvital/typocheck/pkg/parser/strategies/json"
	"github.com/specvital/typocheck/pkg/parser/strategies/kotlin"
	"github.com/specvital/typocheck/pkg/parser/strategies/markdown"
	"github.com/specvital/typocheck/pkg/parser/strategies/python"
	"github.com/specvital/typocheck/pkg/parser/strategies/ruby"
	"github.com/specvital/typocheck/pkg/parser/strategies/rust"
	"github.com/specvital/typocheck/pkg/parser/strategies/toml"
	"github.com/specvital/typocheck/pkg/parser/strategies/tsx"
	"github.com/specvital/typocheck/pkg/parser/strategies/typescript"
	"github.com/specvital/typocheck/pkg/parser/strategies/yaml"
)

var (
	defaultRegistry *framework.Registry
	defaultOnce     sync.Once
)

// Definitions returns a fresh definition of every language in registration order.
// Cargo.toml comes last so that it takes precedence over the generic toml definition.
func Definitions() []*framework.Definition {
	return []*framework.Definition{
		rust.NewDefinition(),
		c.NewDefinition(),
		cpp.NewDefinition(),
		csharp.NewDefinition(),
		kotlin.NewDefinition(),
		golang.NewDefinition(),
		java.NewDefinition(),
		python.NewDefinition(),
		ruby.NewDefinition(),
		toml.NewDefinition(),
		yaml.NewDefinition(),
		json.NewDefinition(),
		javascript.NewDefinition(),
		typescript.NewDefinition(),
		tsx.NewDefinition(),
		markdown.NewDefinition(),
		cargotoml.NewDefinition(),
	}
}

// NewRegistry returns a registry holding every supported language.
func NewRegistry() *framework.Registry {
	r := framework.NewRegistry()
	for _, def := range Definitions() {
		r.Register(def)
	}
	return r
}

// Default returns the process wide registry, built on first use.
func Default() *framework.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}
