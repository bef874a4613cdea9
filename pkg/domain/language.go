// Package domain defines the core types shared by parsers, rules and reporters.
package domain

// Language identifies a file type the checker knows how to extract text from.
// The value doubles as the key of the per-type configuration table.
type Language string

// Supported languages.
const (
	LanguageC          Language = "c"
	LanguageCargoToml  Language = "Cargo.toml"
	LanguageCpp        Language = "cpp"
	LanguageCSharp     Language = "csharp"
	LanguageGo         Language = "go"
	LanguageJava       Language = "java"
	LanguageJavaScript Language = "javascript"
	LanguageJSON       Language = "json"
	LanguageKotlin     Language = "kotlin"
	LanguageMarkdown   Language = "markdown"
	LanguagePython     Language = "python"
	LanguageRuby       Language = "ruby"
	LanguageRust       Language = "rust"
	LanguageTOML       Language = "toml"
	LanguageTSX        Language = "tsx"
	LanguageTypeScript Language = "typescript"
	LanguageYAML       Language = "yaml"
)

// String returns the language name.
func (l Language) String() string {
	return string(l)
}
