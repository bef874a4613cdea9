package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/typocheck/pkg/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []domain.LintableString
	}{
		{
			name: "code spans and fenced code",
			source: "# Hello\n" +
				"This is a text `with some` code_span in `various` places\n" +
				"```\n" +
				"what about this\n" +
				"```\n" +
				"hello\n",
			want: []domain.LintableString{
				{Kind: "inline", Offset: 2, Value: "Hello"},
				{Kind: "inline", Offset: 8, Value: "This is a text "},
				{Kind: "inline", Offset: 34, Value: " code_span in "},
				{Kind: "inline", Offset: 57, Value: " places"},
				{Kind: "inline", Offset: 89, Value: "hello"},
			},
		},
		{
			name:   "image",
			source: "abc ![link](link)",
			want: []domain.LintableString{
				{Kind: "inline", Offset: 0, Value: "abc "},
			},
		},
		{
			name: "block quotes",
			source: "# Block Quotes\n" +
				"\n" +
				"> Should not be lintable\n" +
				"> > This line as well\n" +
				"> > And this one\n" +
				"\n" +
				"Something else `hmm`\n",
			want: []domain.LintableString{
				{Kind: "inline", Offset: 2, Value: "Block Quotes"},
				{Kind: "inline", Offset: 81, Value: "Something else "},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := NewDefinition().Parse(context.Background(), []byte(tt.source))
			require.NoError(t, err)
			defer parsed.Close()

			assert.Equal(t, tt.want, parsed.Strings())
		})
	}
}

func TestNewDefinition(t *testing.T) {
	def := NewDefinition()

	assert.Equal(t, domain.LanguageMarkdown, def.Name)
	assert.ElementsMatch(t, []string{"*.md", "*.markdown"}, def.Detections)
}
