package kotlin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/typocheck/pkg/domain"
)

func TestNewDefinition(t *testing.T) {
	def := NewDefinition()

	assert.Equal(t, domain.LanguageKotlin, def.Name)
	assert.Contains(t, def.Detections, "*.kts")
}

func TestParse_OffsetsPointIntoSource(t *testing.T) {
	source := []byte("fun main() {\n    val name = \"abcdef\"\n    println(\"Hello, World! (${name}s) ghijkl\")\n}\n")

	parsed, err := NewDefinition().Parse(context.Background(), source)
	require.NoError(t, err)
	defer parsed.Close()

	for _, s := range parsed.Strings() {
		require.LessOrEqual(t, s.Offset+len(s.Value), len(source))
		assert.Equal(t, s.Value, string(source[s.Offset:s.Offset+len(s.Value)]))
		assert.Greater(t, len(s.Value), 3)
	}
}
