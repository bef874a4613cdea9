package toml

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/typocheck/pkg/domain"
)

func TestParse(t *testing.T) {
	source := "[server]\nname = \"main : server\"\nport = 8080\n"

	parsed, err := NewDefinition().Parse(context.Background(), []byte(source))
	require.NoError(t, err)
	defer parsed.Close()

	assert.Equal(t, []domain.LintableString{
		{Kind: "string", Offset: strings.Index(source, `"main`), Value: `"main : server"`},
	}, parsed.Strings())
}
