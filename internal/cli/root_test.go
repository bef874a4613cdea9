package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rustWithTypo = "fn main() {\n    let a = \"hello : world\";\n}\n"

// project creates files in a temporary directory and makes it the working directory.
func project(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestExecute_ExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		args  []string
		want  int
	}{
		{
			name:  "typos found",
			files: map[string]string{"main.rs": rustWithTypo},
			want:  ExitTypos,
		},
		{
			name:  "clean",
			files: map[string]string{"main.rs": "fn main() {}\n"},
			want:  ExitOK,
		},
		{
			name:  "check-file disabled",
			files: map[string]string{"main.rs": rustWithTypo, "typos.toml": "[type.rust]\ncheck-file = false\n"},
			want:  ExitOK,
		},
		{
			name:  "excluded from the command line",
			files: map[string]string{"vendor/main.rs": rustWithTypo},
			args:  []string{"--exclude", "vendor"},
			want:  ExitOK,
		},
		{
			name:  "unknown format",
			files: map[string]string{"main.rs": rustWithTypo},
			args:  []string{"--format", "xml"},
			want:  ExitError,
		},
		{
			name:  "unknown color",
			files: map[string]string{"main.rs": rustWithTypo},
			args:  []string{"--color", "sometimes"},
			want:  ExitError,
		},
		{
			name:  "mutually exclusive modes",
			files: map[string]string{"main.rs": rustWithTypo},
			args:  []string{"--files", "--strings"},
			want:  ExitError,
		},
		{
			name:  "missing config file",
			files: map[string]string{"main.rs": rustWithTypo},
			args:  []string{"--config", "missing.toml"},
			want:  ExitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project(t, tt.files)
			code, _, _ := execute(t, tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestExecute_Check(t *testing.T) {
	project(t, map[string]string{"src/main.rs": rustWithTypo})

	code, stdout, stderr := execute(t, "--color", "never")
	assert.Equal(t, ExitTypos, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "typocheck::space-before-punctuation-mark")
	assert.Contains(t, stderr, "[src/main.rs:2:19]")
	assert.Contains(t, stderr, "help: remove the space before `:`")
}

func TestExecute_JSON(t *testing.T) {
	project(t, map[string]string{"main.rs": rustWithTypo})

	code, _, stderr := execute(t, "--format", "json", "main.rs")
	assert.Equal(t, ExitTypos, code)

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"filename":"main.rs"`)
	assert.Contains(t, lines[0], `"line":2`)
}

func TestExecute_Files(t *testing.T) {
	project(t, map[string]string{
		"b.rs":       rustWithTypo,
		"a/lib.py":   "x = 1\n",
		"notes.txt":  "plain : text",
		".hidden.rs": rustWithTypo,
	})

	code, stdout, _ := execute(t, "--files", "--sort")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, filepath.Join("a", "lib.py")+"\nb.rs\n", stdout)

	code, stdout, _ = execute(t, "--files", "--sort", "--hidden")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, ".hidden.rs\n"+filepath.Join("a", "lib.py")+"\nb.rs\n", stdout)
}

func TestExecute_Strings(t *testing.T) {
	project(t, map[string]string{"main.rs": rustWithTypo})

	code, stdout, _ := execute(t, "--strings")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "hello : world\n", stdout)
}

func TestExecute_WriteChanges(t *testing.T) {
	dir := project(t, map[string]string{"main.rs": rustWithTypo})

	code, _, stderr := execute(t, "-w", "--color", "never")
	assert.Equal(t, ExitTypos, code, "typos are reported even when fixed")
	assert.Contains(t, stderr, "Invalid space here")

	content, err := os.ReadFile(filepath.Join(dir, "main.rs"))
	require.NoError(t, err)
	assert.Equal(t, "fn main() {\n    let a = \"hello: world\";\n}\n", string(content))

	code, _, _ = execute(t)
	assert.Equal(t, ExitOK, code)
}

func TestExecute_TypeList(t *testing.T) {
	project(t, nil)

	code, stdout, _ := execute(t, "--type-list")
	assert.Equal(t, ExitOK, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Contains(t, lines, "rust: *.rs")
	assert.Contains(t, lines, "markdown: *.md, *.markdown")
	assert.Contains(t, lines, "Cargo.toml: Cargo.toml")
}

func TestExecute_DumpConfig(t *testing.T) {
	dir := project(t, map[string]string{
		"typos.toml": "[default]\nextend-ignore-re = [\"TODO\"]\n",
	})

	code, stdout, _ := execute(t, "--dump-config", "-")
	assert.Equal(t, ExitOK, code)
	assert.Contains(t, stdout, "[files]")
	assert.Contains(t, stdout, `extend-ignore-re = ["TODO"]`)

	out := filepath.Join(dir, "dumped.toml")
	code, stdout, _ = execute(t, "--dump-config", out, "--no-hidden")
	assert.Equal(t, ExitOK, code)
	assert.Empty(t, stdout)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "ignore-hidden = true")
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	on, err := colorEnabled("always", &buf)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = colorEnabled("never", &buf)
	require.NoError(t, err)
	assert.False(t, on)

	on, err = colorEnabled("auto", &buf)
	require.NoError(t, err)
	assert.False(t, on, "a buffer is not a terminal")

	_, err = colorEnabled("rainbow", &buf)
	assert.ErrorIs(t, err, errUnknownColor)
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	logger := newLogger(&bytes.Buffer{}, true)
	assert.Same(t, logger, GetLogger(WithLogger(context.Background(), logger)))
}
