package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/lint"
)

func typoIn(t *testing.T, path, content string) lint.Typo {
	t.Helper()

	typos := lint.Punctuation{}.Check([]byte(content))
	require.Len(t, typos, 1)
	typos[0].WithSource(domain.NewSourceFile(path, []byte(content)), 0)
	return typos[0]
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{input: "long", want: FormatLong},
		{input: "json", want: FormatJSON},
		{input: "short", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer(FormatLong, false)
	require.NoError(t, err)
	assert.IsType(t, &LongRenderer{}, r)

	r, err = NewRenderer(FormatJSON, true)
	require.NoError(t, err)
	assert.IsType(t, JSONRenderer{}, r)

	_, err = NewRenderer("xml", false)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLongRenderer(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "first line",
			content: "Note : this",
			want: "typocheck::space-before-punctuation-mark\n" +
				"\n" +
				"  × In English typography there is no space before a punctuation mark\n" +
				"   ╭─[README.md:1:5]\n" +
				" 1 │ Note : this\n" +
				"   ·     ┬\n" +
				"   ·     ╰── Invalid space here\n" +
				"   ╰────\n" +
				"  help: remove the space before `:`\n" +
				"\n",
		},
		{
			name:    "wide characters before the span",
			content: "\n\n\n\n\n\n\n\n\n日本 ?",
			want: "typocheck::space-before-punctuation-mark\n" +
				"\n" +
				"  × In English typography there is no space before a punctuation mark\n" +
				"    ╭─[README.md:10:3]\n" +
				" 10 │ 日本 ?\n" +
				"    ·     ┬\n" +
				"    ·     ╰── Invalid space here\n" +
				"    ╰────\n" +
				"  help: remove the space before `?`\n" +
				"\n",
		},
		{
			name:    "tabs are expanded",
			content: "\tgo !",
			want: "typocheck::space-before-punctuation-mark\n" +
				"\n" +
				"  × In English typography there is no space before a punctuation mark\n" +
				"   ╭─[README.md:1:4]\n" +
				" 1 │     go !\n" +
				"   ·       ┬\n" +
				"   ·       ╰── Invalid space here\n" +
				"   ╰────\n" +
				"  help: remove the space before `!`\n" +
				"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := NewLongRenderer(false).Render(&buf, typoIn(t, "README.md", tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestLongRenderer_WithoutSource(t *testing.T) {
	var buf bytes.Buffer
	err := NewLongRenderer(false).Render(&buf, lint.NewSpaceBeforePunctuation(3, ':'))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "typocheck::space-before-punctuation-mark")
	assert.Contains(t, out, "help: remove the space before `:`")
	assert.NotContains(t, out, "╭─[")
}

func TestLongRenderer_Color(t *testing.T) {
	var buf bytes.Buffer
	err := NewLongRenderer(true).Render(&buf, typoIn(t, "a.md", "Note : this"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\x1b[")

	buf.Reset()
	err = NewLongRenderer(false).Render(&buf, typoIn(t, "a.md", "Note : this"))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := JSONRenderer{}
	require.NoError(t, r.Render(&buf, typoIn(t, "src/main.rs", "first\nsecond ‽")))
	require.NoError(t, r.Render(&buf, typoIn(t, "a.md", "x : y")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var got TypoJSON
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, TypoJSON{
		Code:     lint.CodeSpaceBeforePunctuation,
		Severity: "error",
		Message:  lint.MessageSpaceBeforePunctuation,
		Help:     "remove the space before `‽`",
		Filename: "src/main.rs",
		Line:     2,
		Column:   7,
		Labels: []LabelJSON{
			{Label: lint.LabelSpaceBeforePunctuation, Span: domain.Span{Offset: 12, Length: 1}},
		},
	}, got)
}

func TestSink(t *testing.T) {
	var out, diag bytes.Buffer
	sink := NewSink(&out, &diag, JSONRenderer{})

	require.NoError(t, sink.ReportFile("src/main.rs"))
	require.NoError(t, sink.ReportString("src/main.rs", domain.LintableString{Offset: 3, Value: "hello : world"}))
	require.NoError(t, sink.ReportTypo(typoIn(t, "a.md", "x : y")))

	assert.Equal(t, "src/main.rs\nhello : world\n", out.String())
	assert.Contains(t, diag.String(), `"filename":"a.md"`)
}

func TestSink_ConcurrentWritesDoNotInterleave(t *testing.T) {
	var out, diag bytes.Buffer
	sink := NewSink(&out, &diag, nil)
	typo := typoIn(t, "a.md", "Note : this")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sink.ReportTypo(typo)
		}()
	}
	wg.Wait()

	single := new(bytes.Buffer)
	require.NoError(t, NewLongRenderer(false).Render(single, typo))
	assert.Equal(t, strings.Repeat(single.String(), 20), diag.String())
}
