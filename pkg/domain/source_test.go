package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceFile_Locate(t *testing.T) {
	src := NewSourceFile("main.rs", []byte("fn main() {\n    println!(\"héllo : x\");\n}\n"))

	tests := []struct {
		name   string
		offset int
		want   Location
	}{
		{name: "start of file", offset: 0, want: Location{File: "main.rs", Line: 1, Column: 1}},
		{name: "second line start", offset: 12, want: Location{File: "main.rs", Line: 2, Column: 1}},
		{name: "after multibyte rune", offset: 31, want: Location{File: "main.rs", Line: 2, Column: 19}},
		{name: "clamped past end", offset: 1000, want: Location{File: "main.rs", Line: 4, Column: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, src.Locate(tt.offset))
		})
	}
}

func TestSourceFile_Line(t *testing.T) {
	src := NewSourceFile("a.txt", []byte("first\r\nsecond line\nlast"))

	line, start := src.Line(9)
	assert.Equal(t, "second line", line)
	assert.Equal(t, 7, start)

	line, start = src.Line(2)
	assert.Equal(t, "first", line)
	assert.Equal(t, 0, start)

	line, start = src.Line(21)
	assert.Equal(t, "last", line)
	assert.Equal(t, 19, start)
}

func TestSpan(t *testing.T) {
	s := Span{Offset: 4, Length: 1}

	assert.Equal(t, 5, s.End())
	assert.Equal(t, Span{Offset: 5, Length: 1}, s.Shift(1))
	assert.Equal(t, "(4, 1)", s.String())
}
