package domain

import (
	"bytes"
	"unicode/utf8"
)

// SourceFile is the immutable content of a checked file.
// It is shared by every typo found in the file.
type SourceFile struct {
	// Path is the file path as given by the walker.
	Path string
	// Content holds the bytes that were parsed.
	Content []byte
}

// NewSourceFile creates a source file snapshot.
func NewSourceFile(path string, content []byte) *SourceFile {
	return &SourceFile{
		Path:    path,
		Content: content,
	}
}

// Location is a 1-based line and column position inside a file.
// Column counts runes, not bytes.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Locate converts a byte offset into a Location.
// Offsets past the end of the content are clamped to the end.
func (f *SourceFile) Locate(offset int) Location {
	if offset > len(f.Content) {
		offset = len(f.Content)
	}
	if offset < 0 {
		offset = 0
	}

	before := f.Content[:offset]
	line := bytes.Count(before, []byte{'\n'}) + 1
	lineStart := bytes.LastIndexByte(before, '\n') + 1

	return Location{
		File:   f.Path,
		Line:   line,
		Column: utf8.RuneCount(before[lineStart:]) + 1,
	}
}

// Line returns the text of the line containing offset, without its line terminator,
// together with the byte offset at which the line starts.
func (f *SourceFile) Line(offset int) (string, int) {
	if offset > len(f.Content) {
		offset = len(f.Content)
	}
	if offset < 0 {
		offset = 0
	}

	start := bytes.LastIndexByte(f.Content[:offset], '\n') + 1
	end := bytes.IndexByte(f.Content[offset:], '\n')
	if end < 0 {
		end = len(f.Content)
	} else {
		end += offset
	}

	return string(bytes.TrimSuffix(f.Content[start:end], []byte{'\r'})), start
}
