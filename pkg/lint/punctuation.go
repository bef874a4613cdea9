package lint

import (
	"bytes"
	"fmt"

	"github.com/specvital/typocheck/pkg/domain"
)

const (
	CodeSpaceBeforePunctuation    = "typocheck::space-before-punctuation-mark"
	MessageSpaceBeforePunctuation = "In English typography there is no space before a punctuation mark"
	LabelSpaceBeforePunctuation   = "Invalid space here"
)

// Marks that must not be preceded by a space.
const (
	markColon       = ':'
	markExclamation = '!'
	markQuestion    = '?'
	markInterrobang = '‽'
	markInverted    = '⸘'
)

var (
	interrobang         = []byte(string(markInterrobang))
	invertedInterrobang = []byte(string(markInverted))
)

// Words that follow ` !` or ` ?` in code rather than prose.
var (
	exclamationKeywords = [][]byte{[]byte("Send"), []byte("Sync"), []byte("defined(")}
	questionKeywords    = [][]byte{[]byte("Sized")}
)

// testOperators are the single letter options of test(1) that may follow `! -`.
const testOperators = "bcdefghGkLNOprsStuwx"

// SpaceBeforePunctuation reports a space put before a punctuation mark.
type SpaceBeforePunctuation struct {
	span    domain.Span
	mark    rune
	src     *domain.SourceFile
	rebased bool
}

// NewSpaceBeforePunctuation creates a typo for the space at offset, which precedes mark.
func NewSpaceBeforePunctuation(offset int, mark rune) *SpaceBeforePunctuation {
	return &SpaceBeforePunctuation{
		span: domain.Span{Offset: offset, Length: 1},
		mark: mark,
	}
}

func (t *SpaceBeforePunctuation) Code() string    { return CodeSpaceBeforePunctuation }
func (t *SpaceBeforePunctuation) Message() string { return MessageSpaceBeforePunctuation }
func (t *SpaceBeforePunctuation) Label() string   { return LabelSpaceBeforePunctuation }

func (t *SpaceBeforePunctuation) Help() string {
	return fmt.Sprintf("remove the space before `%c`", t.mark)
}

func (t *SpaceBeforePunctuation) Mark() rune                 { return t.mark }
func (t *SpaceBeforePunctuation) Span() domain.Span          { return t.span }
func (t *SpaceBeforePunctuation) Source() *domain.SourceFile { return t.src }

func (t *SpaceBeforePunctuation) WithSource(src *domain.SourceFile, offset int) {
	t.src = src
	if t.rebased {
		return
	}
	t.span = t.span.Shift(offset)
	t.rebased = true
}

func (t *SpaceBeforePunctuation) Fix() Fix {
	return Fix{Kind: FixRemove, Offset: t.span.Offset, Length: t.span.Length}
}

// Punctuation finds spaces put before `:`, `!`, `?`, `‽` and `⸘`.
//
// The scan goes left to right without overlap. The offending space always has
// a byte before it, so a string starting with a space never matches.
type Punctuation struct{}

func (Punctuation) Name() string { return "space-before-punctuation" }

func (Punctuation) Check(b []byte) []Typo {
	var typos []Typo

	pos := 0
	for pos < len(b) {
		space, mark, end, ok := matchAt(b, pos)
		if !ok {
			pos++
			continue
		}
		typos = append(typos, NewSpaceBeforePunctuation(space, mark))
		pos = end
	}

	return typos
}

// matchAt tries every mark at pos and returns the offset of the offending space,
// the mark and the offset right after it.
func matchAt(b []byte, pos int) (space int, mark rune, end int, ok bool) {
	if end, ok = colon(b, pos); ok {
		return pos + 1, markColon, end, true
	}
	if end, ok = exclamation(b, pos); ok {
		return pos + 1, markExclamation, end, true
	}
	if end, ok = question(b, pos); ok {
		return pos + 1, markQuestion, end, true
	}
	if pos == 0 {
		return 0, 0, 0, false
	}
	if end, ok = spaceThen(b, pos, interrobang); ok {
		return pos, markInterrobang, end, true
	}
	if end, ok = spaceThen(b, pos, invertedInterrobang); ok {
		return pos, markInverted, end, true
	}
	return 0, 0, 0, false
}

// precededSpace matches `<c> <mark>` at pos where c is not in forbidden.
func precededSpace(b []byte, pos int, mark byte, forbidden string) (int, bool) {
	if pos+2 >= len(b) {
		return 0, false
	}
	if bytes.IndexByte([]byte(forbidden), b[pos]) >= 0 {
		return 0, false
	}
	if b[pos+1] != ' ' || b[pos+2] != mark {
		return 0, false
	}
	return pos + 3, true
}

func colon(b []byte, pos int) (int, bool) {
	end, ok := precededSpace(b, pos, markColon, " >")
	if !ok {
		return 0, false
	}
	// `:fire:` or `:)`
	if end < len(b) && b[end] != ' ' {
		return 0, false
	}
	return end, true
}

func exclamation(b []byte, pos int) (int, bool) {
	end, ok := precededSpace(b, pos, markExclamation, " &=>|")
	if !ok {
		return 0, false
	}

	rest := b[end:]
	if len(rest) > 0 && (rest[0] == '=' || rest[0] == '(') {
		return 0, false
	}
	if hasAnyPrefix(rest, exclamationKeywords) {
		return 0, false
	}
	// `[ ! -e /some/file ]`
	if len(rest) >= 3 && rest[0] == ' ' && rest[1] == '-' && bytes.IndexByte([]byte(testOperators), rest[2]) >= 0 {
		return 0, false
	}
	return end, true
}

func question(b []byte, pos int) (int, bool) {
	end, ok := precededSpace(b, pos, markQuestion, " ")
	if !ok {
		return 0, false
	}

	rest := b[end:]
	if hasAnyPrefix(rest, questionKeywords) {
		return 0, false
	}
	// `?1` in SQL or `?param=2` in a URL
	if len(rest) > 0 && isDigit(rest[0]) {
		return 0, false
	}
	n := 0
	for n < len(rest) && isAlphanumeric(rest[n]) {
		n++
	}
	if n > 0 && n < len(rest) && rest[n] == '=' {
		return 0, false
	}
	return end, true
}

func spaceThen(b []byte, pos int, mark []byte) (int, bool) {
	if pos >= len(b) || b[pos] != ' ' || !bytes.HasPrefix(b[pos+1:], mark) {
		return 0, false
	}
	return pos + 1 + len(mark), true
}

func hasAnyPrefix(b []byte, prefixes [][]byte) bool {
	for _, p := range prefixes {
		if bytes.HasPrefix(b, p) {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphanumeric(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
