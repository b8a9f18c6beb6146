// Package normalize implements the text folding applied to queries, page corpora and
// rendered fragments before any comparison.
//
// Folding collapses whitespace runs to a single space, trims, lower-cases, decomposes to
// NFD and drops the combining diacritical marks block (U+0300..U+036F). Display text keeps
// case and diacritics and only has its whitespace collapsed, so every folded rune remembers
// the source rune it came from. Callers translate match offsets through that mapping instead
// of assuming folding preserves length.
//
// Whitespace is collapsed around what survives folding, so a rune that folds to nothing
// (a lone combining mark) never separates two spaces: "a \u0301 b" folds to "a b",
// not "a  b". Queries, corpora and fragments all fold the same way, so matching is unaffected.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns the folded form of text.
func Normalize(text string) string {
	return Map(text).String()
}

// CollapseWhitespace replaces every whitespace run with a single space and trims the result.
// This is the display form used for matched text and context snippets.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// IsStrippedMark reports whether r belongs to the combining diacritical marks block.
func IsStrippedMark(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}

// Mapping is the folded form of a source string together with, for every folded rune,
// the index of the source rune that produced it.
type Mapping struct {
	source  []rune
	runes   []rune
	origins []int
}

// Map folds text and records where each folded rune came from.
func Map(text string) *Mapping {
	src := []rune(text)
	m := &Mapping{
		source:  src,
		runes:   make([]rune, 0, len(src)),
		origins: make([]int, 0, len(src)),
	}

	pendingSpace := -1
	var buf []rune
	for i, r := range src {
		if unicode.IsSpace(r) {
			// Leading whitespace never produces a space.
			if len(m.runes) > 0 && pendingSpace < 0 {
				pendingSpace = i
			}
			continue
		}

		buf = fold(buf[:0], r)
		if len(buf) == 0 {
			continue
		}
		if pendingSpace >= 0 {
			m.runes = append(m.runes, ' ')
			m.origins = append(m.origins, pendingSpace)
			pendingSpace = -1
		}
		for _, d := range buf {
			m.runes = append(m.runes, d)
			m.origins = append(m.origins, i)
		}
	}
	return m
}

// fold appends the folded runes of r to dst.
func fold(dst []rune, r rune) []rune {
	lower := unicode.ToLower(r)
	if lower < utf8.RuneSelf {
		return append(dst, lower)
	}
	for _, d := range norm.NFD.String(string(lower)) {
		if IsStrippedMark(d) {
			continue
		}
		dst = append(dst, d)
	}
	return dst
}

// String returns the folded text.
func (m *Mapping) String() string {
	return string(m.runes)
}

// Runes returns the folded text as runes. The slice must not be modified.
func (m *Mapping) Runes() []rune {
	return m.runes
}

// Len returns the number of folded runes.
func (m *Mapping) Len() int {
	return len(m.runes)
}

// Source returns the source text as runes. The slice must not be modified.
func (m *Mapping) Source() []rune {
	return m.source
}

// SourceSpan translates the folded rune range [start, end) into a source rune range.
// Diacritical marks that trail the last source rune are included in the span, since
// folding dropped them.
func (m *Mapping) SourceSpan(start, end int) (int, int) {
	if start < 0 || end > len(m.runes) || start >= end {
		return 0, 0
	}
	s := m.origins[start]
	e := m.origins[end-1] + 1
	for e < len(m.source) && IsStrippedMark(m.source[e]) {
		e++
	}
	return s, e
}

// ByteSpan is SourceSpan expressed as byte offsets into the source string.
func (m *Mapping) ByteSpan(start, end int) (int, int) {
	s, e := m.SourceSpan(start, end)
	if s == e {
		return 0, 0
	}
	bs := runesByteLen(m.source[:s])
	return bs, bs + runesByteLen(m.source[s:e])
}

func runesByteLen(rs []rune) int {
	n := 0
	for _, r := range rs {
		n += utf8.RuneLen(r)
	}
	return n
}

// IndexRunes returns the index of the first occurrence of needle in haystack at or after
// from, or -1.
func IndexRunes(haystack, needle []rune, from int) int {
	if len(needle) == 0 || from < 0 {
		return -1
	}
	last := len(haystack) - len(needle)
	for i := from; i <= last; i++ {
		if haystack[i] != needle[0] {
			continue
		}
		if equalRunes(haystack[i:i+len(needle)], needle) {
			return i
		}
	}
	return -1
}

// HasPrefixRunes reports whether s begins with prefix.
func HasPrefixRunes(s, prefix []rune) bool {
	return len(s) >= len(prefix) && equalRunes(s[:len(prefix)], prefix)
}

// HasSuffixRunes reports whether s ends with suffix.
func HasSuffixRunes(s, suffix []rune) bool {
	return len(s) >= len(suffix) && equalRunes(s[len(s)-len(suffix):], suffix)
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
