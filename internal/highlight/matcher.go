package highlight

import (
	"github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/internal/normalize"
)

type scanState int

const (
	scanning scanState = iota
	accumulating
)

// Find returns the candidate with ordinal occurrenceIndex among the occurrences of
// matchText in fragments, in reading order.
//
// It returns a *errors.HighlightNotFoundError when fewer candidates exist. That error is
// expected whenever the renderer's text diverges from the extracted corpus and callers
// should render the page without a highlight.
func Find(matchText string, occurrenceIndex int, fragments []RenderFragment) (HighlightableMatch, error) {
	target := normalize.Map(matchText).Runes()
	if len(target) == 0 {
		return nil, errors.NewInvalidQueryError(matchText)
	}
	if occurrenceIndex < 0 {
		return nil, errors.NewValidationError("occurrence_index", "must be zero or greater")
	}

	var (
		found int
		match HighlightableMatch
	)
	scan(target, fragments, func(candidate HighlightableMatch) bool {
		if found == occurrenceIndex {
			match = candidate
			return true
		}
		found++
		return false
	})
	if match == nil {
		return nil, errors.NewHighlightNotFoundError(matchText, occurrenceIndex, found)
	}
	return match, nil
}

// Candidates returns every occurrence of matchText in fragments, in reading order.
func Candidates(matchText string, fragments []RenderFragment) []HighlightableMatch {
	target := normalize.Map(matchText).Runes()
	if len(target) == 0 {
		return nil
	}
	var all []HighlightableMatch
	scan(target, fragments, func(candidate HighlightableMatch) bool {
		all = append(all, candidate)
		return false
	})
	return all
}

// scan walks fragments and passes each candidate to emit until emit returns true.
// target must already be normalized.
func scan(target []rune, fragments []RenderFragment, emit func(HighlightableMatch) bool) {
	state := scanning
	remaining := target
	var parts []Part

	reset := func() {
		state = scanning
		remaining = target
		parts = nil
	}

	for i := 0; i < len(fragments); {
		fragment := fragments[i]
		raw := fragment.Text()
		mapping := normalize.Map(raw)
		text := mapping.Runes()
		if len(text) == 0 {
			i++
			continue
		}
		part := func(start, end int) Part {
			s, e := mapping.ByteSpan(start, end)
			return Part{Fragment: fragment, Start: s, End: e, Text: raw[s:e]}
		}

		switch state {
		case scanning:
			contained := false
			for pos := normalize.IndexRunes(text, target, 0); pos >= 0; pos = normalize.IndexRunes(text, target, pos+1) {
				contained = true
				if emit(&singleMatch{part: part(pos, pos+len(target))}) {
					return
				}
			}
			if !contained {
				if n := longestSuffixPrefix(text, target); n > 0 {
					parts = []Part{part(len(text)-n, len(text))}
					remaining = trimLeadingSpace(target[n:])
					state = accumulating
				}
			}
			i++

		case accumulating:
			n := longestCommonPrefix(text, remaining)
			if n == 0 {
				// Re-evaluate this fragment from scratch; it may start a new match.
				reset()
				continue
			}
			parts = append(parts, part(0, n))
			remaining = trimLeadingSpace(remaining[n:])
			if len(remaining) == 0 {
				if emit(&multiMatch{parts: parts}) {
					return
				}
				reset()
			}
			i++
		}
	}
}

// longestSuffixPrefix returns the length of the longest proper suffix of text that is
// also a prefix of target.
func longestSuffixPrefix(text, target []rune) int {
	n := len(text)
	if n >= len(target) {
		n = len(target) - 1
	}
	for ; n > 0; n-- {
		if normalize.HasSuffixRunes(text, target[:n]) {
			return n
		}
	}
	return 0
}

// longestCommonPrefix returns the length of the longest prefix of text that is also a
// prefix of remaining.
func longestCommonPrefix(text, remaining []rune) int {
	n := min(len(text), len(remaining))
	for ; n > 0; n-- {
		if normalize.HasPrefixRunes(text, remaining[:n]) {
			return n
		}
	}
	return 0
}

func trimLeadingSpace(rs []rune) []rune {
	for len(rs) > 0 && rs[0] == ' ' {
		rs = rs[1:]
	}
	return rs
}
