package search

import (
	"github.com/gcbaptista/go-document-reader/internal/normalize"
	"github.com/gcbaptista/go-document-reader/model"
)

const ellipsis = "..."

// ScanPage returns every occurrence of target in page, in scan order. target must already
// be normalized. Scanning resumes one rune after each hit, so overlapping occurrences are
// all reported.
//
// MatchedText and Context are cut from the whitespace-collapsed page text, keeping the
// original case and diacritics. contextLength is the number of runes kept on each side.
func ScanPage(documentID string, page model.PageText, target []rune, contextLength int) []model.Occurrence {
	if len(target) == 0 {
		return nil
	}
	display := normalize.CollapseWhitespace(page.Text)
	mapping := normalize.Map(display)
	haystack := mapping.Runes()
	source := mapping.Source()

	var occurrences []model.Occurrence
	for pos := normalize.IndexRunes(haystack, target, 0); pos >= 0; pos = normalize.IndexRunes(haystack, target, pos+1) {
		start, end := mapping.SourceSpan(pos, pos+len(target))
		occurrences = append(occurrences, model.Occurrence{
			DocumentID:      documentID,
			PageNumber:      page.PageNumber,
			OccurrenceIndex: len(occurrences),
			MatchedText:     string(source[start:end]),
			Context:         contextWindow(source, start, end, contextLength),
		})
	}
	return occurrences
}

// contextWindow returns text[start:end] widened by up to width runes on each side, with an
// ellipsis on every side that stops short of the text boundary.
func contextWindow(text []rune, start, end, width int) string {
	from := max(0, start-width)
	to := min(len(text), end+width)

	window := string(text[from:to])
	if from > 0 {
		window = ellipsis + window
	}
	if to < len(text) {
		window += ellipsis
	}
	return window
}
