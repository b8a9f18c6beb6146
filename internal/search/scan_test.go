package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcbaptista/go-document-reader/internal/normalize"
	"github.com/gcbaptista/go-document-reader/model"
)

func TestScanPage(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		query       string
		wantMatches []string
	}{
		{"no match", "nothing here", "absent", nil},
		{"single", "Zacatlán a Amozoc", "zacatlan", []string{"Zacatlán"}},
		{"across line break", "Zacatlán\na Amozoc", "zacatlan a amozoc", []string{"Zacatlán a Amozoc"}},
		{"overlapping", "abababa", "aba", []string{"aba", "aba", "aba"}},
		{"uppercase accented vowels", "ÀÉÎÕÜ", "aeiou", []string{"ÀÉÎÕÜ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := normalize.Map(tt.query).Runes()
			found := ScanPage("doc", model.PageText{PageNumber: 7, Text: tt.text}, target, 50)

			var matches []string
			for i, occ := range found {
				assert.Equal(t, i, occ.OccurrenceIndex)
				assert.Equal(t, 7, occ.PageNumber)
				assert.Equal(t, "doc", occ.DocumentID)
				matches = append(matches, occ.MatchedText)
			}
			assert.Equal(t, tt.wantMatches, matches)
		})
	}
}

func TestContextWindow(t *testing.T) {
	text := []rune("0123456789")

	assert.Equal(t, "...234...", contextWindow(text, 3, 4, 1))
	assert.Equal(t, "0123...", contextWindow(text, 0, 2, 2))
	assert.Equal(t, "...6789", contextWindow(text, 8, 10, 2))
	assert.Equal(t, "0123456789", contextWindow(text, 4, 5, 20))
}
