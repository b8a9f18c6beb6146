package model

// Occurrence is one located match of a query inside a page corpus.
// OccurrenceIndex counts matches per page in scan order, starting at 0, and is the
// ordinal the highlighter uses to find the same match among rendered fragments.
type Occurrence struct {
	DocumentID      string `json:"document"`
	DocumentTitle   string `json:"documentTitle,omitempty"`
	PageNumber      int    `json:"page"`
	OccurrenceIndex int    `json:"occurrenceIndex"`
	MatchedText     string `json:"text"`    // Original case and diacritics
	Context         string `json:"context"` // Surrounding text, "..." where the window was cut
}
