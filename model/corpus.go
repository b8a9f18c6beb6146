package model

// PageText is the extracted plain text of one page, in rendering order.
type PageText struct {
	PageNumber int    `json:"page"` // 1-based
	Text       string `json:"content"`
}

// PageCorpus is the ordered sequence of page texts for one document.
// It is produced once at ingestion and never modified afterwards.
type PageCorpus struct {
	DocumentID string     `json:"document_id"`
	Pages      []PageText `json:"pages"`
	Checksum   uint64     `json:"checksum"` // xxhash64 over the page texts, set by the corpus store
}

// NewPageCorpus builds a corpus from per-page texts, numbering pages from 1.
func NewPageCorpus(documentID string, pages []string) *PageCorpus {
	corpus := &PageCorpus{
		DocumentID: documentID,
		Pages:      make([]PageText, len(pages)),
	}
	for i, text := range pages {
		corpus.Pages[i] = PageText{PageNumber: i + 1, Text: text}
	}
	return corpus
}

// Extraction is the result of turning a document binary into per-page text.
type Extraction struct {
	NumPages int      `json:"num_pages"`
	Pages    []string `json:"pages"`
}
