package services

import (
	"context"
	"io"
	"time"

	"github.com/gcbaptista/go-document-reader/internal/jobs"
	"github.com/gcbaptista/go-document-reader/model"
)

// SearchQuery is a full-text query over one document or the whole library.
type SearchQuery struct {
	Query      string `json:"query"`
	DocumentID string `json:"document_id,omitempty"` // Empty searches every document
}

// LibraryWide reports whether the query spans every document.
func (q SearchQuery) LibraryWide() bool {
	return q.DocumentID == ""
}

// Diagnostic records a document that was skipped during a library-wide search.
type Diagnostic struct {
	DocumentID string `json:"document_id"`
	Error      string `json:"error"`
}

type SearchResult struct {
	Occurrences []model.Occurrence `json:"results"`
	Total       int                `json:"total"`
	Took        int64              `json:"took"`     // milliseconds
	QueryId     string             `json:"query_id"` // unique UUID for this search query
	Diagnostics []Diagnostic       `json:"diagnostics,omitempty"`
}

// HighlightRequest asks for one occurrence to be marked inside a rendered text layer.
type HighlightRequest struct {
	TextLayerHTML   string `json:"text_layer_html"`
	MatchText       string `json:"match_text"`
	OccurrenceIndex int    `json:"occurrence_index"`
}

// HighlightResult is the text layer after highlighting. When Found is false, HTML is the
// unchanged layer.
type HighlightResult struct {
	Found     bool   `json:"found"`
	HTML      string `json:"html"`
	Fragments int    `json:"fragments"` // Fragments participating in the match
}

// IngestRequest describes an uploaded document binary.
type IngestRequest struct {
	Filename      string
	Title         string // Falls back to the PDF info title, then the file name
	Author        string
	PublishedDate *time.Time
	Content       io.Reader
}

// Identification is the metadata guessed from a document without ingesting it.
type Identification struct {
	Title    string         `json:"title"`
	Author   string         `json:"author,omitempty"`
	FileType model.FileType `json:"file_type"`
	NumPages int            `json:"num_pages"`
}

// CorpusLoader loads a stored page corpus.
type CorpusLoader interface {
	Load(documentID string) (*model.PageCorpus, error)
}

// CorpusStore persists page corpora.
type CorpusStore interface {
	CorpusLoader
	Save(corpus *model.PageCorpus) error
	Delete(documentID string) error
	IDs() ([]string, error)
}

// DocumentLister returns catalog entries in catalog order.
type DocumentLister interface {
	List(ctx context.Context) ([]*model.Document, error)
}

// CatalogStore persists document metadata.
type CatalogStore interface {
	DocumentLister
	Create(ctx context.Context, doc *model.Document) error
	Get(ctx context.Context, documentID string) (*model.Document, error)
	Delete(ctx context.Context, documentID string) error
	Close() error
}

// BinaryStore keeps the original uploaded binaries.
type BinaryStore interface {
	Save(filename string, r io.Reader) (int64, error)
	Open(filename string) (io.ReadCloser, error)
	Path(filename string) string
	Delete(filename string) error
}

// Extractor turns a document binary into per-page text.
type Extractor interface {
	Extract(ctx context.Context, r io.ReaderAt, size int64) (*model.Extraction, error)
	Metadata(r io.ReaderAt, size int64) (title, author string, numPages int, err error)
}

// Searcher runs full-text queries.
type Searcher interface {
	Search(ctx context.Context, query SearchQuery) (SearchResult, error)
}

// JobManager defines operations for managing background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(documentID string, status *model.JobStatus) []*model.Job
}

// DocumentLibrary is everything the HTTP layer and the CLI need from the reader.
type DocumentLibrary interface {
	Searcher
	JobManager
	JobMetrics() jobs.JobMetricsData

	ListDocuments(ctx context.Context) ([]*model.Document, error)
	GetDocument(ctx context.Context, documentID string) (*model.Document, error)
	OpenDocument(ctx context.Context, documentID string) (io.ReadCloser, *model.Document, error)
	DocumentText(ctx context.Context, documentID string) (*model.PageCorpus, error)
	Identify(ctx context.Context, req IngestRequest) (*Identification, error)
	Ingest(ctx context.Context, req IngestRequest) (*model.Document, error)
	IngestAsync(ctx context.Context, req IngestRequest) (jobID string, doc *model.Document, err error)
	DeleteDocument(ctx context.Context, documentID string) error
	DeleteDocumentAsync(ctx context.Context, documentID string) (jobID string, err error)
	Highlight(ctx context.Context, documentID string, pageNumber int, req HighlightRequest) (*HighlightResult, error)
}
