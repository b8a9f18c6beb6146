// Package testing provides utilities and helpers for testing the document reader.
package testing

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-document-reader/config"
	"github.com/gcbaptista/go-document-reader/internal/library"
	"github.com/gcbaptista/go-document-reader/model"
	"github.com/gcbaptista/go-document-reader/services"
)

// PageExtractor is a services.Extractor for tests. It reads its input as plain text
// pages separated by form feeds, so tests can ingest documents without real PDFs.
type PageExtractor struct {
	Title  string
	Author string
	Err    error // Returned by every call when set
}

var _ services.Extractor = (*PageExtractor)(nil)

// FakePDF builds input for PageExtractor.
func FakePDF(pages ...string) []byte {
	return []byte(strings.Join(pages, "\f"))
}

func (e *PageExtractor) pages(r io.ReaderAt, size int64) ([]string, error) {
	data, err := io.ReadAll(io.NewSectionReader(r, 0, size))
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\f"), nil
}

func (e *PageExtractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (*model.Extraction, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	pages, err := e.pages(r, size)
	if err != nil {
		return nil, err
	}
	return &model.Extraction{NumPages: len(pages), Pages: pages}, nil
}

func (e *PageExtractor) Metadata(r io.ReaderAt, size int64) (string, string, int, error) {
	if e.Err != nil {
		return "", "", 0, e.Err
	}
	pages, err := e.pages(r, size)
	if err != nil {
		return "", "", 0, err
	}
	return e.Title, e.Author, len(pages), nil
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateTestSettings returns settings rooted in a fresh temporary directory.
func CreateTestSettings(t *testing.T) *config.Settings {
	t.Helper()
	settings := &config.Settings{DataDir: t.TempDir()}
	settings.ApplyDefaults()
	return settings
}

// CreateTestLibrary opens a library over a temporary directory with a PageExtractor,
// closing it when the test ends.
func CreateTestLibrary(t *testing.T, settings *config.Settings) *library.Library {
	t.Helper()
	if settings == nil {
		settings = CreateTestSettings(t)
	}
	lib, err := library.Open(settings, library.Deps{
		Extractor: &PageExtractor{},
		Logger:    DiscardLogger(),
	})
	require.NoError(t, err, "Failed to open test library")
	t.Cleanup(func() { _ = lib.Close() })
	return lib
}

// IngestPages ingests a document whose pages are the given texts.
func IngestPages(t *testing.T, lib services.DocumentLibrary, title string, pages ...string) *model.Document {
	t.Helper()
	doc, err := lib.Ingest(context.Background(), services.IngestRequest{
		Filename: title + ".pdf",
		Title:    title,
		Content:  bytes.NewReader(FakePDF(pages...)),
	})
	require.NoError(t, err, "Failed to ingest test document")
	return doc
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 10 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJob polls a job until it reaches a terminal status or times out
func WaitForJob(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	t.Helper()
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not finish within %v timeout", jobID, opts.Timeout)
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			if job.Status.IsTerminal() {
				return job
			}
			if opts.LogProgress && job.Progress != nil {
				t.Logf("Job %s progress: %d/%d - %s",
					jobID, job.Progress.Current, job.Progress.Total, job.Progress.Message)
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType, expectedDocumentID string) {
	t.Helper()
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.Equal(t, expectedDocumentID, job.DocumentID, "Job document ID should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}

// SearchTestCase represents a test case for search operations
type SearchTestCase struct {
	Name          string
	Query         services.SearchQuery
	ExpectedCount int
	ExpectedFirst string // Expected matched text of the first occurrence
	ValidateFunc  func(t *testing.T, result *services.SearchResult)
}

// RunSearchTests runs a suite of search tests against a searcher
func RunSearchTests(t *testing.T, searcher services.Searcher, tests []SearchTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result, err := searcher.Search(context.Background(), tt.Query)
			require.NoError(t, err, "Search should not fail")

			assert.Equal(t, tt.ExpectedCount, result.Total, "Result count should match")
			if tt.ExpectedFirst != "" && assert.NotEmpty(t, result.Occurrences) {
				assert.Equal(t, tt.ExpectedFirst, result.Occurrences[0].MatchedText, "First result should match expected")
			}
			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, &result)
			}
		})
	}
}
