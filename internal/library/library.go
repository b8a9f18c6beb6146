// Package library ties the reader together: catalog, page corpora, stored binaries,
// extraction, search, highlighting and background jobs.
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gcbaptista/go-document-reader/config"
	"github.com/gcbaptista/go-document-reader/internal/catalog"
	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/internal/extract"
	"github.com/gcbaptista/go-document-reader/internal/jobs"
	"github.com/gcbaptista/go-document-reader/internal/search"
	"github.com/gcbaptista/go-document-reader/model"
	"github.com/gcbaptista/go-document-reader/services"
	"github.com/gcbaptista/go-document-reader/store"
)

const dataDirPerm = 0750

// Deps overrides the components a Library would otherwise build from its settings.
// Nil fields get the on-disk defaults.
type Deps struct {
	Catalog   services.CatalogStore
	Corpora   services.CorpusStore
	Binaries  services.BinaryStore
	Extractor services.Extractor
	Logger    *slog.Logger
}

// Library implements services.DocumentLibrary.
type Library struct {
	settings   *config.Settings
	catalog    services.CatalogStore
	corpora    services.CorpusStore
	binaries   services.BinaryStore
	extractor  services.Extractor
	searcher   *search.Service
	jobManager *jobs.Manager
	logger     *slog.Logger
}

var _ services.DocumentLibrary = (*Library)(nil)

// Open validates settings, opens or creates the stores under settings.DataDir and starts
// the job manager. Close releases them.
func Open(settings *config.Settings, deps Deps) (*Library, error) {
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return nil, internalErrors.NewValidationError("settings", strings.Join(problems, "; "))
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(settings.DataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", settings.DataDir, err)
	}

	l := &Library{
		settings:  settings,
		catalog:   deps.Catalog,
		corpora:   deps.Corpora,
		binaries:  deps.Binaries,
		extractor: deps.Extractor,
		logger:    logger,
	}
	if l.catalog == nil {
		catalogStore, err := store.OpenCatalog(settings.CatalogPath())
		if err != nil {
			return nil, err
		}
		l.catalog = catalogStore
	}
	if l.corpora == nil {
		l.corpora = store.NewCorpusStore(settings.CorpusDir())
	}
	if l.binaries == nil {
		l.binaries = store.NewBinaryStore(settings.UploadDir())
	}
	if l.extractor == nil {
		l.extractor = extract.NewPDFExtractor(logger)
	}

	searcher, err := search.NewService(l.corpora, l.catalog, settings, logger)
	if err != nil {
		l.catalog.Close()
		return nil, fmt.Errorf("failed to create search service: %w", err)
	}
	l.searcher = searcher

	l.jobManager = jobs.NewManager(settings.JobWorkers, logger)
	l.jobManager.Start()

	if orphans, err := l.OrphanedCorpora(context.Background()); err != nil {
		logger.Warn("failed to check for orphaned page texts", "error", err)
	} else if len(orphans) > 0 {
		logger.Warn("page texts without a catalog entry", "document_ids", orphans)
	}

	logger.Info("library opened", "data_dir", settings.DataDir)
	return l, nil
}

// Close stops background jobs and closes the catalog.
func (l *Library) Close() error {
	l.jobManager.Stop()
	return l.catalog.Close()
}

// Settings returns the library's effective settings.
func (l *Library) Settings() config.Settings {
	return *l.settings
}

// Search runs query and fills in document titles from the catalog.
func (l *Library) Search(ctx context.Context, query services.SearchQuery) (services.SearchResult, error) {
	result, err := l.searcher.Search(ctx, query)
	if err != nil {
		return services.SearchResult{}, err
	}

	docs, err := l.catalog.List(ctx)
	if err != nil {
		l.logger.Warn("search titles unavailable", "error", err)
	}
	result.Occurrences = catalog.Decorate(result.Occurrences, docs)
	return result, nil
}

// ListDocuments returns the catalog in catalog order.
func (l *Library) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	return l.catalog.List(ctx)
}

// GetDocument returns one catalog entry.
func (l *Library) GetDocument(ctx context.Context, documentID string) (*model.Document, error) {
	return l.catalog.Get(ctx, documentID)
}

// OpenDocument opens the stored binary of a document. The caller closes it.
func (l *Library) OpenDocument(ctx context.Context, documentID string) (io.ReadCloser, *model.Document, error) {
	doc, err := l.catalog.Get(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	r, err := l.binaries.Open(doc.Filename)
	if err != nil {
		return nil, nil, err
	}
	return r, doc, nil
}

// DocumentText returns the extracted page texts of a document.
func (l *Library) DocumentText(ctx context.Context, documentID string) (*model.PageCorpus, error) {
	if _, err := l.catalog.Get(ctx, documentID); err != nil {
		return nil, err
	}
	return l.corpora.Load(documentID)
}

// OrphanedCorpora returns the IDs of stored page corpora that have no catalog entry,
// typically left behind by an interrupted deletion. Searches never see them.
func (l *Library) OrphanedCorpora(ctx context.Context) ([]string, error) {
	ids, err := l.corpora.IDs()
	if err != nil {
		return nil, err
	}
	docs, err := l.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(docs))
	for _, doc := range docs {
		known[doc.ID] = struct{}{}
	}
	orphans := []string{}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			orphans = append(orphans, id)
		}
	}
	return orphans, nil
}

// DeleteDocument removes a document's catalog entry, corpus and binary.
func (l *Library) DeleteDocument(ctx context.Context, documentID string) error {
	doc, err := l.catalog.Get(ctx, documentID)
	if err != nil {
		return err
	}
	return l.deleteDocument(ctx, doc)
}

func (l *Library) deleteDocument(ctx context.Context, doc *model.Document) error {
	// The catalog goes first so that searches stop seeing the document.
	if err := l.catalog.Delete(ctx, doc.ID); err != nil {
		return err
	}
	if err := l.corpora.Delete(doc.ID); err != nil && !errors.Is(err, internalErrors.ErrDocumentNotFound) {
		return err
	}
	if err := l.binaries.Delete(doc.Filename); err != nil {
		return err
	}
	l.logger.Info("document deleted", "document_id", doc.ID)
	return nil
}

// DeleteDocumentAsync deletes a document on the job manager and returns the job ID.
func (l *Library) DeleteDocumentAsync(ctx context.Context, documentID string) (string, error) {
	doc, err := l.catalog.Get(ctx, documentID)
	if err != nil {
		return "", err
	}

	jobID := l.jobManager.CreateJob(model.JobTypeDeleteDocument, documentID, map[string]string{
		"title": doc.Title,
	})
	err = l.jobManager.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error {
		return l.deleteDocument(ctx, doc)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start delete document job: %w", err)
	}
	return jobID, nil
}

// GetJob returns a background job.
func (l *Library) GetJob(jobID string) (*model.Job, error) {
	return l.jobManager.GetJob(jobID)
}

// ListJobs returns background jobs, optionally for one document and status.
func (l *Library) ListJobs(documentID string, status *model.JobStatus) []*model.Job {
	return l.jobManager.ListJobs(documentID, status)
}

// WaitForJob blocks until a job finishes.
func (l *Library) WaitForJob(ctx context.Context, jobID string) (*model.Job, error) {
	return l.jobManager.Wait(ctx, jobID)
}

// JobMetrics returns the job manager's metrics.
func (l *Library) JobMetrics() jobs.JobMetricsData {
	return l.jobManager.GetMetrics()
}
