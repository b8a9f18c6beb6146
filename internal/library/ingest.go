package library

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/model"
	"github.com/gcbaptista/go-document-reader/services"
)

const ingestSteps = 4

// readUpload reads the whole upload, refusing anything over the configured limit.
func (l *Library) readUpload(req services.IngestRequest) ([]byte, error) {
	if req.Content == nil {
		return nil, internalErrors.NewValidationError("file", "no file uploaded")
	}
	limit := l.settings.MaxUploadBytes
	data, err := io.ReadAll(io.LimitReader(req.Content, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %s: %w", req.Filename, err)
	}
	if int64(len(data)) > limit {
		return nil, internalErrors.NewValidationError("file", fmt.Sprintf("file exceeds the %d byte upload limit", limit))
	}
	if len(data) == 0 {
		return nil, internalErrors.NewValidationError("file", "file is empty")
	}
	return data, nil
}

func baseTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Identify reports the file type of an upload and, for PDFs, its info title, author and
// page count. Nothing is stored.
func (l *Library) Identify(ctx context.Context, req services.IngestRequest) (*services.Identification, error) {
	data, err := l.readUpload(req)
	if err != nil {
		return nil, err
	}

	ident := &services.Identification{
		Title:    baseTitle(req.Filename),
		FileType: model.IdentifyFileType(req.Filename),
	}
	if ident.FileType != model.FileTypePDF {
		return ident, nil
	}

	title, author, numPages, err := l.extractor.Metadata(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, internalErrors.NewExtractionError(req.Filename, err)
	}
	if title != "" {
		ident.Title = title
	}
	ident.Author = author
	ident.NumPages = numPages
	return ident, nil
}

// newDocument reserves an ID for an upload and fills in what is known before extraction.
func (l *Library) newDocument(req services.IngestRequest) (*model.Document, error) {
	fileType := model.IdentifyFileType(req.Filename)
	if fileType != model.FileTypePDF {
		return nil, internalErrors.NewValidationError("file", fmt.Sprintf("unsupported file type %s; only PDF documents can be ingested", fileType))
	}
	id := uuid.New().String()
	return &model.Document{
		ID:               id,
		Title:            strings.TrimSpace(req.Title),
		Author:           strings.TrimSpace(req.Author),
		PublishedDate:    req.PublishedDate,
		Filename:         id + ".pdf",
		OriginalFilename: filepath.Base(req.Filename),
		FileType:         fileType,
	}, nil
}

// Ingest extracts, stores and catalogs an upload, returning its catalog entry.
func (l *Library) Ingest(ctx context.Context, req services.IngestRequest) (*model.Document, error) {
	doc, err := l.newDocument(req)
	if err != nil {
		return nil, err
	}
	data, err := l.readUpload(req)
	if err != nil {
		return nil, err
	}
	if err := l.ingest(ctx, doc, data, func(int, string) {}); err != nil {
		return nil, err
	}
	return doc, nil
}

// IngestAsync validates and buffers an upload, then ingests it on the job manager. The
// returned document carries the reserved ID; it appears in the catalog once the job
// completes.
func (l *Library) IngestAsync(ctx context.Context, req services.IngestRequest) (string, *model.Document, error) {
	doc, err := l.newDocument(req)
	if err != nil {
		return "", nil, err
	}
	data, err := l.readUpload(req)
	if err != nil {
		return "", nil, err
	}

	reserved := *doc
	jobID := l.jobManager.CreateJob(model.JobTypeIngestDocument, doc.ID, map[string]string{
		"filename": doc.OriginalFilename,
	})
	err = l.jobManager.ExecuteJob(jobID, func(ctx context.Context, job model.Job) error {
		return l.ingest(ctx, doc, data, func(step int, message string) {
			l.jobManager.UpdateJobProgress(job.ID, step, ingestSteps, message)
		})
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to start ingest document job: %w", err)
	}
	return jobID, &reserved, nil
}

// ingest writes the binary, the corpus and finally the catalog entry. Partial writes are
// undone when a later step fails.
func (l *Library) ingest(ctx context.Context, doc *model.Document, data []byte, progress func(step int, message string)) (err error) {
	logger := l.logger.With("document_id", doc.ID, "filename", doc.OriginalFilename)
	startTime := time.Now()

	progress(1, "extracting text")
	extraction, err := l.extractor.Extract(ctx, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return internalErrors.NewExtractionError(doc.OriginalFilename, err)
	}
	doc.NumPages = extraction.NumPages

	if doc.Title == "" || doc.Author == "" {
		title, author, _, metaErr := l.extractor.Metadata(bytes.NewReader(data), int64(len(data)))
		if metaErr != nil {
			logger.Debug("pdf info unavailable", "error", metaErr)
		}
		if doc.Title == "" {
			doc.Title = title
		}
		if doc.Author == "" {
			doc.Author = author
		}
	}
	if doc.Title == "" {
		doc.Title = baseTitle(doc.OriginalFilename)
	}

	progress(2, "storing file")
	if _, err := l.binaries.Save(doc.Filename, bytes.NewReader(data)); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = l.binaries.Delete(doc.Filename)
		}
	}()

	progress(3, "storing text")
	if err := l.corpora.Save(model.NewPageCorpus(doc.ID, extraction.Pages)); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = l.corpora.Delete(doc.ID)
		}
	}()

	progress(4, "cataloging")
	if err := l.catalog.Create(ctx, doc); err != nil {
		return err
	}

	logger.Info("document ingested", "pages", doc.NumPages, "duration", time.Since(startTime))
	return nil
}
