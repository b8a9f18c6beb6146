package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gcbaptista/go-document-reader/config"
	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/internal/normalize"
	"github.com/gcbaptista/go-document-reader/model"
	"github.com/gcbaptista/go-document-reader/services"
)

// Service implements full-text search over stored page corpora.
// It fulfills the services.Searcher interface.
type Service struct {
	corpora  services.CorpusLoader
	catalog  services.DocumentLister
	settings *config.Settings
	logger   *slog.Logger
}

var _ services.Searcher = (*Service)(nil)

// NewService creates a new search Service.
func NewService(corpora services.CorpusLoader, catalog services.DocumentLister, settings *config.Settings, logger *slog.Logger) (*Service, error) {
	if corpora == nil {
		return nil, fmt.Errorf("corpus loader cannot be nil")
	}
	if catalog == nil {
		return nil, fmt.Errorf("document lister cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		corpora:  corpora,
		catalog:  catalog,
		settings: settings,
		logger:   logger,
	}, nil
}

// Search returns every occurrence of the query, ordered by document, page and scan order.
//
// When the number of occurrences exceeds the configured cap the result is empty: callers
// never see a silently truncated list. In library-wide searches a corpus that cannot be
// loaded is skipped and reported in the result's diagnostics; for a single document the
// load error is returned.
func (s *Service) Search(ctx context.Context, query services.SearchQuery) (services.SearchResult, error) {
	startTime := time.Now()

	target := normalize.Map(query.Query).Runes()
	if len(target) == 0 {
		return services.SearchResult{}, internalErrors.NewInvalidQueryError(query.Query)
	}

	documentIDs, err := s.scope(ctx, query)
	if err != nil {
		return services.SearchResult{}, err
	}

	counter := &capCounter{limit: int64(s.settings.MaxResults)}
	occurrences := []model.Occurrence{}
	var diagnostics []services.Diagnostic

	for _, documentID := range documentIDs {
		if err := ctx.Err(); err != nil {
			return services.SearchResult{}, err
		}

		corpus, err := s.corpora.Load(documentID)
		if err != nil {
			if !query.LibraryWide() {
				return services.SearchResult{}, err
			}
			s.logger.Warn("skipping document in library-wide search", "document_id", documentID, "error", err)
			diagnostics = append(diagnostics, services.Diagnostic{DocumentID: documentID, Error: err.Error()})
			continue
		}

		found, err := s.scanCorpus(ctx, corpus, target, counter)
		if errors.Is(err, internalErrors.ErrResultCapExceeded) {
			s.logger.Info("search result cap exceeded", "query", query.Query, "document_id", query.DocumentID, "cap", s.settings.MaxResults)
			occurrences = []model.Occurrence{}
			break
		}
		if err != nil {
			return services.SearchResult{}, err
		}
		occurrences = append(occurrences, found...)
	}

	return services.SearchResult{
		Occurrences: occurrences,
		Total:       len(occurrences),
		Took:        time.Since(startTime).Milliseconds(),
		QueryId:     uuid.New().String(),
		Diagnostics: diagnostics,
	}, nil
}

// scope lists the documents a query covers, in catalog order.
func (s *Service) scope(ctx context.Context, query services.SearchQuery) ([]string, error) {
	if !query.LibraryWide() {
		return []string{query.DocumentID}, nil
	}
	docs, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

// scanCorpus scans the pages of corpus in parallel and merges the results in page order.
func (s *Service) scanCorpus(ctx context.Context, corpus *model.PageCorpus, target []rune, counter *capCounter) ([]model.Occurrence, error) {
	perPage := make([][]model.Occurrence, len(corpus.Pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, s.settings.SearchWorkers))
	for i, page := range corpus.Pages {
		i, page := i, page
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			found := ScanPage(corpus.DocumentID, page, target, s.settings.ContextLength)
			if total, exceeded := counter.add(len(found)); exceeded {
				return internalErrors.NewResultCapExceededError(int(counter.limit), int(total))
			}
			perPage[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []model.Occurrence
	for _, found := range perPage {
		merged = append(merged, found...)
	}
	return merged, nil
}

// capCounter is the running occurrence total shared by every page scan of one call.
// A limit of zero or less disables the cap.
type capCounter struct {
	limit int64
	total atomic.Int64
}

func (c *capCounter) add(n int) (int64, bool) {
	total := c.total.Add(int64(n))
	return total, c.limit > 0 && total > c.limit
}
