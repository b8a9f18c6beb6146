package library

import (
	"context"
	"errors"
	"fmt"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/internal/highlight"
	"github.com/gcbaptista/go-document-reader/internal/render/htmllayer"
	"github.com/gcbaptista/go-document-reader/services"
)

// Highlight marks one occurrence inside the rendered text layer of a page. An occurrence
// that cannot be located is not an error: the layer comes back unchanged with Found false.
func (l *Library) Highlight(ctx context.Context, documentID string, pageNumber int, req services.HighlightRequest) (*services.HighlightResult, error) {
	doc, err := l.catalog.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if pageNumber < 1 || (doc.NumPages > 0 && pageNumber > doc.NumPages) {
		return nil, internalErrors.NewValidationError("page", fmt.Sprintf("must be between 1 and %d", doc.NumPages))
	}

	layer, err := htmllayer.Parse(req.TextLayerHTML, highlight.NewMarker(l.settings.HighlightClass))
	if err != nil {
		return nil, internalErrors.NewValidationError("text_layer_html", err.Error())
	}

	active := &highlight.Active{
		Logger: l.logger.With("document_id", documentID, "page", pageNumber),
	}
	match, err := highlight.Apply(active, req.MatchText, req.OccurrenceIndex, layer.Fragments())
	if err != nil && !errors.Is(err, internalErrors.ErrHighlightNotFound) {
		return nil, err
	}

	out, renderErr := layer.HTML()
	if renderErr != nil {
		return nil, fmt.Errorf("failed to render text layer: %w", renderErr)
	}

	result := &services.HighlightResult{HTML: out}
	if match != nil {
		result.Found = true
		result.Fragments = len(match.Parts())
	}
	return result, nil
}
