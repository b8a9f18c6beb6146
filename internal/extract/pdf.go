// Package extract turns PDF binaries into per-page plain text.
package extract

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/gcbaptista/go-document-reader/model"
	"github.com/gcbaptista/go-document-reader/services"
)

var _ services.Extractor = (*PDFExtractor)(nil)

// PDFExtractor extracts page text with github.com/ledongthuc/pdf.
type PDFExtractor struct {
	logger *slog.Logger
}

// NewPDFExtractor creates a PDF extractor.
func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

// Extract returns the text of every page. Pages without content yield an empty string so
// that page numbers stay aligned with the document.
func (e *PDFExtractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (extraction *model.Extraction, err error) {
	defer recoverPanic(&err)

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			e.logger.Debug("empty pdf page", "page", i)
			pages = append(pages, "")
			continue
		}
		pages = append(pages, JoinRuns(page.Content().Text))
	}

	return &model.Extraction{NumPages: numPages, Pages: pages}, nil
}

// Metadata reads the document information dictionary and the page count.
func (e *PDFExtractor) Metadata(r io.ReaderAt, size int64) (title, author string, numPages int, err error) {
	defer recoverPanic(&err)

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", "", 0, fmt.Errorf("open pdf: %w", err)
	}
	info := reader.Trailer().Key("Info")
	if !info.IsNull() {
		title = strings.TrimSpace(info.Key("Title").Text())
		author = strings.TrimSpace(info.Key("Author").Text())
	}
	return title, author, reader.NumPage(), nil
}

// JoinRuns concatenates text runs in content order. Runs on the same baseline are
// joined directly; a run on a new baseline starts a new line.
func JoinRuns(runs []pdf.Text) string {
	var b strings.Builder
	for i, run := range runs {
		if i > 0 && run.Y != runs[i-1].Y {
			b.WriteByte('\n')
		}
		b.WriteString(run.S)
	}
	return b.String()
}

// recoverPanic turns a panic inside the pdf library into an error. Malformed files can
// make it index out of range.
func recoverPanic(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("malformed pdf: %v", r)
	}
}
