// Package store persists the reader's catalog, page corpora and uploaded binaries.
package store

import (
	"strings"

	"github.com/gcbaptista/go-document-reader/internal/errors"
)

// validateID rejects document IDs that cannot safely be used as file names.
func validateID(documentID string) error {
	if documentID == "" || documentID == "." || documentID == ".." || strings.ContainsAny(documentID, `/\`) {
		return errors.NewValidationError("document_id", "must be a non-empty name without path separators")
	}
	return nil
}
