// Package api provides validation utilities for API request handling.
package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-document-reader/model"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateDocumentID validates a document ID
func ValidateDocumentID(documentID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if documentID == "" {
		result.AddError("documentId", "Document ID is required")
		return result
	}

	if strings.TrimSpace(documentID) != documentID {
		result.AddError("documentId", "Document ID cannot have leading or trailing whitespace")
		return result
	}

	if strings.ContainsAny(documentID, `/\`) || documentID == "." || documentID == ".." {
		result.AddError("documentId", "Document ID cannot contain path elements")
	}

	return result
}

// ValidateSearchRequest validates a search request. An empty query is left to the
// search service, which reports it as an invalid query.
func ValidateSearchRequest(req *SearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req.DocumentID != "" {
		if idResult := ValidateDocumentID(req.DocumentID); idResult.HasErrors() {
			for _, err := range idResult.Errors {
				result.AddError("document_id", err.Message)
			}
		}
	}

	return result
}

// ValidatePageNumber parses a 1-based page path parameter
func ValidatePageNumber(raw string) (int, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	page, err := strconv.Atoi(raw)
	if err != nil {
		result.AddError("page", "Page must be an integer")
		return 0, result
	}
	if page < 1 {
		result.AddError("page", "Page must be greater than 0")
	}

	return page, result
}

// ValidateHighlightRequest validates a highlight request body
func ValidateHighlightRequest(req *HighlightRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(req.MatchText) == "" {
		result.AddError("match_text", "Match text is required")
	}
	if req.OccurrenceIndex < 0 {
		result.AddError("occurrence_index", "Occurrence index cannot be negative")
	}

	return result
}

// ValidateJobStatus parses an optional job status filter
func ValidateJobStatus(raw string) (*model.JobStatus, *ValidationResult) {
	result := &ValidationResult{Valid: true}
	if raw == "" {
		return nil, result
	}

	status := model.JobStatus(raw)
	switch status {
	case model.JobStatusPending, model.JobStatusRunning, model.JobStatusCompleted,
		model.JobStatusFailed, model.JobStatusCancelled:
		return &status, result
	default:
		result.AddError("status", fmt.Sprintf("Unknown job status '%s'", raw))
		return nil, result
	}
}

// ParsePublishedDate accepts a calendar date or an RFC 3339 timestamp. An empty value
// means the date is unknown.
func ParsePublishedDate(raw string) (*time.Time, *ValidationResult) {
	result := &ValidationResult{Valid: true}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, result
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, result
		}
	}

	result.AddError("published_date", "Published date must be YYYY-MM-DD or RFC 3339")
	return nil, result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}

// ValidateJSONBinding validates JSON binding and returns a standardized error
func ValidateJSONBinding(c *gin.Context, target interface{}) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if err := c.ShouldBindJSON(target); err != nil {
		result.AddError("request_body", "Invalid request body: "+err.Error())
	}

	return result
}
