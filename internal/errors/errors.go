package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrInvalidQuery is returned when a query is empty after trimming
	ErrInvalidQuery = errors.New("invalid query")

	// ErrDocumentNotFound is returned when a document or its corpus is not found
	ErrDocumentNotFound = errors.New("document not found")

	// ErrExtractionFailed is returned when page text cannot be extracted from a binary
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrResultCapExceeded is returned when a search produces more occurrences than allowed
	ErrResultCapExceeded = errors.New("result cap exceeded")

	// ErrHighlightNotFound is returned when an occurrence cannot be located among render fragments
	ErrHighlightNotFound = errors.New("highlight not found")

	// ErrCorruptCorpus is returned when a stored page corpus fails to decode or verify
	ErrCorruptCorpus = errors.New("corrupt corpus")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// InvalidQueryError represents a rejected query with context
type InvalidQueryError struct {
	Query string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("query '%s' is empty after trimming", e.Query)
}

func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// NewInvalidQueryError creates a new InvalidQueryError
func NewInvalidQueryError(query string) *InvalidQueryError {
	return &InvalidQueryError{Query: query}
}

// DocumentNotFoundError represents a document not found error with context
type DocumentNotFoundError struct {
	DocumentID string
	Resource   string
}

func (e *DocumentNotFoundError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s for document with ID '%s' not found", e.Resource, e.DocumentID)
	}
	return fmt.Sprintf("document with ID '%s' not found", e.DocumentID)
}

func (e *DocumentNotFoundError) Is(target error) bool {
	return target == ErrDocumentNotFound
}

// NewDocumentNotFoundError creates a new DocumentNotFoundError.
// The optional resource names what was missing, e.g. "corpus" or "content".
func NewDocumentNotFoundError(documentID string, resource ...string) *DocumentNotFoundError {
	err := &DocumentNotFoundError{DocumentID: documentID}
	if len(resource) > 0 {
		err.Resource = resource[0]
	}
	return err
}

// ExtractionError wraps the cause of a failed extraction
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from '%s': %v", e.Filename, e.Err)
}

func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError
func NewExtractionError(filename string, err error) *ExtractionError {
	return &ExtractionError{Filename: filename, Err: err}
}

// ResultCapExceededError records how far a search went past its cap
type ResultCapExceededError struct {
	Cap   int
	Count int
}

func (e *ResultCapExceededError) Error() string {
	return fmt.Sprintf("search produced %d occurrences, more than the cap of %d", e.Count, e.Cap)
}

func (e *ResultCapExceededError) Is(target error) bool {
	return target == ErrResultCapExceeded
}

// NewResultCapExceededError creates a new ResultCapExceededError
func NewResultCapExceededError(limit, count int) *ResultCapExceededError {
	return &ResultCapExceededError{Cap: limit, Count: count}
}

// HighlightNotFoundError records a match that could not be re-located among fragments
type HighlightNotFoundError struct {
	MatchText       string
	OccurrenceIndex int
	Found           int // Number of candidates located on the page
}

func (e *HighlightNotFoundError) Error() string {
	return fmt.Sprintf("occurrence %d of '%s' not found among render fragments (%d located)", e.OccurrenceIndex, e.MatchText, e.Found)
}

func (e *HighlightNotFoundError) Is(target error) bool {
	return target == ErrHighlightNotFound
}

// NewHighlightNotFoundError creates a new HighlightNotFoundError
func NewHighlightNotFoundError(matchText string, occurrenceIndex, found int) *HighlightNotFoundError {
	return &HighlightNotFoundError{MatchText: matchText, OccurrenceIndex: occurrenceIndex, Found: found}
}

// CorruptCorpusError wraps a decode or checksum failure for a stored corpus
type CorruptCorpusError struct {
	DocumentID string
	Err        error
}

func (e *CorruptCorpusError) Error() string {
	return fmt.Sprintf("corpus for document '%s' is corrupt: %v", e.DocumentID, e.Err)
}

func (e *CorruptCorpusError) Is(target error) bool {
	return target == ErrCorruptCorpus
}

func (e *CorruptCorpusError) Unwrap() error {
	return e.Err
}

// NewCorruptCorpusError creates a new CorruptCorpusError
func NewCorruptCorpusError(documentID string, err error) *CorruptCorpusError {
	return &CorruptCorpusError{DocumentID: documentID, Err: err}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
