// Package config provides configuration structures for the document reader.
// It defines storage locations, search limits, and worker pool sizes.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default values applied by ApplyDefaults.
const (
	DefaultDataDir        = "./reader_data"
	DefaultPort           = "3000"
	DefaultMaxResults     = 1000
	DefaultContextLength  = 50
	DefaultSearchWorkers  = 4
	DefaultJobWorkers     = 2
	DefaultMaxUploadBytes = 10 * 1024 * 1024
	DefaultHighlightClass = "highlight selected appended"
)

// Settings contains all configuration options for a document library.
//
// MaxResults is a hard cap, not a page size: a search whose occurrences exceed it
// returns no results at all rather than a truncated list.
type Settings struct {
	DataDir        string `json:"data_dir"`         // Root directory for the catalog, corpora and binaries
	Port           string `json:"port"`             // HTTP port for the server
	MaxResults     int    `json:"max_results"`      // Maximum occurrences per search before the result is discarded
	ContextLength  int    `json:"context_length"`   // Characters of context kept on each side of a match
	SearchWorkers  int    `json:"search_workers"`   // Pages scanned concurrently within one document
	JobWorkers     int    `json:"job_workers"`      // Concurrent ingestion/deletion jobs
	MaxUploadBytes int64  `json:"max_upload_bytes"` // Request body limit for uploads
	HighlightClass string `json:"highlight_class"`  // CSS class of the span wrapping highlighted text
}

// ApplyDefaults applies default values to unset fields
func (s *Settings) ApplyDefaults() {
	if s.DataDir == "" {
		s.DataDir = DefaultDataDir
	}
	if s.Port == "" {
		s.Port = DefaultPort
	}
	if s.MaxResults == 0 {
		s.MaxResults = DefaultMaxResults
	}
	if s.ContextLength == 0 {
		s.ContextLength = DefaultContextLength
	}
	if s.SearchWorkers == 0 {
		s.SearchWorkers = DefaultSearchWorkers
	}
	if s.JobWorkers == 0 {
		s.JobWorkers = DefaultJobWorkers
	}
	if s.MaxUploadBytes == 0 {
		s.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if s.HighlightClass == "" {
		s.HighlightClass = DefaultHighlightClass
	}
}

// Validate checks the settings and returns one message per problem found.
func (s *Settings) Validate() []string {
	var errors []string

	if strings.TrimSpace(s.DataDir) == "" {
		errors = append(errors, "data_dir cannot be empty or whitespace-only")
	}
	if s.MaxResults < 1 {
		errors = append(errors, fmt.Sprintf("max_results must be positive, got %d", s.MaxResults))
	}
	if s.ContextLength < 0 {
		errors = append(errors, fmt.Sprintf("context_length cannot be negative, got %d", s.ContextLength))
	}
	if s.SearchWorkers < 1 {
		errors = append(errors, fmt.Sprintf("search_workers must be at least 1, got %d", s.SearchWorkers))
	}
	if s.JobWorkers < 1 {
		errors = append(errors, fmt.Sprintf("job_workers must be at least 1, got %d", s.JobWorkers))
	}
	if s.MaxUploadBytes < 1 {
		errors = append(errors, fmt.Sprintf("max_upload_bytes must be positive, got %d", s.MaxUploadBytes))
	}
	if strings.ContainsAny(s.HighlightClass, `"<>`) {
		errors = append(errors, "highlight_class cannot contain quotes or angle brackets")
	}

	return errors
}

// CatalogPath is the SQLite database holding document metadata.
func (s *Settings) CatalogPath() string {
	return filepath.Join(s.DataDir, "catalog.db")
}

// CorpusDir holds one gob-encoded page corpus per document.
func (s *Settings) CorpusDir() string {
	return filepath.Join(s.DataDir, "texts")
}

// UploadDir holds the uploaded document binaries.
func (s *Settings) UploadDir() string {
	return filepath.Join(s.DataDir, "uploads")
}
