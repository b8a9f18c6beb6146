package config

import (
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	settings := Settings{}
	settings.ApplyDefaults()

	if settings.DataDir != DefaultDataDir {
		t.Errorf("Expected data dir %q, got %q", DefaultDataDir, settings.DataDir)
	}
	if settings.MaxResults != 1000 {
		t.Errorf("Expected max results 1000, got %d", settings.MaxResults)
	}
	if settings.ContextLength != 50 {
		t.Errorf("Expected context length 50, got %d", settings.ContextLength)
	}
	if settings.MaxUploadBytes != 10*1024*1024 {
		t.Errorf("Expected 10 MiB upload limit, got %d", settings.MaxUploadBytes)
	}
	if settings.HighlightClass != "highlight selected appended" {
		t.Errorf("Unexpected highlight class %q", settings.HighlightClass)
	}
	if errs := settings.Validate(); len(errs) != 0 {
		t.Errorf("Expected defaults to validate, got %v", errs)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	settings := Settings{DataDir: "/tmp/lib", MaxResults: 5, ContextLength: 10}
	settings.ApplyDefaults()

	if settings.DataDir != "/tmp/lib" || settings.MaxResults != 5 || settings.ContextLength != 10 {
		t.Errorf("Explicit values were overwritten: %+v", settings)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		settings       Settings
		expectedErrors int
	}{
		{
			name:           "valid settings",
			settings:       Settings{DataDir: "data", MaxResults: 10, SearchWorkers: 1, JobWorkers: 1, MaxUploadBytes: 1},
			expectedErrors: 0,
		},
		{
			name:           "zero value reports every required field",
			settings:       Settings{},
			expectedErrors: 5,
		},
		{
			name:           "negative context length",
			settings:       Settings{DataDir: "data", MaxResults: 10, ContextLength: -1, SearchWorkers: 1, JobWorkers: 1, MaxUploadBytes: 1},
			expectedErrors: 1,
		},
		{
			name:           "highlight class with markup",
			settings:       Settings{DataDir: "data", MaxResults: 10, SearchWorkers: 1, JobWorkers: 1, MaxUploadBytes: 1, HighlightClass: `x"><script>`},
			expectedErrors: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.settings.Validate()
			if len(errs) != tt.expectedErrors {
				t.Errorf("Expected %d errors, got %d: %v", tt.expectedErrors, len(errs), errs)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	settings := Settings{DataDir: "lib"}

	if got := settings.CatalogPath(); got != filepath.Join("lib", "catalog.db") {
		t.Errorf("Unexpected catalog path %q", got)
	}
	if got := settings.CorpusDir(); got != filepath.Join("lib", "texts") {
		t.Errorf("Unexpected corpus dir %q", got)
	}
	if got := settings.UploadDir(); got != filepath.Join("lib", "uploads") {
		t.Errorf("Unexpected upload dir %q", got)
	}
}
