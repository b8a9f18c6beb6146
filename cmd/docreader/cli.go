package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/gcbaptista/go-document-reader/config"
	"github.com/gcbaptista/go-document-reader/internal/library"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Library  *library.Library
	Settings config.Settings
	Logger   *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DataDir        string `name:"data-dir" env:"DOCREADER_DATA_DIR" default:"./reader_data" help:"Directory holding the catalog, page texts and uploads"`
	Port           string `env:"DOCREADER_PORT" default:"3000" help:"HTTP port for serve"`
	MaxResults     int    `env:"DOCREADER_MAX_RESULTS" default:"1000" help:"Searches with more occurrences than this return nothing"`
	ContextLength  int    `env:"DOCREADER_CONTEXT_LENGTH" default:"50" help:"Characters of context on each side of a match"`
	SearchWorkers  int    `env:"DOCREADER_SEARCH_WORKERS" default:"4" help:"Pages scanned concurrently per document"`
	JobWorkers     int    `env:"DOCREADER_JOB_WORKERS" default:"2" help:"Concurrent background jobs"`
	MaxUploadBytes int64  `env:"DOCREADER_MAX_UPLOAD_BYTES" default:"10485760" help:"Largest accepted upload in bytes"`
	HighlightClass string `env:"DOCREADER_HIGHLIGHT_CLASS" default:"highlight selected appended" help:"CSS class of highlighted spans"`
	LogLevel       string `env:"DOCREADER_LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`

	Serve    ServeCmd    `cmd:"" help:"Run the HTTP API"`
	Ingest   IngestCmd   `cmd:"" help:"Ingest PDF files into the library"`
	Search   SearchCmd   `cmd:"" help:"Search the library or one document"`
	List     ListCmd     `cmd:"" help:"List ingested documents"`
	Text     TextCmd     `cmd:"" help:"Print the extracted text of a document"`
	Identify IdentifyCmd `cmd:"" help:"Show the file type and PDF metadata of a file"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a document"`
}

// Settings returns the library settings selected by the flags.
func (c *CLI) Settings() *config.Settings {
	return &config.Settings{
		DataDir:        c.DataDir,
		Port:           c.Port,
		MaxResults:     c.MaxResults,
		ContextLength:  c.ContextLength,
		SearchWorkers:  c.SearchWorkers,
		JobWorkers:     c.JobWorkers,
		MaxUploadBytes: c.MaxUploadBytes,
		HighlightClass: c.HighlightClass,
	}
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}

// IngestCmd is the "ingest" subcommand.
type IngestCmd struct {
	Files     []string `arg:"" help:"PDF files to ingest"`
	Title     string   `short:"t" help:"Title, only with a single file; defaults to the PDF title or file name"`
	Author    string   `short:"a" help:"Author; defaults to the PDF author"`
	Published string   `help:"Publication date (YYYY-MM-DD)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    string `arg:"" help:"Text to search for"`
	Document string `short:"d" help:"Only search this document ID"`
	JSON     bool   `name:"json" help:"Print the raw result as JSON"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// TextCmd is the "text" subcommand.
type TextCmd struct {
	ID   string `arg:"" help:"Document ID"`
	Page int    `short:"p" help:"Only print this page"`
}

// IdentifyCmd is the "identify" subcommand.
type IdentifyCmd struct {
	File string `arg:"" type:"existingfile" help:"File to identify"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Force bool   `help:"Confirm deletion"`
}
