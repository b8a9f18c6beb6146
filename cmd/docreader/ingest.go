package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
	"github.com/gcbaptista/go-document-reader/services"
)

// Run executes the ingest command.
func (c *IngestCmd) Run(deps *Dependencies) error {
	if c.Title != "" && len(c.Files) > 1 {
		fmt.Fprintln(deps.Stderr, "error: --title can only be used with a single file")
		return internalErrors.NewValidationError("title", "only valid with a single file")
	}

	var published *time.Time
	if c.Published != "" {
		t, err := time.Parse(time.DateOnly, c.Published)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: --published must be YYYY-MM-DD\n")
			return internalErrors.NewValidationError("published", err.Error())
		}
		published = &t
	}

	for _, path := range c.Files {
		if err := c.ingestFile(deps, path, published); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %v\n", path, err)
			return err
		}
	}
	return nil
}

func (c *IngestCmd) ingestFile(deps *Dependencies, path string, published *time.Time) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := deps.Library.Ingest(deps.Ctx, services.IngestRequest{
		Filename:      filepath.Base(path),
		Title:         c.Title,
		Author:        c.Author,
		PublishedDate: published,
		Content:       f,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Ingested %q as %s (%d pages)\n", doc.Title, doc.ID, doc.NumPages)
	return nil
}

// Run executes the identify command.
func (c *IdentifyCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	ident, err := deps.Library.Identify(deps.Ctx, services.IngestRequest{
		Filename: filepath.Base(c.File),
		Content:  f,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Type:   %s\n", ident.FileType)
	fmt.Fprintf(deps.Stdout, "Title:  %s\n", ident.Title)
	if ident.Author != "" {
		fmt.Fprintf(deps.Stdout, "Author: %s\n", ident.Author)
	}
	if ident.NumPages > 0 {
		fmt.Fprintf(deps.Stdout, "Pages:  %d\n", ident.NumPages)
	}
	return nil
}
