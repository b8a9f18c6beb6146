package main

import (
	"fmt"
	"time"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	docs, err := deps.Library.ListDocuments(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'docreader ingest' to add one.")
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d pages  added %s\n", d.ID, d.Title, d.NumPages, d.AddedDate.Format(time.DateOnly))
	}
	return nil
}

// Run executes the text command.
func (c *TextCmd) Run(deps *Dependencies) error {
	corpus, err := deps.Library.DocumentText(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.Page != 0 {
		if c.Page < 1 || c.Page > len(corpus.Pages) {
			fmt.Fprintf(deps.Stderr, "error: page must be between 1 and %d\n", len(corpus.Pages))
			return internalErrors.NewValidationError("page", "out of range")
		}
		fmt.Fprintln(deps.Stdout, corpus.Pages[c.Page-1].Text)
		return nil
	}

	for _, page := range corpus.Pages {
		fmt.Fprintf(deps.Stdout, "--- page %d ---\n%s\n", page.PageNumber, page.Text)
	}
	return nil
}
