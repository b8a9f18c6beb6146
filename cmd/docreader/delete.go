package main

import (
	"fmt"

	internalErrors "github.com/gcbaptista/go-document-reader/internal/errors"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return internalErrors.NewValidationError("force", "use --force to confirm deletion")
	}

	doc, err := deps.Library.GetDocument(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v. Use 'docreader list' to see available documents.\n", err)
		return err
	}

	if err := deps.Library.DeleteDocument(deps.Ctx, doc.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted document %q\n", doc.Title)
	return nil
}
