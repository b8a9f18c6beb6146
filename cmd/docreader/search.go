package main

import (
	"encoding/json"
	"fmt"

	"github.com/gcbaptista/go-document-reader/services"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	result, err := deps.Library.Search(deps.Ctx, services.SearchQuery{
		Query:      c.Query,
		DocumentID: c.Document,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	for _, diag := range result.Diagnostics {
		fmt.Fprintf(deps.Stderr, "warning: skipped %s: %s\n", diag.DocumentID, diag.Error)
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.Total == 0 {
		fmt.Fprintln(deps.Stdout, "No matches.")
		return nil
	}
	for _, occ := range result.Occurrences {
		fmt.Fprintf(deps.Stdout, "%s  p.%d  #%d  %s\n", occ.DocumentTitle, occ.PageNumber, occ.OccurrenceIndex, occ.Context)
	}
	fmt.Fprintf(deps.Stdout, "%d matches in %dms\n", result.Total, result.Took)
	return nil
}
