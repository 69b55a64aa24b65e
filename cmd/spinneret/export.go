package main

import (
	"fmt"

	"github.com/fwojciec/spinneret"
	"github.com/fwojciec/spinneret/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	docs, err := deps.Documents.FindDocuments(deps.Ctx, spinneret.DocumentFilter{
		SortBy: spinneret.SortByPosition,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spinneret.ErrorMessage(err))
		return err
	}

	if err := fs.ExportJSON(c.Path, docs); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", c.Path, err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d documents to %s\n", len(docs), c.Path)
	return nil
}
