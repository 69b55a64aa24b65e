package main

import (
	"fmt"

	"github.com/fwojciec/spinneret"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	filter := spinneret.DocumentFilter{SortBy: spinneret.SortByPosition}
	if c.URL != "" {
		filter.SourceURL = &c.URL
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spinneret.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no documents found. Run 'spinneret crawl <url>' first.\n")
		return spinneret.Errorf(spinneret.ENOTFOUND, "no documents found")
	}

	if c.Full {
		for _, doc := range docs {
			fmt.Fprintf(deps.Stdout, "<!-- %s -->\n%s\n\n", doc.SourceURL, doc.Content)
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Documents (%d total):\n\n", len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", i+1, title, doc.SourceURL)
	}

	return nil
}
