package main

import (
	"fmt"

	"github.com/fwojciec/spinneret"
	"github.com/fwojciec/spinneret/crawl"
	spinneretslog "github.com/fwojciec/spinneret/slog"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	f, err := crawl.NewFrontier(c.Seed, spinneret.Policy{
		MaxPages:       c.MaxPages,
		AllowedDomains: c.Allow,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", spinneret.ErrorMessage(err))
		return err
	}

	var frontier spinneret.Frontier = f
	if deps.Verbose {
		frontier = spinneretslog.NewLoggingFrontier(frontier, deps.Logger)
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  %4d  %s\n", event.Completed, crawl.TruncateURL(event.URL, 70))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Crawler.Run(deps.Ctx, frontier, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	stats := frontier.Stats()
	fmt.Fprintf(deps.Stdout, "Saved %d pages (%s), %d failed, %d URLs seen\n",
		result.Saved, crawl.FormatBytes(result.Bytes), result.Failed, stats.Seen)

	return nil
}
