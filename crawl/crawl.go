// Package crawl provides the crawl frontier and the driver loop that
// coordinates fetching, link discovery, content extraction, and storage
// of crawled pages.
package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/spinneret"
)

// Crawler orchestrates a single crawl: it drains the frontier in FIFO
// order, fetches each URL, feeds discovered links back into the
// frontier, and stores the converted page.
type Crawler struct {
	Fetcher     spinneret.Fetcher
	Links       spinneret.LinkExtractor
	Extractor   spinneret.Extractor
	Converter   spinneret.Converter
	Documents   spinneret.DocumentWriter
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved  int
	Failed int
	Bytes  int
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Run crawls until the frontier is drained or its budget is exhausted.
// Fetch, link extraction, content extraction, and conversion failures
// count as Failed and the crawl continues; a frontier consistency
// violation (EINTERNAL) aborts
// the crawl, since continuing past one risks the duplicate-crawl bug
// the frontier exists to prevent. The progress callback, if provided,
// receives events as crawling proceeds.
func (c *Crawler) Run(ctx context.Context, frontier spinneret.Frontier, progress ProgressFunc) (*Result, error) {
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted})
	}

	var result Result
	position := 0
	completed := 0

	for {
		if ctx.Err() != nil {
			break
		}

		url, ok := frontier.Next()
		if !ok {
			break
		}

		delays := c.RetryDelays
		if delays == nil {
			delays = DefaultRetryDelays()
		}
		html, err := FetchWithRetryDelays(ctx, url, c.Fetcher.Fetch, delays)
		if err != nil {
			result.Failed++
			completed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, URL: url, Error: err})
			}
			continue
		}

		// Feed discovered links back into the frontier. Rejected
		// admissions (duplicates, foreign domains, budget) are normal;
		// only a consistency violation is an error.
		links, err := c.Links.ExtractLinks(html, url)
		if err != nil {
			result.Failed++
			completed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, URL: url, Error: err})
			}
			continue
		}
		for _, link := range links {
			if _, err := frontier.Admit(link); err != nil {
				return nil, fmt.Errorf("admitting %q: %w", link, err)
			}
		}

		doc, err := c.buildDocument(url, html, links, position)
		if err != nil {
			result.Failed++
			completed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, URL: url, Error: err})
			}
			continue
		}

		if err := c.Documents.CreateDocument(ctx, doc); err != nil {
			result.Failed++
			completed++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressFailed, Completed: completed, URL: url, Error: err})
			}
			continue
		}
		position++

		result.Saved++
		result.Bytes += len(doc.Content)
		completed++
		if progress != nil {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: completed, URL: url})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: completed})
	}

	return &result, nil
}

// buildDocument extracts content from fetched HTML and assembles the
// document to store.
func (c *Crawler) buildDocument(url, html string, links []string, position int) (*spinneret.Document, error) {
	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, err
	}

	return &spinneret.Document{
		SourceURL:   url,
		Title:       extracted.Title,
		Description: extracted.Description,
		Content:     markdown,
		ContentHash: computeHash(markdown),
		Links:       links,
		Position:    position,
		FetchedAt:   time.Now().UTC(),
	}, nil
}

// computeHash computes a hash of the content using xxhash.
func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}
