package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/spinneret"
	"github.com/fwojciec/spinneret/crawl"
	"github.com/fwojciec/spinneret/goquery"
	"github.com/fwojciec/spinneret/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughPipeline returns extractor/converter mocks that hand the
// fetched HTML through unchanged, so tests can focus on crawl ordering.
func passthroughPipeline() (*mock.Extractor, *mock.Converter) {
	extractor := &mock.Extractor{
		ExtractFn: func(html string) (*spinneret.ExtractResult, error) {
			return &spinneret.ExtractResult{Title: "Title", ContentHTML: html}, nil
		},
	}
	converter := &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			return html, nil
		},
	}
	return extractor, converter
}

func TestCrawler_Run_crawls_seed_and_discovered_links_in_order(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"http://example.com/": `
			<a href="/about">About</a>
			<a href="http://external.com">External</a>
			<a href="#x">Jump</a>
			<a href="../b">Up</a>`,
		"http://example.com/about": `<p>about</p>`,
		"http://external.com/":     `<p>external</p>`,
		"http://example.com/b":     `<p>b</p>`,
	}

	var fetched []string
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			fetched = append(fetched, url)
			return pages[url], nil
		},
	}

	var saved []*spinneret.Document
	writer := &mock.DocumentWriter{
		CreateDocumentFn: func(_ context.Context, doc *spinneret.Document) error {
			saved = append(saved, doc)
			return nil
		},
	}

	extractor, converter := passthroughPipeline()
	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Links:       goquery.NewLinkExtractor(),
		Extractor:   extractor,
		Converter:   converter,
		Documents:   writer,
		RetryDelays: []time.Duration{},
	}

	frontier, err := crawl.NewFrontier("example.com", spinneret.Policy{})
	require.NoError(t, err)

	result, err := c.Run(context.Background(), frontier, nil)
	require.NoError(t, err)

	// Fragment link dropped; ".." above root collapses to /b; all three
	// survivors crawled in admission order after the seed.
	assert.Equal(t, []string{
		"http://example.com/",
		"http://example.com/about",
		"http://external.com/",
		"http://example.com/b",
	}, fetched)

	assert.Equal(t, 4, result.Saved)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, saved, 4)
	assert.Equal(t, "http://example.com/", saved[0].SourceURL)
	assert.Equal(t, 0, saved[0].Position)
	assert.Equal(t, 3, saved[3].Position)
	assert.NotEmpty(t, saved[0].ContentHash)

	stats := frontier.Stats()
	assert.Equal(t, 4, stats.Seen)
	assert.Equal(t, 0, stats.Pending)
	assert.Equal(t, 4, stats.Completed)
}

func TestCrawler_Run_domain_filter_confines_the_crawl(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"http://example.com/":      `<a href="/about">About</a><a href="http://external.com">Out</a>`,
		"http://example.com/about": `<p>about</p>`,
	}

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				t.Errorf("unexpected fetch of %q", url)
			}
			return html, nil
		},
	}
	writer := &mock.DocumentWriter{
		CreateDocumentFn: func(_ context.Context, _ *spinneret.Document) error { return nil },
	}

	extractor, converter := passthroughPipeline()
	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Links:       goquery.NewLinkExtractor(),
		Extractor:   extractor,
		Converter:   converter,
		Documents:   writer,
		RetryDelays: []time.Duration{},
	}

	frontier, err := crawl.NewFrontier("example.com", spinneret.Policy{
		AllowedDomains: []string{"example.com"},
	})
	require.NoError(t, err)

	result, err := c.Run(context.Background(), frontier, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Saved)
}

func TestCrawler_Run_budget_stops_dispatch(t *testing.T) {
	t.Parallel()

	// Every page links to two fresh pages; without a budget this crawl
	// would not terminate.
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			return `<a href="` + url + `x">X</a><a href="` + url + `y">Y</a>`, nil
		},
	}

	var saved int
	writer := &mock.DocumentWriter{
		CreateDocumentFn: func(_ context.Context, _ *spinneret.Document) error {
			saved++
			return nil
		},
	}

	extractor, converter := passthroughPipeline()
	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Links:       goquery.NewLinkExtractor(),
		Extractor:   extractor,
		Converter:   converter,
		Documents:   writer,
		RetryDelays: []time.Duration{},
	}

	frontier, err := crawl.NewFrontier("example.com", spinneret.Policy{MaxPages: 5})
	require.NoError(t, err)

	result, err := c.Run(context.Background(), frontier, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, saved)
	assert.Equal(t, 5, result.Saved)
	assert.Equal(t, 5, frontier.Stats().Completed)
}

func TestCrawler_Run_counts_fetch_failures_and_continues(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"http://example.com/":     `<a href="/bad">Bad</a><a href="/good">Good</a>`,
		"http://example.com/good": `<p>good</p>`,
	}

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			html, ok := pages[url]
			if !ok {
				return "", assert.AnError
			}
			return html, nil
		},
	}
	writer := &mock.DocumentWriter{
		CreateDocumentFn: func(_ context.Context, _ *spinneret.Document) error { return nil },
	}

	extractor, converter := passthroughPipeline()
	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Links:       goquery.NewLinkExtractor(),
		Extractor:   extractor,
		Converter:   converter,
		Documents:   writer,
		RetryDelays: []time.Duration{},
	}

	frontier, err := crawl.NewFrontier("example.com", spinneret.Policy{})
	require.NoError(t, err)

	var events []crawl.ProgressEvent
	result, err := c.Run(context.Background(), frontier, func(e crawl.ProgressEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 1, result.Failed)

	var failed int
	for _, e := range events {
		if e.Type == crawl.ProgressFailed {
			failed++
			assert.Equal(t, "http://example.com/bad", e.URL)
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, crawl.ProgressFinished, events[len(events)-1].Type)
}

func TestCrawler_Run_aborts_on_frontier_consistency_violation(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) { return "<p>hi</p>", nil },
	}
	// A link extractor that leaks a non-canonical URL simulates a
	// broken canonicalization seam.
	links := &mock.LinkExtractor{
		ExtractLinksFn: func(_ string, _ string) ([]string, error) {
			return []string{"HTTP://EXAMPLE.COM/Bad/"}, nil
		},
	}
	writer := &mock.DocumentWriter{
		CreateDocumentFn: func(_ context.Context, _ *spinneret.Document) error { return nil },
	}

	extractor, converter := passthroughPipeline()
	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Links:       links,
		Extractor:   extractor,
		Converter:   converter,
		Documents:   writer,
		RetryDelays: []time.Duration{},
	}

	frontier, err := crawl.NewFrontier("example.com", spinneret.Policy{})
	require.NoError(t, err)

	_, err = c.Run(context.Background(), frontier, nil)
	require.Error(t, err)
	assert.Equal(t, spinneret.EINTERNAL, spinneret.ErrorCode(err))
}

func TestCrawler_Run_stops_on_context_cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	fetched := 0
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			fetched++
			cancel()
			return `<a href="/next">Next</a>`, nil
		},
	}
	writer := &mock.DocumentWriter{
		CreateDocumentFn: func(_ context.Context, _ *spinneret.Document) error { return nil },
	}

	extractor, converter := passthroughPipeline()
	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Links:       goquery.NewLinkExtractor(),
		Extractor:   extractor,
		Converter:   converter,
		Documents:   writer,
		RetryDelays: []time.Duration{},
	}

	frontier, err := crawl.NewFrontier("example.com", spinneret.Policy{})
	require.NoError(t, err)

	result, err := c.Run(ctx, frontier, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, fetched, "no further fetches after cancellation")
	assert.Equal(t, 1, result.Saved)
}

func TestCrawler_Run_counts_link_extraction_failures(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) { return "<p>hi</p>", nil },
	}
	links := &mock.LinkExtractor{
		ExtractLinksFn: func(_ string, _ string) ([]string, error) {
			return nil, assert.AnError
		},
	}

	var saved int
	writer := &mock.DocumentWriter{
		CreateDocumentFn: func(_ context.Context, _ *spinneret.Document) error {
			saved++
			return nil
		},
	}

	extractor, converter := passthroughPipeline()
	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Links:       links,
		Extractor:   extractor,
		Converter:   converter,
		Documents:   writer,
		RetryDelays: []time.Duration{},
	}

	frontier, err := crawl.NewFrontier("example.com", spinneret.Policy{})
	require.NoError(t, err)

	var events []crawl.ProgressEvent
	result, err := c.Run(context.Background(), frontier, func(e crawl.ProgressEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Saved)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 0, saved, "a page whose links cannot be extracted is not stored")

	var failed int
	for _, e := range events {
		if e.Type == crawl.ProgressFailed {
			failed++
			assert.ErrorIs(t, e.Error, assert.AnError)
		}
	}
	assert.Equal(t, 1, failed)
}

func TestCrawler_Run_follows_links_with_redundant_slashes(t *testing.T) {
	t.Parallel()

	pages := map[string]string{
		"http://example.com/":     `<a href="/page//">Messy</a>`,
		"http://example.com/page": `<p>page</p>`,
	}

	var fetched []string
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			fetched = append(fetched, url)
			return pages[url], nil
		},
	}
	writer := &mock.DocumentWriter{
		CreateDocumentFn: func(_ context.Context, _ *spinneret.Document) error { return nil },
	}

	extractor, converter := passthroughPipeline()
	c := &crawl.Crawler{
		Fetcher:     fetcher,
		Links:       goquery.NewLinkExtractor(),
		Extractor:   extractor,
		Converter:   converter,
		Documents:   writer,
		RetryDelays: []time.Duration{},
	}

	frontier, err := crawl.NewFrontier("example.com", spinneret.Policy{})
	require.NoError(t, err)

	result, err := c.Run(context.Background(), frontier, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"http://example.com/", "http://example.com/page"}, fetched)
	assert.Equal(t, 2, result.Saved)
	assert.Equal(t, 0, result.Failed)
}
