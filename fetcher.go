package spinneret

import "context"

// Fetcher retrieves document bodies from URLs. It is the crawl's only
// I/O boundary: everything behind it (queueing, canonicalization,
// admission) is pure and synchronous.
type Fetcher interface {
	// Fetch retrieves the body for the given URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
