package crawl

import (
	"strings"
	"sync"

	"github.com/fwojciec/spinneret"
	"github.com/fwojciec/spinneret/norm"
)

// Compile-time interface verification.
var _ spinneret.Frontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO frontier with exact deduplication.
// Membership in seen is permanent: once a URL is admitted it can never
// be admitted again, even after it has been dispatched. It is safe for
// concurrent use by multiple goroutines; the seen-check-then-insert in
// Admit and the pop-then-count in Next are each a single critical
// section, so concurrent duplicate admissions have exactly one winner.
type Frontier struct {
	mu        sync.Mutex
	pending   []string
	seen      map[string]struct{}
	completed int
	maxPages  int
	allowed   map[string]struct{} // nil means all domains allowed
}

// NewFrontier creates a Frontier seeded with seedURL. The seed is
// canonicalized (scheme defaulting to http) and inserted into both the
// pending queue and the seen set, bypassing the policy checks: the seed
// defines the crawl, it is not a candidate for rejection.
func NewFrontier(seedURL string, policy spinneret.Policy) (*Frontier, error) {
	canonical, err := norm.ResolveSeed(seedURL)
	if err != nil {
		return nil, err
	}

	var allowed map[string]struct{}
	if len(policy.AllowedDomains) > 0 {
		allowed = make(map[string]struct{}, len(policy.AllowedDomains))
		for _, domain := range policy.AllowedDomains {
			allowed[strings.ToLower(strings.TrimSpace(domain))] = struct{}{}
		}
	}

	return &Frontier{
		pending:  []string{canonical},
		seen:     map[string]struct{}{canonical: {}},
		maxPages: policy.MaxPages,
		allowed:  allowed,
	}, nil
}

// Admit offers a canonical URL for crawling. The frontier never
// re-normalizes, so canonicalization policy stays in norm; it does
// verify the input is canonical (re-normalization must be a no-op) and
// reports a violation as EINTERNAL rather than silently admitting a
// value that would break deduplication.
func (f *Frontier) Admit(url string) (bool, error) {
	canonical, err := norm.Resolve(url, url)
	if err != nil || canonical != url {
		return false, spinneret.Errorf(spinneret.EINTERNAL, "non-canonical URL %q passed to Admit", url)
	}
	host, err := norm.Host(url)
	if err != nil {
		return false, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.seen[url]; ok {
		return false, nil
	}
	if f.allowed != nil {
		if _, ok := f.allowed[host]; !ok {
			return false, nil
		}
	}
	// Everything seen but not yet completed still counts against the
	// budget: admitting more than the budget can ever dispatch would
	// only inflate the queue.
	if f.maxPages > 0 && f.completed+len(f.pending) >= f.maxPages {
		return false, nil
	}

	f.seen[url] = struct{}{}
	f.pending = append(f.pending, url)
	return true, nil
}

// Next removes and returns the oldest pending URL. An exhausted budget
// freezes the frontier: pending URLs are kept, not discarded, so stats
// remain consistent, but nothing further is dispatched.
func (f *Frontier) Next() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.maxPages > 0 && f.completed >= f.maxPages {
		return "", false
	}
	if len(f.pending) == 0 {
		return "", false
	}

	url := f.pending[0]
	f.pending = f.pending[1:]
	f.completed++
	return url, true
}

// Seen reports whether the URL has ever been admitted.
func (f *Frontier) Seen(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.seen[url]
	return ok
}

// Stats returns a snapshot of the frontier counters.
func (f *Frontier) Stats() spinneret.FrontierStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return spinneret.FrontierStats{
		Seen:      len(f.seen),
		Pending:   len(f.pending),
		Completed: f.completed,
	}
}
