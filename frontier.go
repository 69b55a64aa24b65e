package spinneret

// Policy configures admission control for a crawl. The zero value means
// no page budget and no domain restriction. A Policy is fixed for the
// life of a crawl.
type Policy struct {
	// MaxPages caps the number of URLs dispatched via Next.
	// Zero means unlimited.
	MaxPages int

	// AllowedDomains restricts admission to URLs whose host matches one
	// of the entries exactly (case-insensitive; "www.example.com" and
	// "example.com" are distinct entries). Empty means all domains.
	AllowedDomains []string
}

// FrontierStats is a point-in-time snapshot of frontier counters.
type FrontierStats struct {
	// Seen counts every URL ever admitted: pending, in-flight, or done.
	Seen int

	// Pending counts URLs admitted but not yet dispatched.
	Pending int

	// Completed counts URLs dispatched via Next.
	Completed int
}

// Frontier manages crawl admission and ordering. URLs passed to Admit
// and Seen must already be canonical; the frontier never re-normalizes,
// so the canonicalization policy stays in exactly one place.
type Frontier interface {
	// Admit offers a canonical URL for crawling. It returns false
	// without mutation if the URL was already seen, its domain is not
	// allowed, or the page budget leaves no room. A non-canonical URL
	// is an internal-consistency violation reported as an EINTERNAL
	// error.
	Admit(url string) (bool, error)

	// Next removes and returns the oldest pending URL. The bool result
	// is false when pending is empty or the page budget is exhausted;
	// an exhausted budget freezes the queue rather than discarding it.
	Next() (string, bool)

	// Seen reports whether the URL has ever been admitted.
	Seen(url string) bool

	// Stats returns a snapshot of the frontier counters.
	Stats() FrontierStats
}
