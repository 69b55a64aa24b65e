package spinneret

// LinkExtractor discovers outbound links in a fetched document.
type LinkExtractor interface {
	// ExtractLinks scans the document for hyperlinks, resolves each
	// against baseURL, and returns the canonical URLs with duplicates
	// removed. The first occurrence of a URL wins and insertion order
	// is preserved, so callers get deterministic output. Malformed
	// hyperlink constructs are skipped, never reported as errors.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
