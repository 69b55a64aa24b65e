// Package spinneret provides a single-site web crawler built around two
// core pieces: a URL canonicalizer that maps every representation of a
// resource to one normalized string, and a FIFO frontier that guarantees
// each canonical URL is dispatched exactly once.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, htmltomarkdown/); the canonicalization rules live in norm/
// and the frontier plus crawl driver in crawl/.
package spinneret
