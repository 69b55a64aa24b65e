package mock

import "github.com/fwojciec/spinneret"

var _ spinneret.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of spinneret.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(html, baseURL)
}
