package mock

import "github.com/fwojciec/spinneret"

var _ spinneret.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of spinneret.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*spinneret.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*spinneret.ExtractResult, error) {
	return e.ExtractFn(html)
}
