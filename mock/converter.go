package mock

import "github.com/fwojciec/spinneret"

var _ spinneret.Converter = (*Converter)(nil)

// Converter is a mock implementation of spinneret.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
