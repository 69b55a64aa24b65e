package mock

import "github.com/fwojciec/spinneret"

var _ spinneret.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of spinneret.Frontier.
type Frontier struct {
	AdmitFn func(url string) (bool, error)
	NextFn  func() (string, bool)
	SeenFn  func(url string) bool
	StatsFn func() spinneret.FrontierStats
}

func (f *Frontier) Admit(url string) (bool, error) {
	return f.AdmitFn(url)
}

func (f *Frontier) Next() (string, bool) {
	return f.NextFn()
}

func (f *Frontier) Seen(url string) bool {
	return f.SeenFn(url)
}

func (f *Frontier) Stats() spinneret.FrontierStats {
	return f.StatsFn()
}
