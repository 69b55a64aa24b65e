package slog

import (
	"log/slog"

	"github.com/fwojciec/spinneret"
)

// Ensure LoggingFrontier implements spinneret.Frontier.
var _ spinneret.Frontier = (*LoggingFrontier)(nil)

// LoggingFrontier wraps a Frontier with debug logging of admission
// decisions and dispatches.
type LoggingFrontier struct {
	next   spinneret.Frontier
	logger *slog.Logger
}

// NewLoggingFrontier creates a new LoggingFrontier.
func NewLoggingFrontier(next spinneret.Frontier, logger *slog.Logger) *LoggingFrontier {
	return &LoggingFrontier{next: next, logger: logger}
}

// Admit delegates to the wrapped frontier and logs the decision.
func (f *LoggingFrontier) Admit(url string) (admitted bool, err error) {
	defer func() {
		f.logger.Debug("admit",
			"url", url,
			"admitted", admitted,
			"err", err,
		)
	}()
	return f.next.Admit(url)
}

// Next delegates to the wrapped frontier and logs dispatches.
func (f *LoggingFrontier) Next() (url string, ok bool) {
	defer func() {
		if ok {
			f.logger.Debug("dispatch", "url", url)
		}
	}()
	return f.next.Next()
}

// Seen delegates to the wrapped frontier.
func (f *LoggingFrontier) Seen(url string) bool {
	return f.next.Seen(url)
}

// Stats delegates to the wrapped frontier.
func (f *LoggingFrontier) Stats() spinneret.FrontierStats {
	return f.next.Stats()
}
