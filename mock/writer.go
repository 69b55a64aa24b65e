package mock

import (
	"context"

	"github.com/fwojciec/spinneret"
)

var _ spinneret.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of spinneret.DocumentWriter.
type DocumentWriter struct {
	CreateDocumentFn func(ctx context.Context, doc *spinneret.Document) error
}

func (w *DocumentWriter) CreateDocument(ctx context.Context, doc *spinneret.Document) error {
	return w.CreateDocumentFn(ctx, doc)
}
