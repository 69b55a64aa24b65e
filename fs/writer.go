// Package fs provides file-based output for crawled documents.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/spinneret"
)

// Ensure JSONLWriter implements spinneret.DocumentWriter at compile time.
var _ spinneret.DocumentWriter = (*JSONLWriter)(nil)

// JSONLWriter appends crawled documents to a file, one JSON object per
// line. Lines are written as documents complete, so a partially finished
// crawl still leaves a usable file behind.
type JSONLWriter struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewJSONLWriter opens (or creates) the file at path for appending.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	return &JSONLWriter{file: f, enc: json.NewEncoder(f)}, nil
}

// CreateDocument appends the document as a single JSON line.
func (w *JSONLWriter) CreateDocument(ctx context.Context, doc *spinneret.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(doc)
}

// Close flushes and closes the underlying file.
func (w *JSONLWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// ExportJSON writes all documents as a single indented JSON array,
// suitable for handing off a finished crawl as one self-contained file.
func ExportJSON(path string, docs []*spinneret.Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	return os.WriteFile(path, data, 0644)
}
