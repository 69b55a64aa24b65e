package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/spinneret"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ spinneret.DocumentService = (*DocumentService)(nil)

// DocumentService implements spinneret.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateDocument creates a new document. Fields the caller left blank
// are filled in: ID, content hash, and fetch timestamp.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *spinneret.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.ContentHash == "" {
		doc.ContentHash = hashContent(doc.Content)
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = time.Now().UTC()
	}

	links, err := json.Marshal(doc.Links)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, source_url, title, description, content, content_hash, links, position, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.SourceURL, doc.Title, doc.Description, doc.Content, doc.ContentHash,
		string(links), doc.Position, doc.FetchedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*spinneret.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, title, description, content, content_hash, links, position, fetched_at
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row.Scan)
	if err == sql.ErrNoRows {
		return nil, spinneret.Errorf(spinneret.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter spinneret.DocumentFilter) ([]*spinneret.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, title, description, content, content_hash, links, position, fetched_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	switch filter.SortBy {
	case spinneret.SortByPosition:
		query.WriteString(" ORDER BY position ASC")
	default:
		query.WriteString(" ORDER BY fetched_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*spinneret.Document
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// scanDocument reads one documents row via the given scan function.
func scanDocument(scan func(dest ...any) error) (*spinneret.Document, error) {
	var doc spinneret.Document
	var links, fetchedAt string

	if err := scan(&doc.ID, &doc.SourceURL, &doc.Title, &doc.Description, &doc.Content,
		&doc.ContentHash, &links, &doc.Position, &fetchedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(links), &doc.Links); err != nil {
		return nil, err
	}

	var err error
	doc.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}

	return &doc, nil
}

// appendPagination adds LIMIT and OFFSET clauses for positive values.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
