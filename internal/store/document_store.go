// Package store persists remote documents for the document service. Each
// document is a single opaque JSON body addressed by an identifier; the
// service has no storage model beyond that.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Document is one stored document row.
type Document struct {
	ID        string
	Body      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentStore reads and writes documents in SQLite.
type DocumentStore struct {
	db *sql.DB
}

// NewDocumentStore creates a store over db.
func NewDocumentStore(db *sql.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Create stores a new document with a fresh identifier and returns it.
func (s *DocumentStore) Create(ctx context.Context, body []byte) (*Document, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, body) VALUES (?, ?)
	`, id, string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}
	return s.Get(ctx, id)
}

// Get returns the document, or nil when it does not exist.
func (s *DocumentStore) Get(ctx context.Context, id string) (*Document, error) {
	doc := &Document{}
	var body string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, body, created_at, updated_at FROM documents WHERE id = ?
	`, id).Scan(&doc.ID, &body, &doc.CreatedAt, &doc.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	doc.Body = []byte(body)
	return doc, nil
}

// Put overwrites the document body wholesale.
func (s *DocumentStore) Put(ctx context.Context, id string, body []byte) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE documents SET body = ?, updated_at = datetime('now') WHERE id = ?
	`, string(body), id)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("document not found")
	}

	return nil
}

// Delete removes the document entirely.
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM documents WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("document not found")
	}

	return nil
}
