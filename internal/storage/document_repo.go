package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks docqa/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// GetByFilename gets a document by its filename.
	// Returns nil and ErrNotFound if not found.
	GetByFilename(ctx context.Context, filename string) (*DocumentRecord, error)
	// Upsert inserts a new document or updates an existing one.
	Upsert(ctx context.Context, doc *DocumentRecord) error
}

// DocumentRepo provides methods for document operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetByFilename gets a document by its filename.
// Returns nil and ErrNotFound if not found.
func (r *DocumentRepo) GetByFilename(ctx context.Context, filename string) (*DocumentRecord, error) {
	var doc DocumentRecord
	var indexedAtStr string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, filename, hash, indexed_at FROM documents WHERE filename = ?",
		filename,
	).Scan(&doc.ID, &doc.Filename, &doc.Hash, &indexedAtStr)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	doc.IndexedAt, err = time.Parse("2006-01-02 15:04:05", indexedAtStr)
	if err != nil {
		// SQLite may store the timestamp in RFC3339 depending on how it was written
		doc.IndexedAt, err = time.Parse(time.RFC3339, indexedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse indexed_at timestamp: %w", err)
		}
	}

	return &doc, nil
}

// Upsert inserts a new document or updates an existing one.
// If the document doesn't exist (by filename), generates a new UUID.
// If it exists, updates hash and indexed_at while preserving the ID.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *DocumentRecord) error {
	existing, err := r.GetByFilename(ctx, doc.Filename)
	if err != nil && err != ErrNotFound {
		return fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing != nil {
		doc.ID = existing.ID
		_, err := r.db.ExecContext(ctx,
			"UPDATE documents SET hash = ?, indexed_at = CURRENT_TIMESTAMP WHERE id = ?",
			doc.Hash, doc.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update document: %w", err)
		}
		return nil
	}

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO documents (id, filename, hash) VALUES (?, ?, ?)",
		doc.ID, doc.Filename, doc.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}
