package storage

import "time"

// DocumentRecord represents an ingested source document in the database.
type DocumentRecord struct {
	ID        string // UUID
	Filename  string // Source file name as reported to the API
	Hash      string // SHA256 hex string of file content
	IndexedAt time.Time
}

// ChunkRecord represents a chunk of document text, indexed for vector search.
type ChunkRecord struct {
	ID         string // UUID (same as Qdrant point ID)
	DocumentID string // UUID (foreign key to documents.id)
	ChunkIndex int    // Index within the document (starts at 0)
	Content    string // Chunk text content
	TokenCount int    // Token count reported by the chunker
}
