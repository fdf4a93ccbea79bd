package vectorstore

import (
	"context"
	"errors"
	"fmt"

	"contract-assistant/internal/config"
	"contract-assistant/internal/models"
)

// ErrEmptyIndex is returned when a search is attempted before any documents
// have been ingested.
var ErrEmptyIndex = errors.New("vector index is empty: ingest documents first")

// Entry is one (vector, chunk text, metadata) triple persisted in the index.
type Entry struct {
	ID             string
	Content        string
	Embedding      []float32
	SourceFilename string
	PageNumber     int
	ChunkID        int
}

// Result is one retrieved chunk with its similarity score.
type Result struct {
	Content        string
	SourceFilename string
	PageNumber     int
	Similarity     float32
}

// Store persists embeddings and supports nearest-neighbor search.
type Store interface {
	Add(ctx context.Context, entries []Entry) error
	Search(ctx context.Context, embedding []float32, k int) ([]Result, error)
	Count(ctx context.Context) (int, error)
	Close() error
}

// EntriesFromEmbeddings converts embedded chunks into store entries.
func EntriesFromEmbeddings(chunkEmbeddings []models.ChunkEmbedding, newID func() (string, error)) ([]Entry, error) {
	entries := make([]Entry, len(chunkEmbeddings))
	for i, ce := range chunkEmbeddings {
		id, err := newID()
		if err != nil {
			return nil, err
		}
		entries[i] = Entry{
			ID:             id,
			Content:        ce.Content,
			Embedding:      ce.Embedding,
			SourceFilename: ce.SourceFilename,
			PageNumber:     ce.PageNumber,
			ChunkID:        ce.ChunkID,
		}
	}
	return entries, nil
}

// Open creates the configured store backend.
func Open(cfg *config.StoreConfig) (Store, error) {
	switch cfg.Type {
	case "", "chromem":
		return NewChromemStore(cfg.IndexPath, cfg.Collection, false)
	case "postgres":
		return NewPostgresStore(cfg.PostgresDSN, cfg.Debug)
	default:
		return nil, fmt.Errorf("unknown store type: %q", cfg.Type)
	}
}
