package vectorstore

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"github.com/philippgille/chromem-go"
)

const compress = false

// ChromemStore persists the index as a chromem-go collection in a local
// directory.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewChromemStore opens (or creates) the persistent database at dbPath and
// the named collection inside it. With inMemory set, nothing touches disk.
func NewChromemStore(dbPath, collectionName string, inMemory bool) (*ChromemStore, error) {
	var db *chromem.DB
	var err error
	if inMemory {
		db = chromem.NewDB()
	} else {
		db, err = chromem.NewPersistentDB(dbPath, compress)
		if err != nil {
			return nil, fmt.Errorf("failed to create database: %v", err)
		}
	}

	// embeddings are always supplied explicitly, so no embedding func
	collection, err := db.GetOrCreateCollection(collectionName, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create/get collection: %v", err)
	}

	return &ChromemStore{db: db, collection: collection}, nil
}

func (s *ChromemStore) Add(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]chromem.Document, len(entries))
	for i, e := range entries {
		docs[i] = chromem.Document{
			ID:        e.ID,
			Content:   e.Content,
			Embedding: e.Embedding,
			Metadata: map[string]string{
				"source_file": e.SourceFilename,
				"page_number": strconv.Itoa(e.PageNumber),
				"chunk_id":    strconv.Itoa(e.ChunkID),
			},
		}
	}
	if err := s.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %v", err)
	}
	return nil
}

func (s *ChromemStore) Search(ctx context.Context, embedding []float32, k int) ([]Result, error) {
	count := s.collection.Count()
	if count == 0 {
		return nil, ErrEmptyIndex
	}
	if k > count {
		k = count
	}

	found, err := s.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: embedding,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query by similarity: %v", err)
	}

	results := make([]Result, len(found))
	for i, r := range found {
		pageNumber, _ := strconv.Atoi(r.Metadata["page_number"])
		results[i] = Result{
			Content:        r.Content,
			SourceFilename: r.Metadata["source_file"],
			PageNumber:     pageNumber,
			Similarity:     r.Similarity,
		}
	}
	return results, nil
}

func (s *ChromemStore) Count(ctx context.Context) (int, error) {
	return s.collection.Count(), nil
}

func (s *ChromemStore) Close() error {
	return nil
}
