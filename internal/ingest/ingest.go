package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/embeddings"

	"contract-assistant/internal/config"
	"contract-assistant/internal/embedding"
	"contract-assistant/internal/helper"
	"contract-assistant/internal/models"
	"contract-assistant/internal/parser"
	"contract-assistant/internal/vectorstore"
)

// Files parses, chunks, embeds and stores the given documents. All files are
// parsed before anything is embedded or written, so a loader failure on any
// file aborts the whole call without touching the index. Returns the number
// of chunks added.
func Files(ctx context.Context, cfg *config.Config, embedder embeddings.Embedder, store vectorstore.Store, paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, fmt.Errorf("no files to ingest")
	}

	opts := parser.Options{
		ChunkSize:    cfg.RAG.ChunkSize,
		ChunkOverlap: cfg.RAG.ChunkOverlap,
	}

	var chunks []models.Chunk
	for _, path := range paths {
		fileChunks, err := parser.Parse(path, opts)
		if err != nil {
			return 0, fmt.Errorf("loading %s: %w", path, err)
		}
		log.Info().Str("file", path).Int("chunks", len(fileChunks)).Msg("Loaded document")
		chunks = append(chunks, fileChunks...)
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no text extracted from %d files", len(paths))
	}

	chunkEmbeddings, err := embedding.EmbedChunks(ctx, embedder, chunks)
	if err != nil {
		return 0, err
	}

	entries, err := vectorstore.EntriesFromEmbeddings(chunkEmbeddings, helper.GenerateUUID)
	if err != nil {
		return 0, err
	}
	if err := store.Add(ctx, entries); err != nil {
		return 0, err
	}

	log.Info().Int("chunks", len(entries)).Int("files", len(paths)).Msg("Ingestion complete")
	return len(entries), nil
}
