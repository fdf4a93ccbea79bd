package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-assistant/internal/config"
	"contract-assistant/internal/parser"
	"contract-assistant/internal/vectorstore"
)

type stubEmbedder struct{}

func (stubEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

func (stubEmbedder) EmbedQuery(context.Context, string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		RAG: config.RAGConfig{ChunkSize: 1000, ChunkOverlap: 200, TopK: 4},
	}
}

func newTestStore(t *testing.T) vectorstore.Store {
	t.Helper()
	store, err := vectorstore.NewChromemStore("", "test_contracts", true)
	require.NoError(t, err)
	return store
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFilesStoresAllChunks(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	a := writeTempFile(t, "a.txt", strings.Repeat("a", 2600))
	b := writeTempFile(t, "b.txt", "short contract")

	count, err := Files(ctx, testConfig(), stubEmbedder{}, store, []string{a, b})
	require.NoError(t, err)

	// 4 chunks from the long file, 1 from the short one
	assert.Equal(t, 5, count)

	stored, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, count, stored)
}

func TestFilesAppendsOnReingestion(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	path := writeTempFile(t, "a.txt", "short contract")

	_, err := Files(ctx, testConfig(), stubEmbedder{}, store, []string{path})
	require.NoError(t, err)
	_, err = Files(ctx, testConfig(), stubEmbedder{}, store, []string{path})
	require.NoError(t, err)

	stored, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stored)
}

func TestFilesLoaderFailureAbortsWithoutWrites(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	good := writeTempFile(t, "a.txt", "short contract")

	_, err := Files(ctx, testConfig(), stubEmbedder{}, store, []string{good, "bad.exe"})
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrUnsupportedFormat)

	stored, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stored)
}

func TestFilesNoFiles(t *testing.T) {
	_, err := Files(context.Background(), testConfig(), stubEmbedder{}, newTestStore(t), nil)
	assert.Error(t, err)
}
