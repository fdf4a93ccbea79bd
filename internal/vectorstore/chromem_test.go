package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contract-assistant/internal/config"
)

func newTestStore(t *testing.T) *ChromemStore {
	t.Helper()
	store, err := NewChromemStore("", "test_contracts", true)
	require.NoError(t, err)
	return store
}

func testEntries() []Entry {
	return []Entry{
		{
			ID:             "a",
			Content:        "termination clause text",
			Embedding:      []float32{1, 0, 0},
			SourceFilename: "contracts/master.pdf",
			PageNumber:     3,
			ChunkID:        1,
		},
		{
			ID:             "b",
			Content:        "payment terms text",
			Embedding:      []float32{0, 1, 0},
			SourceFilename: "contracts/master.pdf",
			PageNumber:     5,
			ChunkID:        2,
		},
		{
			ID:             "c",
			Content:        "liability text",
			Embedding:      []float32{0, 0, 1},
			SourceFilename: "contracts/nda.txt",
			PageNumber:     1,
			ChunkID:        1,
		},
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Search(context.Background(), []float32{1, 0, 0}, 4)
	assert.ErrorIs(t, err, ErrEmptyIndex)
}

func TestAddAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, testEntries()))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSearchReturnsNearest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, testEntries()))

	results, err := store.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "termination clause text", results[0].Content)
	assert.Equal(t, "contracts/master.pdf", results[0].SourceFilename)
	assert.Equal(t, 3, results[0].PageNumber)
}

func TestSearchCapsKAtCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, testEntries()))

	results, err := store.Search(ctx, []float32{0, 1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestAddEmptySlice(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Add(context.Background(), nil))
}

func TestOpenUnknownStoreType(t *testing.T) {
	_, err := Open(&config.StoreConfig{Type: "bogus"})
	assert.Error(t, err)
}
