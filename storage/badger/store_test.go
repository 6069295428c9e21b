package badger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightquery/leadgen/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, backend, err := NewMemoryStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
		backend.Close()
	})
	return store
}

func TestPutDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and counts documents", func(t *testing.T) {
		store := newTestStore(t)

		stored, err := store.PutDocuments(ctx,
			[]byte(`{"id": "a", "embedding": [0.1, 0.2], "fields": {"Company": "Alpha"}}`),
			[]byte(`{"id": "b", "embedding": [0.3, 0.4], "fields": {"Company": "Beta"}}`),
		)
		require.NoError(t, err)
		assert.Equal(t, 2, stored)

		count, err := store.CountRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("assigns content-based id when missing", func(t *testing.T) {
		store := newTestStore(t)
		doc := []byte(`{"embedding": [0.1], "fields": {"Company": "Gamma"}}`)

		// Same content twice lands on the same key.
		_, err := store.PutDocuments(ctx, doc)
		require.NoError(t, err)
		_, err = store.PutDocuments(ctx, doc)
		require.NoError(t, err)

		count, err := store.CountRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("rejects non-JSON input", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.PutDocuments(ctx, []byte(`not json`))
		assert.ErrorIs(t, err, storage.ErrInvalidDocument)
	})
}

func TestFetchRecords(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, store *Store) {
		t.Helper()
		docs := [][]byte{
			[]byte(`{"id": "01", "embedding": [0.1, 0.9], "fields": {"Company": "Alpha", "Category": "Textiles"}}`),
			[]byte(`{"id": "02", "embedding": {"0": 0.5, "1": 0.5}, "fields": {"Company": "Beta", "Category": "Chemicals"}}`),
			[]byte(`{"id": "03", "embedding": null, "fields": {"Company": "NoVector"}}`),
		}
		stored, err := store.PutDocuments(ctx, docs...)
		require.NoError(t, err)
		require.Equal(t, 3, stored)
	}

	t.Run("decodes both embedding representations", func(t *testing.T) {
		store := newTestStore(t)
		seed(t, store)

		records, err := store.FetchRecords(ctx, nil, 10)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, []float32{0.1, 0.9}, records[0].Vector)
		assert.Equal(t, []float32{0.5, 0.5}, records[1].Vector)
	})

	t.Run("skips and counts unusable records", func(t *testing.T) {
		store := newTestStore(t)
		seed(t, store)

		_, err := store.FetchRecords(ctx, nil, 10)
		require.NoError(t, err)

		stats := store.Stats()
		assert.Equal(t, int64(2), stats.RecordsDecoded)
		assert.Equal(t, int64(1), stats.RecordsSkipped)
	})

	t.Run("reports the skipped document in an integrity error", func(t *testing.T) {
		ierr := integrityError(makeDocumentKey("03"), storage.ErrMissingEmbedding)
		assert.Equal(t, "03", ierr.DocumentID)
		assert.Contains(t, ierr.Error(), "unusable record 03")
	})

	t.Run("applies category filter case-insensitively", func(t *testing.T) {
		store := newTestStore(t)
		seed(t, store)

		records, err := store.FetchRecords(ctx, &storage.RecordFilter{Category: "textiles"}, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Alpha", records[0].SourceFields["Company"])
	})

	t.Run("respects the limit", func(t *testing.T) {
		store := newTestStore(t)
		for i := 0; i < 20; i++ {
			doc := fmt.Sprintf(`{"id": "%02d", "embedding": [0.1], "fields": {}}`, i)
			_, err := store.PutDocuments(ctx, []byte(doc))
			require.NoError(t, err)
		}

		records, err := store.FetchRecords(ctx, nil, 5)
		require.NoError(t, err)
		assert.Len(t, records, 5)
	})

	t.Run("order is stable across calls", func(t *testing.T) {
		store := newTestStore(t)
		seed(t, store)

		first, err := store.FetchRecords(ctx, nil, 10)
		require.NoError(t, err)
		second, err := store.FetchRecords(ctx, nil, 10)
		require.NoError(t, err)

		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].SourceDocumentID, second[i].SourceDocumentID)
		}
	})
}
