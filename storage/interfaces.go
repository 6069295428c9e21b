package storage

import (
	"context"

	"github.com/brightquery/leadgen/core"
)

// RecordFilter narrows which corpus records a fetch considers.
// A nil filter matches everything.
type RecordFilter struct {
	// Category matches against the record's "category" source field,
	// case-insensitively. Empty means no category restriction.
	Category string
}

// DecodeStats reports how many stored documents could not be turned into
// usable records. Unusable records are skipped and counted, never fatal.
type DecodeStats struct {
	RecordsDecoded int64
	RecordsSkipped int64
}

// RecordStore provides access to the corpus of precomputed embedding records.
// Implementations must be thread-safe and support concurrent access.
//
// Stored documents are free-form JSON produced by an external ingestion
// system; the store normalizes each document's embedding to a dense vector
// once, at the read boundary. Documents with invalid or unconvertible
// embeddings are excluded from results and counted in DecodeStats.
type RecordStore interface {
	// FetchRecords returns up to limit records matching the filter.
	// Order is stable across calls for an unchanged corpus.
	FetchRecords(ctx context.Context, filter *RecordFilter, limit int) ([]*core.EmbeddingRecord, error)

	// PutDocuments stores raw JSON business-record documents.
	// Documents without an "id" field get a content-based one.
	// Returns the number of documents stored.
	PutDocuments(ctx context.Context, docs ...[]byte) (int, error)

	// CountRecords returns the number of stored documents.
	CountRecords(ctx context.Context) (int, error)

	// Stats returns cumulative decode statistics for this store instance.
	Stats() DecodeStats

	// Close closes the storage backend and releases resources.
	Close() error
}

// IndexMatch is one candidate returned by an approximate-nearest-neighbor
// index, with its similarity score already mapped into [0,1].
type IndexMatch struct {
	Record *core.EmbeddingRecord
	Score  float32
}

// IndexSearcher is an optional capability of a RecordStore: stores backed
// by an ANN index implement it, plain stores do not. The search engine
// type-asserts for it and falls back to scanning when it is absent.
type IndexSearcher interface {
	// IndexSearch returns up to numCandidates approximate nearest
	// neighbors of the vector, best first.
	IndexSearch(ctx context.Context, vector []float32, numCandidates int) ([]IndexMatch, error)
}
