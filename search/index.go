package search

import (
	"context"

	"github.com/brightquery/leadgen/core"
	"github.com/brightquery/leadgen/storage"
)

// indexStrategy delegates to an approximate-nearest-neighbor index when
// the store provides one. Any failure here — no index configured, query
// error — is reported to the engine, which falls through to the scans.
type indexStrategy struct {
	store storage.RecordStore
	cfg   Config
}

func (s *indexStrategy) Name() string { return "ann-index" }

func (s *indexStrategy) Search(ctx context.Context, query []float32, filter *storage.RecordFilter, limit int, minScore float32) ([]core.SearchResult, error) {
	searcher, ok := s.store.(storage.IndexSearcher)
	if !ok {
		return nil, storage.ErrIndexUnavailable
	}

	numCandidates := limit * s.cfg.CandidateMultiplier
	if numCandidates < s.cfg.MinIndexCandidates {
		numCandidates = s.cfg.MinIndexCandidates
	}

	matches, err := searcher.IndexSearch(ctx, query, numCandidates)
	if err != nil {
		return nil, err
	}

	// The index pre-ranks; minScore filtering happens post-hoc and the
	// category filter still applies since ANN indexes rarely support it.
	results := make([]core.SearchResult, 0, limit)
	for _, match := range matches {
		if match.Score < minScore {
			continue
		}
		if filter != nil && !recordMatchesCategory(match.Record, filter.Category) {
			continue
		}
		results = append(results, core.SearchResult{
			Record:     match.Record,
			Similarity: clampScore(match.Score),
		})
	}

	sortBySimilarity(results)
	return truncate(results, limit), nil
}

// recordMatchesCategory mirrors the store-side category filter for
// index-delivered candidates.
func recordMatchesCategory(record *core.EmbeddingRecord, category string) bool {
	if category == "" {
		return true
	}
	for key, value := range record.SourceFields {
		if containsFold(key, "category") && equalsFoldTrimmed(value, category) {
			return true
		}
	}
	return false
}
