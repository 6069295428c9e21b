package search

import (
	"context"

	"github.com/brightquery/leadgen/core"
	"github.com/brightquery/leadgen/storage"
)

// naiveStrategy is the last-resort full scan: fetch a bounded candidate
// window, score every candidate, sort, truncate. Nothing clever, nothing
// that can surprise.
type naiveStrategy struct {
	store storage.RecordStore
	cfg   Config
}

func (s *naiveStrategy) Name() string { return "naive-scan" }

func (s *naiveStrategy) Search(ctx context.Context, query []float32, filter *storage.RecordFilter, limit int, minScore float32) ([]core.SearchResult, error) {
	window := limit * s.cfg.CandidateMultiplier
	if window > s.cfg.NaiveFetchCap {
		window = s.cfg.NaiveFetchCap
	}

	records, err := s.store.FetchRecords(ctx, filter, window)
	if err != nil {
		return nil, err
	}

	results := make([]core.SearchResult, 0, limit)
	for _, record := range records {
		similarity := CosineSimilarity(query, record.Vector)
		if similarity >= minScore {
			results = append(results, core.SearchResult{
				Record:     record,
				Similarity: similarity,
			})
		}
	}

	sortBySimilarity(results)
	return truncate(results, limit), nil
}
