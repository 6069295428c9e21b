package search

import (
	"context"
	"slices"

	"github.com/brightquery/leadgen/core"
	"github.com/brightquery/leadgen/storage"
)

// scanStrategy is the optimized in-memory scan: it loads a larger working
// set than the naive strategy, precomputes the query norm once, scores
// each candidate in a single combined pass, and stops early once enough
// high-confidence results have accumulated.
type scanStrategy struct {
	store storage.RecordStore
	cfg   Config
}

func (s *scanStrategy) Name() string { return "in-memory-scan" }

func (s *scanStrategy) Search(ctx context.Context, query []float32, filter *storage.RecordFilter, limit int, minScore float32) ([]core.SearchResult, error) {
	records, err := s.store.FetchRecords(ctx, filter, s.cfg.WorkingSetSize)
	if err != nil {
		return nil, err
	}
	return scoreWorkingSet(records, query, limit, minScore, s.cfg), nil
}

// scoreWorkingSet scores one query vector against a fetched working set.
// The batch variant reuses it unchanged over a shared set, which is what
// guarantees batch results are identical to per-query scans.
//
// Early termination: once earlyTerminationFactor × limit results exceed
// the high-confidence threshold the scan stops, trading completeness at
// the tail for latency on large corpora.
func scoreWorkingSet(records []*core.EmbeddingRecord, query []float32, limit int, minScore float32, cfg Config) []core.SearchResult {
	queryNorm := vectorNorm(query)
	quota := cfg.EarlyTerminationFactor * limit

	results := make([]core.SearchResult, 0, limit)
	highConfidence := 0
	for _, record := range records {
		similarity := similarityWithNorm(query, queryNorm, record.Vector)
		if similarity >= minScore {
			results = append(results, core.SearchResult{
				Record:     record,
				Similarity: similarity,
			})
			if similarity >= cfg.HighConfidence {
				highConfidence++
				if highConfidence >= quota {
					break
				}
			}
		}
	}

	sortBySimilarity(results)
	return truncate(results, limit)
}

// sortBySimilarity orders results best first. The sort is stable so that
// equal scores keep the store's fetch order, which in turn keeps batch
// and single-query results comparable element-wise.
func sortBySimilarity(results []core.SearchResult) {
	slices.SortStableFunc(results, func(a, b core.SearchResult) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})
}

func truncate(results []core.SearchResult, limit int) []core.SearchResult {
	if len(results) > limit {
		return results[:limit]
	}
	return results
}
