package search

import (
	"context"
	"sync"

	"github.com/brightquery/leadgen/core"
	"github.com/brightquery/leadgen/storage"
)

// BatchSearch scores multiple query vectors against one shared working
// set, loading and normalizing it exactly once. Each query is scored
// independently with the same routine the in-memory scan uses, so the
// output is identical, element-wise, to running Search once per vector
// on a scan-served store: the batch is a cost amortization, never a
// semantic change. The batch never consults a store's index, so when the
// store implements storage.IndexSearcher a single Search may return the
// index's candidates instead.
//
// Scoring is read-only against the shared set, so queries run in parallel
// on the engine's worker pool without affecting results.
func (e *Engine) BatchSearch(ctx context.Context, queries [][]float32, filter *storage.RecordFilter, limit int, minScore float32) ([][]core.SearchResult, error) {
	if len(queries) == 0 {
		return [][]core.SearchResult{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	records, err := e.store.FetchRecords(ctx, filter, e.cfg.WorkingSetSize)
	if err != nil {
		return nil, &core.SearchExecutionError{Strategy: "batch-scan", Err: err}
	}

	e.mu.Lock()
	e.searches += int64(len(queries))
	e.mu.Unlock()

	out := make([][]core.SearchResult, len(queries))
	var wg sync.WaitGroup
	for i, query := range queries {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if len(query) == 0 {
				out[i] = []core.SearchResult{}
				return
			}
			out[i] = scoreWorkingSet(records, query, limit, minScore, e.cfg)
		}
		if err := e.pool.Submit(task); err != nil {
			// Pool exhausted or released: score inline rather than fail.
			task()
		}
	}
	wg.Wait()

	return out, nil
}
