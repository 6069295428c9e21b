package search

import (
	"context"

	"github.com/brightquery/leadgen/core"
	"github.com/brightquery/leadgen/storage"
)

// Strategy is one interchangeable way to execute a vector search. The
// engine holds an ordered list of strategies and tries each in turn, so a
// strategy reports failure by returning an error rather than by policy of
// its own.
type Strategy interface {
	// Name identifies the strategy in logs and statistics.
	Name() string

	// Search returns candidates scored against the query vector, filtered
	// by minScore, best first, at most limit of them.
	Search(ctx context.Context, query []float32, filter *storage.RecordFilter, limit int, minScore float32) ([]core.SearchResult, error)
}
