package rank

import (
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/brightquery/leadgen/ai"
	"github.com/brightquery/leadgen/core"
)

// Relevance mix. The per-criterion weights are renormalized over the
// subset of criteria actually present, so a criteria record with only an
// industry still produces a full-range relevance score.
const (
	weightProduct  = 0.4
	weightIndustry = 0.3
	weightRegion   = 0.2
	weightKeywords = 0.1

	similarityWeight = 0.7
	relevanceWeight  = 0.3
)

// Similarity bands reported in match reasons.
const (
	highSimilarity     = 0.8
	moderateSimilarity = 0.6
)

// Ranker combines raw vector similarity with criteria-keyword overlap
// into the final score, attaches human-readable match reasons, and
// formats the ranked candidates into a lead report.
type Ranker struct {
	completer   ai.Completer
	minCombined float32
	logger      *slog.Logger

	llmFormats      atomic.Int64
	fallbackFormats atomic.Int64
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithMinCombinedScore sets the threshold below which the fallback
// formatter drops candidates. Default 0.3.
func WithMinCombinedScore(min float32) Option {
	return func(r *Ranker) {
		if min > 0 {
			r.minCombined = min
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRanker creates a ranker. A nil completer disables the LLM formatting
// path; reports are then always produced by the deterministic template.
func NewRanker(completer ai.Completer, opts ...Option) *Ranker {
	r := &Ranker{
		completer:   completer,
		minCombined: 0.3,
		logger:      slog.Default().With("component", "result-ranker"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every candidate against the criteria and orders them by
// combined score, best first. The input slice is modified in place.
func (r *Ranker) Rank(results []core.SearchResult, criteria *core.SearchCriteria) []core.SearchResult {
	for i := range results {
		relevance, reasons := scoreRelevance(results[i].Record, criteria)
		results[i].Relevance = relevance

		combined := similarityWeight*results[i].Similarity + relevanceWeight*relevance
		if combined > 1.0 {
			combined = 1.0
		}
		results[i].Combined = combined
		results[i].MatchReasons = appendSimilarityBand(reasons, results[i].Similarity)
	}

	slices.SortStableFunc(results, func(a, b core.SearchResult) int {
		if a.Combined > b.Combined {
			return -1
		}
		if a.Combined < b.Combined {
			return 1
		}
		return 0
	})
	return results
}

// scoreRelevance computes the weighted term-overlap of the record's
// source fields against each present criterion, and names the criteria
// that textually matched.
func scoreRelevance(record *core.EmbeddingRecord, criteria *core.SearchCriteria) (float32, []string) {
	tokens := recordTokens(record)

	var weightSum, score float32
	var reasons []string

	if criteria.Product != "" {
		weightSum += weightProduct
		if ratio := termOverlap(criteria.Product, tokens); ratio > 0 {
			score += weightProduct * ratio
			reasons = append(reasons, "Product match: "+criteria.Product)
		}
	}
	if criteria.Industry != "" {
		weightSum += weightIndustry
		if ratio := termOverlap(criteria.Industry, tokens); ratio > 0 {
			score += weightIndustry * ratio
			reasons = append(reasons, "Industry match: "+criteria.Industry)
		}
	}
	if criteria.Region != "" {
		weightSum += weightRegion
		if ratio := termOverlap(criteria.Region, tokens); ratio > 0 {
			score += weightRegion * ratio
			reasons = append(reasons, "Region match: "+criteria.Region)
		}
	}
	if len(criteria.Keywords) > 0 {
		weightSum += weightKeywords
		matched := 0
		var hits []string
		for _, kw := range criteria.Keywords {
			if termOverlap(kw, tokens) > 0 {
				matched++
				hits = append(hits, kw)
			}
		}
		if matched > 0 {
			score += weightKeywords * float32(matched) / float32(len(criteria.Keywords))
			reasons = append(reasons, "Keyword match: "+strings.Join(hits, ", "))
		}
	}

	if weightSum == 0 {
		return 0, reasons
	}
	return score / weightSum, reasons
}

// appendSimilarityBand adds the qualitative similarity reason. Reasons
// must never be empty; with no textual match and no notable similarity
// the generic reason stands in.
func appendSimilarityBand(reasons []string, similarity float32) []string {
	switch {
	case similarity >= highSimilarity:
		reasons = append(reasons, "High content similarity")
	case similarity >= moderateSimilarity:
		reasons = append(reasons, "Moderate content similarity")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "General content match")
	}
	return reasons
}
