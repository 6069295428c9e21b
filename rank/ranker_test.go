package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightquery/leadgen/core"
)

func textileRecord() *core.EmbeddingRecord {
	return &core.EmbeddingRecord{
		SourceDocumentID: "doc-1",
		SourceFields: map[string]string{
			"Company Name":   "Bharat Textile Manufacturer",
			"Industry":       "Textile Manufacturing",
			"Region":         "India",
			"contact_person": "A. Sharma",
			"Email":          "sales@bharattextile.example",
		},
	}
}

func TestRank(t *testing.T) {
	ranker := NewRanker(nil)

	t.Run("stemmed criteria match record fields", func(t *testing.T) {
		results := []core.SearchResult{{Record: textileRecord(), Similarity: 0.7}}
		criteria := &core.SearchCriteria{Industry: "manufacturing", Region: "India"}

		ranked := ranker.Rank(results, criteria)
		require.Len(t, ranked, 1)

		// Both criteria match, so relevance renormalizes to 1.
		assert.InDelta(t, 1.0, float64(ranked[0].Relevance), 1e-5)
		assert.Contains(t, ranked[0].MatchReasons, "Industry match: manufacturing")
		assert.Contains(t, ranked[0].MatchReasons, "Region match: India")
	})

	t.Run("combined blends similarity and relevance", func(t *testing.T) {
		results := []core.SearchResult{{Record: textileRecord(), Similarity: 0.8}}
		criteria := &core.SearchCriteria{Region: "India"}

		ranked := ranker.Rank(results, criteria)
		// 0.7×0.8 + 0.3×1.0 = 0.86
		assert.InDelta(t, 0.86, float64(ranked[0].Combined), 1e-5)
	})

	t.Run("combined is capped at 1", func(t *testing.T) {
		results := []core.SearchResult{{Record: textileRecord(), Similarity: 1.0}}
		criteria := &core.SearchCriteria{Region: "India"}

		ranked := ranker.Rank(results, criteria)
		assert.LessOrEqual(t, ranked[0].Combined, float32(1.0))
	})

	t.Run("unmatched criteria lower relevance but not to an error", func(t *testing.T) {
		results := []core.SearchResult{{Record: textileRecord(), Similarity: 0.5}}
		criteria := &core.SearchCriteria{Product: "industrial robots"}

		ranked := ranker.Rank(results, criteria)
		assert.Zero(t, ranked[0].Relevance)
	})

	t.Run("match reasons are never empty", func(t *testing.T) {
		results := []core.SearchResult{{Record: textileRecord(), Similarity: 0.1}}
		ranked := ranker.Rank(results, &core.SearchCriteria{})

		require.NotEmpty(t, ranked[0].MatchReasons)
		assert.Contains(t, ranked[0].MatchReasons, "General content match")
	})

	t.Run("similarity bands are reported", func(t *testing.T) {
		high := ranker.Rank([]core.SearchResult{{Record: textileRecord(), Similarity: 0.85}}, &core.SearchCriteria{})
		assert.Contains(t, high[0].MatchReasons, "High content similarity")

		moderate := ranker.Rank([]core.SearchResult{{Record: textileRecord(), Similarity: 0.65}}, &core.SearchCriteria{})
		assert.Contains(t, moderate[0].MatchReasons, "Moderate content similarity")
	})

	t.Run("orders by combined score descending", func(t *testing.T) {
		weak := &core.EmbeddingRecord{SourceDocumentID: "weak", SourceFields: map[string]string{"Company": "Other Corp"}}
		results := []core.SearchResult{
			{Record: weak, Similarity: 0.6},
			{Record: textileRecord(), Similarity: 0.6},
		}
		criteria := &core.SearchCriteria{Industry: "textile"}

		ranked := ranker.Rank(results, criteria)
		assert.Equal(t, "doc-1", ranked[0].Record.SourceDocumentID)
		assert.Equal(t, "weak", ranked[1].Record.SourceDocumentID)
	})

	t.Run("keyword matches name the hits", func(t *testing.T) {
		results := []core.SearchResult{{Record: textileRecord(), Similarity: 0.5}}
		criteria := &core.SearchCriteria{Keywords: []string{"textile", "robotics"}}

		ranked := ranker.Rank(results, criteria)
		assert.Contains(t, ranked[0].MatchReasons, "Keyword match: textile")
		// Half the keywords matched.
		assert.InDelta(t, 0.5, float64(ranked[0].Relevance), 1e-5)
	})
}

func TestProjectCompanyInfo(t *testing.T) {
	t.Run("projects fuzzy field names", func(t *testing.T) {
		info := ProjectCompanyInfo(textileRecord())

		assert.Equal(t, "Bharat Textile Manufacturer", info.Company)
		assert.Equal(t, "A. Sharma", info.Contact)
		assert.Equal(t, "sales@bharattextile.example", info.Email)
		assert.Equal(t, "Textile Manufacturing", info.Industry)
		assert.Equal(t, "India", info.Region)
	})

	t.Run("handles underscore and dash key variants", func(t *testing.T) {
		record := &core.EmbeddingRecord{SourceFields: map[string]string{
			"COMPANY_NAME":   "Acme",
			"contact-person": "B. Lee",
			"web_site":       "acme.example",
		}}
		info := ProjectCompanyInfo(record)

		assert.Equal(t, "Acme", info.Company)
		assert.Equal(t, "B. Lee", info.Contact)
		assert.Equal(t, "acme.example", info.Website)
	})

	t.Run("ignores blank values", func(t *testing.T) {
		record := &core.EmbeddingRecord{SourceFields: map[string]string{
			"Company": "   ",
			"Email":   "x@example.com",
		}}
		info := ProjectCompanyInfo(record)

		assert.Empty(t, info.Company)
		assert.Equal(t, "x@example.com", info.Email)
	})
}

func TestTokenize(t *testing.T) {
	t.Run("drops stopwords and stems", func(t *testing.T) {
		tokens := tokenize("Manufacturers of the finest textiles in India")
		assert.Contains(t, tokens, "manufactur")
		assert.Contains(t, tokens, "textil")
		assert.Contains(t, tokens, "india")
		assert.NotContains(t, tokens, "the")
		assert.NotContains(t, tokens, "of")
	})

	t.Run("manufacturing and manufacturer collide", func(t *testing.T) {
		assert.Equal(t, stem("manufacturing"), stem("manufacturers"))
	})
}
