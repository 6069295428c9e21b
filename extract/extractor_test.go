package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightquery/leadgen/ai/mock"
	"github.com/brightquery/leadgen/core"
)

func answers(pairs ...[2]string) []core.QuestionAnswer {
	out := make([]core.QuestionAnswer, len(pairs))
	for i, p := range pairs {
		out[i] = core.QuestionAnswer{
			Id:        "qa",
			Timestamp: time.Now().UTC(),
			Question:  p[0],
			Answer:    p[1],
		}
	}
	return out
}

func TestExtract(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty answer list", func(t *testing.T) {
		extractor := NewExtractor(nil)
		_, _, err := extractor.Extract(ctx, nil)
		assert.ErrorIs(t, err, core.ErrInsufficientData)
	})

	t.Run("uses the LLM path when the model responds", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			assert.Contains(t, userPrompt, "Q: What do you sell?")
			return `{"product": "cotton fabric", "industry": "textile", "region": "India", "keywords": ["export", "wholesale"]}`, nil
		}

		extractor := NewExtractor(completer)
		criteria, path, err := extractor.Extract(ctx, answers(
			[2]string{"What do you sell?", "Cotton fabric"},
		))
		require.NoError(t, err)

		assert.Equal(t, PathLLM, path)
		assert.Equal(t, "cotton fabric", criteria.Product)
		assert.Equal(t, "textile", criteria.Industry)
		assert.Equal(t, "India", criteria.Region)
		assert.Equal(t, []string{"export", "wholesale"}, criteria.Keywords)
	})

	t.Run("treats JSON null fields as absent", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return `{"product": null, "industry": "chemicals", "region": null, "keywords": []}`, nil
		}

		extractor := NewExtractor(completer)
		criteria, path, err := extractor.Extract(ctx, answers([2]string{"q", "a"}))
		require.NoError(t, err)

		assert.Equal(t, PathLLM, path)
		assert.Empty(t, criteria.Product)
		assert.Equal(t, "chemicals", criteria.Industry)
		assert.Empty(t, criteria.Region)
		assert.Empty(t, criteria.Keywords)
	})

	t.Run("falls back when the model fails", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "", errors.New("connection refused")
		}

		extractor := NewExtractor(completer)
		criteria, path, err := extractor.Extract(ctx, answers(
			[2]string{"What does your business do?", "We need textile manufacturing partners in India"},
		))
		require.NoError(t, err)

		assert.Equal(t, PathFallback, path)
		assert.Equal(t, "manufacturing", criteria.Industry)
		assert.Equal(t, "India", criteria.Region)
		assert.NotNil(t, criteria.Keywords)
	})

	t.Run("falls back on malformed model output", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.CompleteFunc = func(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
			return "I think you want textiles!", nil
		}

		extractor := NewExtractor(completer)
		_, path, err := extractor.Extract(ctx, answers([2]string{"q", "looking for chemical suppliers"}))
		require.NoError(t, err)
		assert.Equal(t, PathFallback, path)
	})

	t.Run("nil completer always uses fallback", func(t *testing.T) {
		extractor := NewExtractor(nil)
		criteria, path, err := extractor.Extract(ctx, answers(
			[2]string{"q", "pharmaceutical exporters in Germany"},
		))
		require.NoError(t, err)

		assert.Equal(t, PathFallback, path)
		assert.Equal(t, "pharmaceuticals", criteria.Industry)
		assert.Equal(t, "Germany", criteria.Region)
	})

	t.Run("counts path usage", func(t *testing.T) {
		extractor := NewExtractor(nil)
		_, _, err := extractor.Extract(ctx, answers([2]string{"q", "a"}))
		require.NoError(t, err)

		stats := extractor.Stats()
		assert.Equal(t, int64(0), stats.LLMExtractions)
		assert.Equal(t, int64(1), stats.FallbackExtractions)
	})
}

func TestHeuristicExtract(t *testing.T) {
	ctx := context.Background()
	extractor := NewExtractor(nil)

	t.Run("first dictionary hit wins", func(t *testing.T) {
		criteria, _, err := extractor.Extract(ctx, answers(
			[2]string{"q", "manufacturing and textile companies in india and china"},
		))
		require.NoError(t, err)

		assert.Equal(t, "manufacturing", criteria.Industry)
		assert.Equal(t, "India", criteria.Region)
	})

	t.Run("specific industries outrank generic trade terms", func(t *testing.T) {
		criteria, _, err := extractor.Extract(ctx, answers(
			[2]string{"q", "electronics exporters and trading houses"},
		))
		require.NoError(t, err)
		assert.Equal(t, "electronics", criteria.Industry)
	})

	t.Run("quoted phrases become keywords", func(t *testing.T) {
		criteria, _, err := extractor.Extract(ctx, answers(
			[2]string{"q", `we need "organic cotton" suppliers`},
		))
		require.NoError(t, err)
		assert.Contains(t, criteria.Keywords, "organic cotton")
	})

	t.Run("capitalized words become keywords", func(t *testing.T) {
		criteria, _, err := extractor.Extract(ctx, answers(
			[2]string{"q", "looking for Acme quality suppliers"},
		))
		require.NoError(t, err)
		assert.Contains(t, criteria.Keywords, "Acme")
	})

	t.Run("keywords are capped", func(t *testing.T) {
		extractor := NewExtractor(nil, WithDictionaries(Dictionaries{MaxKeywords: 2}))
		criteria, _, err := extractor.Extract(ctx, answers(
			[2]string{"q", "Alpha Beta Gamma Delta Epsilon"},
		))
		require.NoError(t, err)
		assert.Len(t, criteria.Keywords, 2)
	})

	t.Run("keywords never nil even when nothing matches", func(t *testing.T) {
		criteria, _, err := extractor.Extract(ctx, answers([2]string{"q", "nothing useful here"}))
		require.NoError(t, err)
		assert.NotNil(t, criteria.Keywords)
	})
}

func TestComposeQuery(t *testing.T) {
	t.Run("renders all criteria in fixed order", func(t *testing.T) {
		query := ComposeQuery(&core.SearchCriteria{
			Product:  "cotton fabric",
			Industry: "textile",
			Region:   "India",
			Keywords: []string{"export", "wholesale"},
		})

		assert.Equal(t,
			"cotton fabric textile industry located in India export wholesale "+queryBoilerplate,
			query)
	})

	t.Run("omits absent criteria", func(t *testing.T) {
		query := ComposeQuery(&core.SearchCriteria{Industry: "chemicals"})
		assert.Equal(t, "chemicals industry "+queryBoilerplate, query)
	})

	t.Run("degenerates to boilerplate with no criteria", func(t *testing.T) {
		query := ComposeQuery(&core.SearchCriteria{})
		assert.Equal(t, queryBoilerplate, query)
	})
}
