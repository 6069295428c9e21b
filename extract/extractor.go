package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/brightquery/leadgen/ai"
	"github.com/brightquery/leadgen/core"
)

// Path identifies which extraction strategy produced the criteria.
// Callers receive the same SearchCriteria shape either way; the path is
// kept for statistics only.
type Path string

const (
	PathLLM      Path = "llm"
	PathFallback Path = "fallback"
)

// Extractor turns accumulated question/answer pairs into structured search
// criteria. The primary strategy asks a language model for a fixed JSON
// shape; the fallback scans the answers against small dictionaries. The
// strategies form an explicit ordered list tried until one succeeds; the
// fallback cannot fail, so extraction as a whole cannot either.
type Extractor struct {
	completer ai.Completer
	dicts     Dictionaries
	logger    *slog.Logger

	llmCount      atomic.Int64
	fallbackCount atomic.Int64
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDictionaries overrides the fallback dictionaries.
func WithDictionaries(dicts Dictionaries) Option {
	return func(e *Extractor) {
		e.dicts = dicts
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewExtractor creates an extractor. A nil completer disables the LLM
// strategy; extraction then always runs the fallback.
func NewExtractor(completer ai.Completer, opts ...Option) *Extractor {
	e := &Extractor{
		completer: completer,
		dicts:     DefaultDictionaries(),
		logger:    slog.Default().With("component", "criteria-extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract produces search criteria from the session's answers.
// An empty answer sequence is rejected with core.ErrInsufficientData; a
// search with no criteria at all is wasteful and callers must not reach
// this point with nothing to work from.
func (e *Extractor) Extract(ctx context.Context, answers []core.QuestionAnswer) (*core.SearchCriteria, Path, error) {
	if len(answers) == 0 {
		return nil, "", core.ErrInsufficientData
	}

	if e.completer != nil {
		criteria, err := e.llmExtract(ctx, answers)
		if err == nil {
			e.llmCount.Add(1)
			return criteria, PathLLM, nil
		}
		e.logger.Warn("llm extraction failed, using fallback", "err", err)
	}

	criteria := e.heuristicExtract(answers)
	e.fallbackCount.Add(1)
	return criteria, PathFallback, nil
}

// Stats reports how often each extraction path ran.
type Stats struct {
	LLMExtractions      int64
	FallbackExtractions int64
}

// Stats returns cumulative extraction statistics.
func (e *Extractor) Stats() Stats {
	return Stats{
		LLMExtractions:      e.llmCount.Load(),
		FallbackExtractions: e.fallbackCount.Load(),
	}
}

// llmCriteria matches the JSON shape the model is instructed to emit.
// Pointer fields distinguish explicit nulls from absent criteria.
type llmCriteria struct {
	Product  *string  `json:"product"`
	Industry *string  `json:"industry"`
	Region   *string  `json:"region"`
	Keywords []string `json:"keywords"`
}

// llmExtract asks the language model for structured criteria and parses
// its output strictly. Any upstream failure or parse failure is returned
// so the caller can run the fallback instead.
func (e *Extractor) llmExtract(ctx context.Context, answers []core.QuestionAnswer) (*core.SearchCriteria, error) {
	response, err := e.completer.Complete(ctx, extractionSystemPrompt, formatTranscript(answers))
	if err != nil {
		return nil, err
	}

	response = ai.RepairJSON(strings.TrimSpace(response))

	var parsed llmCriteria
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return nil, fmt.Errorf("malformed criteria response: %w", err)
	}

	criteria := &core.SearchCriteria{
		Product:  derefTrimmed(parsed.Product),
		Industry: derefTrimmed(parsed.Industry),
		Region:   derefTrimmed(parsed.Region),
		Keywords: cleanKeywords(parsed.Keywords),
	}
	return criteria, nil
}

// formatTranscript renders the Q&A history as the model's user prompt.
func formatTranscript(answers []core.QuestionAnswer) string {
	var b strings.Builder
	for _, qa := range answers {
		b.WriteString("Q: ")
		b.WriteString(qa.Question)
		b.WriteString("\nA: ")
		b.WriteString(qa.Answer)
		b.WriteString("\n")
	}
	return b.String()
}

func derefTrimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func cleanKeywords(keywords []string) []string {
	cleaned := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw != "" {
			cleaned = append(cleaned, kw)
		}
	}
	return cleaned
}
