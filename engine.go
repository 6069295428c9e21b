// Copyright 2025 Brightquery
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package leadgen

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/brightquery/leadgen/ai"
	"github.com/brightquery/leadgen/core"
	"github.com/brightquery/leadgen/extract"
	"github.com/brightquery/leadgen/rank"
	"github.com/brightquery/leadgen/search"
	"github.com/brightquery/leadgen/session"
	"github.com/brightquery/leadgen/storage"
)

// Generation defaults.
const (
	DefaultSearchLimit   = 10
	DefaultMinSimilarity = 0.5
)

// ErrNoAIProvider is returned when a generation needs the embedding
// service but the engine was built without an AI provider.
var ErrNoAIProvider = errors.New("no AI provider configured")

// Engine orchestrates the full lead generation pipeline: conversational
// intake, criteria extraction, vector search, and ranking. It owns the
// session store and the component stats; the record store and AI provider
// are injected and remain owned by the caller.
type Engine struct {
	sessions  *session.Store
	store     storage.RecordStore
	provider  ai.AIProvider
	extractor *extract.Extractor
	searcher  *search.Engine
	ranker    *rank.Ranker
	logger    *slog.Logger
	stats     *GenerationStats

	searchLimit   int
	minSimilarity float32
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	sessionOpts   []session.Option
	searchOpts    []search.Option
	extractOpts   []extract.Option
	rankOpts      []rank.Option
	logger        *slog.Logger
	searchLimit   int
	minSimilarity float32
}

// WithSessionOptions forwards options to the embedded session store.
func WithSessionOptions(opts ...session.Option) Option {
	return func(o *options) {
		o.sessionOpts = append(o.sessionOpts, opts...)
	}
}

// WithSearchOptions forwards options to the embedded search engine.
func WithSearchOptions(opts ...search.Option) Option {
	return func(o *options) {
		o.searchOpts = append(o.searchOpts, opts...)
	}
}

// WithExtractOptions forwards options to the criteria extractor.
func WithExtractOptions(opts ...extract.Option) Option {
	return func(o *options) {
		o.extractOpts = append(o.extractOpts, opts...)
	}
}

// WithRankOptions forwards options to the result ranker.
func WithRankOptions(opts ...rank.Option) Option {
	return func(o *options) {
		o.rankOpts = append(o.rankOpts, opts...)
	}
}

// WithLogger sets a custom logger for the engine and its components.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSearchLimit sets how many candidates each generation retrieves.
// Default is 10.
func WithSearchLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.searchLimit = limit
		}
	}
}

// WithMinSimilarity sets the similarity floor for search candidates.
// Default is 0.5.
func WithMinSimilarity(min float32) Option {
	return func(o *options) {
		if min > 0 {
			o.minSimilarity = min
		}
	}
}

// NewEngine wires the pipeline over the given record store and AI
// provider. The provider may be nil; extraction and report formatting
// then run their deterministic fallbacks, and generation fails only at
// the embedding step.
func NewEngine(store storage.RecordStore, provider ai.AIProvider, opts ...Option) (*Engine, error) {
	o := &options{
		logger:        slog.Default(),
		searchLimit:   DefaultSearchLimit,
		minSimilarity: DefaultMinSimilarity,
	}
	for _, opt := range opts {
		opt(o)
	}

	var completer ai.Completer
	if provider != nil {
		completer = provider.Completer()
	}

	searcher, err := search.NewEngine(store, append([]search.Option{search.WithLogger(o.logger)}, o.searchOpts...)...)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		sessions: session.NewStore(append([]session.Option{session.WithLogger(o.logger)}, o.sessionOpts...)...),
		store:    store,
		provider: provider,
		extractor: extract.NewExtractor(completer,
			append([]extract.Option{extract.WithLogger(o.logger)}, o.extractOpts...)...),
		searcher: searcher,
		ranker: rank.NewRanker(completer,
			append([]rank.Option{rank.WithLogger(o.logger)}, o.rankOpts...)...),
		logger:        o.logger.With("component", "leadgen-engine"),
		stats:         &GenerationStats{},
		searchLimit:   o.searchLimit,
		minSimilarity: o.minSimilarity,
	}
	return e, nil
}

// Close releases the engine's resources. The injected record store and
// AI provider are not closed; the caller owns them.
func (e *Engine) Close() {
	e.searcher.Release()
}

// AppendResult describes the session after an answer was recorded.
type AppendResult struct {
	SessionID    string
	MessageCount int
	Status       core.SessionStatus
	LastActivity time.Time
}

// AppendAnswer records one question/answer pair on a session. An empty
// sessionID starts a new session with a fresh UUID; the assigned id is
// returned either way.
func (e *Engine) AppendAnswer(sessionID, question, answer string) (*AppendResult, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	} else if err := core.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	if err := core.ValidateQuestionAnswer(question, answer); err != nil {
		return nil, err
	}

	sess := e.sessions.AppendAnswer(sessionID, question, answer)
	e.logger.Debug("answer recorded",
		"session", sessionID, "messages", len(sess.Answers))

	return &AppendResult{
		SessionID:    sess.ID,
		MessageCount: len(sess.Answers),
		Status:       sess.Status(time.Now().UTC()),
		LastActivity: sess.LastActivity,
	}, nil
}

// SessionInfo returns a snapshot of a session, or core.ErrSessionNotFound.
func (e *Engine) SessionInfo(sessionID string) (*core.Session, error) {
	if err := core.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	sess, ok := e.sessions.Get(sessionID)
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return sess, nil
}

// GenerateLeads runs the full pipeline for a session: extract criteria
// from the collected answers, compose and embed the search query, search
// the corpus, rank the candidates, and format the report. Extraction and
// formatting degrade to deterministic fallbacks on AI failure; only a
// failed embedding, or exhaustion of every search strategy, fails the
// generation.
func (e *Engine) GenerateLeads(ctx context.Context, sessionID string) (*core.LeadReport, error) {
	started := time.Now()

	report, err := e.generate(ctx, sessionID, started)
	if err != nil {
		e.stats.recordFailure()
		return nil, err
	}
	e.stats.recordSuccess(time.Since(started))
	return report, nil
}

func (e *Engine) generate(ctx context.Context, sessionID string, started time.Time) (*core.LeadReport, error) {
	if err := core.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}
	sess, ok := e.sessions.Get(sessionID)
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	if len(sess.Answers) == 0 {
		return nil, core.ErrInsufficientData
	}

	criteria, path, err := e.extractor.Extract(ctx, sess.Answers)
	if err != nil {
		return nil, err
	}
	e.logger.Info("criteria extracted",
		"session", sessionID, "path", path,
		"product", criteria.Product, "industry", criteria.Industry,
		"region", criteria.Region, "keywords", len(criteria.Keywords))

	query := extract.ComposeQuery(criteria)

	var vector []float32
	if e.provider != nil {
		vector, err = e.provider.Embedder().EmbedText(ctx, query)
	} else {
		err = ErrNoAIProvider
	}
	if err != nil {
		return nil, &core.UpstreamServiceError{
			Service:       "embedding",
			Stage:         "query-embedding",
			FallbackTried: false,
			Err:           err,
		}
	}

	results, err := e.searcher.Search(ctx, vector, nil, e.searchLimit, e.minSimilarity)
	if err != nil {
		return nil, err
	}

	ranked := e.ranker.Rank(results, criteria)
	report, err := e.ranker.Format(ctx, ranked, criteria)
	if err != nil {
		return nil, err
	}

	e.sessions.MarkGenerated(sessionID)

	report.Metadata = core.ReportMetadata{
		TotalFound:          len(report.Leads),
		ProcessingTimeMs:    time.Since(started).Milliseconds(),
		QuestionAnswerCount: len(sess.Answers),
	}

	e.logger.Info("lead generation completed",
		"session", sessionID, "leads", len(report.Leads),
		"elapsed_ms", report.Metadata.ProcessingTimeMs)

	return report, nil
}

// ClearExpiredSessions removes expired sessions immediately.
func (e *Engine) ClearExpiredSessions() (cleared, remaining int) {
	return e.sessions.ClearExpired()
}

// Health is a snapshot of the engine's components for observability.
type Health struct {
	Sessions   session.Stats
	Storage    storage.DecodeStats
	Search     search.Stats
	Extraction extract.Stats
	Formatting rank.FormatStats
	Generation GenerationSnapshot
}

// Health gathers statistics from every component.
func (e *Engine) Health() Health {
	return Health{
		Sessions:   e.sessions.Stats(),
		Storage:    e.store.Stats(),
		Search:     e.searcher.Stats(),
		Extraction: e.extractor.Stats(),
		Formatting: e.ranker.Stats(),
		Generation: e.stats.Snapshot(),
	}
}

// ResetStats zeroes the rolling generation counters. Component counters
// (search, extraction, formatting) are cumulative and unaffected.
func (e *Engine) ResetStats() {
	e.stats.Reset()
}
