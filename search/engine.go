package search

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/brightquery/leadgen/core"
	"github.com/brightquery/leadgen/storage"
)

// Engine executes vector searches over the corpus. It holds an explicit
// ordered list of strategies — ANN index, optimized in-memory scan, naive
// full scan — and tries each in order. A strategy failure is logged and
// non-fatal; only when the last strategy also fails does the caller see
// an error, tagged with the strategy that produced it.
type Engine struct {
	store      storage.RecordStore
	strategies []Strategy
	cfg        Config
	pool       *ants.Pool
	logger     *slog.Logger

	mu        sync.Mutex
	searches  int64
	successes map[string]int64
	fallbacks map[string]int64
}

// Option configures an Engine.
type Option func(*Engine) error

// WithConfig overrides the strategy tuning. Zero fields keep defaults.
func WithConfig(cfg Config) Option {
	return func(e *Engine) error {
		e.cfg = cfg.normalize()
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithPoolSize sets the worker pool size used by BatchSearch.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			size = 1
		}
		if e.pool != nil {
			e.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		e.pool = pool
		return nil
	}
}

// NewEngine creates a search engine over the given store.
func NewEngine(store storage.RecordStore, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		store:     store,
		cfg:       DefaultConfig(),
		pool:      pool,
		logger:    slog.Default().With("component", "search-engine"),
		successes: map[string]int64{},
		fallbacks: map[string]int64{},
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			e.Release()
			return nil, err
		}
	}

	e.strategies = []Strategy{
		&indexStrategy{store: store, cfg: e.cfg},
		&scanStrategy{store: store, cfg: e.cfg},
		&naiveStrategy{store: store, cfg: e.cfg},
	}

	return e, nil
}

// Release frees the batch worker pool. The engine should not be used
// after calling Release.
func (e *Engine) Release() {
	if e.pool != nil {
		e.pool.Release()
	}
}

// Search runs the strategy chain for one query vector. Once the chain
// begins it runs to completion or final failure; individual strategy
// failures only move it to the next entry.
func (e *Engine) Search(ctx context.Context, query []float32, filter *storage.RecordFilter, limit int, minScore float32) ([]core.SearchResult, error) {
	if len(query) == 0 {
		return nil, ErrEmptyQueryVector
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	e.mu.Lock()
	e.searches++
	e.mu.Unlock()

	var lastErr error
	for _, strat := range e.strategies {
		results, err := strat.Search(ctx, query, filter, limit, minScore)
		if err != nil {
			lastErr = &core.SearchExecutionError{Strategy: strat.Name(), Err: err}
			e.recordFallback(strat.Name())
			e.logger.Warn("search strategy failed, trying next", "strategy", strat.Name(), "err", err)
			continue
		}
		e.recordSuccess(strat.Name())
		e.logger.Debug("search completed", "strategy", strat.Name(), "results", len(results))
		return results, nil
	}

	return nil, lastErr
}

// DefaultLimit is used when a caller passes a non-positive limit.
const DefaultLimit = 10

// Stats is a snapshot of the engine's strategy counters.
type Stats struct {
	TotalSearches     int64
	StrategySuccesses map[string]int64
	StrategyFallbacks map[string]int64
}

// Stats returns a copy of the engine's counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Stats{
		TotalSearches:     e.searches,
		StrategySuccesses: make(map[string]int64, len(e.successes)),
		StrategyFallbacks: make(map[string]int64, len(e.fallbacks)),
	}
	for k, v := range e.successes {
		s.StrategySuccesses[k] = v
	}
	for k, v := range e.fallbacks {
		s.StrategyFallbacks[k] = v
	}
	return s
}

func (e *Engine) recordSuccess(name string) {
	e.mu.Lock()
	e.successes[name]++
	e.mu.Unlock()
}

func (e *Engine) recordFallback(name string) {
	e.mu.Lock()
	e.fallbacks[name]++
	e.mu.Unlock()
}
