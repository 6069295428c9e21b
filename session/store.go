package session

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/brightquery/leadgen/core"
)

// Defaults for session lifetime management.
const (
	DefaultTTL           = time.Hour
	DefaultSweepInterval = 5 * time.Minute
)

// Store holds conversational sessions in memory, keyed by an opaque UUID.
// A session expires after TTL of inactivity; an independent janitor sweeps
// expired entries on a fixed interval, and an expired entry is reported
// absent on read even before the sweep reaches it, so the two paths share
// one expiry check. Appends to the same session are serialized so no
// concurrent read-modify-write can drop a question/answer pair.
type Store struct {
	cache  *gocache.Cache
	mu     sync.Mutex
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*config)

type config struct {
	ttl    time.Duration
	sweep  time.Duration
	logger *slog.Logger
}

// WithTTL sets the inactivity duration after which a session expires.
// Default is 1 hour.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithSweepInterval sets how often the background janitor removes expired
// sessions. Default is 5 minutes.
func WithSweepInterval(interval time.Duration) Option {
	return func(c *config) {
		if interval > 0 {
			c.sweep = interval
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewStore creates a session store.
func NewStore(opts ...Option) *Store {
	cfg := &config{
		ttl:    DefaultTTL,
		sweep:  DefaultSweepInterval,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Store{
		cache:  gocache.New(cfg.ttl, cfg.sweep),
		ttl:    cfg.ttl,
		logger: cfg.logger.With("component", "session-store"),
	}
}

// Create initializes an empty session under the given id, replacing any
// existing one.
func (s *Store) Create(id string) *core.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.create(id))
}

// create inserts a fresh session. Caller must hold s.mu.
func (s *Store) create(id string) *core.Session {
	now := time.Now().UTC()
	sess := &core.Session{
		ID:           id,
		CreatedAt:    now,
		LastActivity: now,
	}
	s.cache.Set(id, sess, s.ttl)
	return sess
}

// Get returns a snapshot of the session, or false if it is absent or has
// been inactive longer than the TTL. A lookup after expiry is a fresh
// miss; the stale entry is unreachable and removed by the janitor.
func (s *Store) Get(id string) (*core.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(id)
	if !ok {
		return nil, false
	}
	return snapshot(sess), true
}

// lookup fetches the live session pointer. Caller must hold s.mu.
func (s *Store) lookup(id string) (*core.Session, bool) {
	entry, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	return entry.(*core.Session), true
}

// AppendAnswer records one question/answer pair, creating the session
// lazily if absent. The question is classified once at insertion; the
// session's last activity advances and its expiry is refreshed. The whole
// read-modify-write is atomic with respect to other appends on the same id.
func (s *Store) AppendAnswer(id, question, answer string) *core.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(id)
	if !ok {
		sess = s.create(id)
	}

	now := time.Now().UTC()
	sess.Answers = append(sess.Answers, core.QuestionAnswer{
		Id:        uuid.NewString(),
		Timestamp: now,
		Question:  question,
		Answer:    answer,
		Type:      ClassifyQuestion(question),
	})
	sess.LastActivity = now
	sess.Metadata.TotalQuestions++

	// Re-set so the cache expiry tracks last activity.
	s.cache.Set(id, sess, s.ttl)

	return snapshot(sess)
}

// MarkGenerated records that leads were generated for the session.
// No-op if the session is absent or expired; that is not an error.
func (s *Store) MarkGenerated(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(id)
	if !ok {
		return
	}
	// In-place mutation: generation is not activity, so the expiry clock
	// keeps running from the last append.
	sess.Metadata.LastGenerationAt = time.Now().UTC()
}

// ClearExpired removes every expired session immediately instead of
// waiting for the janitor. Returns how many were removed and how many
// remain.
func (s *Store) ClearExpired() (cleared, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.cache.ItemCount()
	s.cache.DeleteExpired()
	remaining = s.cache.ItemCount()
	cleared = before - remaining
	if cleared > 0 {
		s.logger.Debug("cleared expired sessions", "cleared", cleared, "remaining", remaining)
	}
	return cleared, remaining
}

// Stats describes the store's current contents for observability.
type Stats struct {
	TotalSessions        int
	ActiveSessions       int
	TotalQuestionAnswers int
	EstimatedMemoryBytes int
}

// Rough per-entry overheads for the memory estimate.
const (
	sessionOverheadBytes = 300
	answerOverheadBytes  = 150
)

// Stats computes store statistics over the live, unexpired sessions.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stats := Stats{}
	for _, item := range s.cache.Items() {
		sess := item.Object.(*core.Session)
		stats.TotalSessions++
		if sess.Status(now) == core.SessionStatusActive {
			stats.ActiveSessions++
		}
		stats.TotalQuestionAnswers += len(sess.Answers)
		stats.EstimatedMemoryBytes += sessionOverheadBytes
		for _, qa := range sess.Answers {
			stats.EstimatedMemoryBytes += answerOverheadBytes + len(qa.Question) + len(qa.Answer)
		}
	}
	return stats
}

// snapshot copies a session so callers never share the stored instance.
func snapshot(sess *core.Session) *core.Session {
	cp := *sess
	cp.Answers = append([]core.QuestionAnswer(nil), sess.Answers...)
	return &cp
}
