package leadgen

import (
	"sync"
	"time"
)

// GenerationStats tracks rolling counters over lead generations. The
// average is maintained incrementally so a snapshot is O(1); Reset starts
// a fresh window without touching per-component counters.
type GenerationStats struct {
	mu          sync.Mutex
	total       int64
	successes   int64
	failures    int64
	totalTimeMs int64
}

// GenerationSnapshot is a point-in-time copy of the counters.
type GenerationSnapshot struct {
	TotalGenerations        int64
	SuccessfulGenerations   int64
	FailedGenerations       int64
	AverageProcessingTimeMs int64
	SuccessRatePercent      float64
}

func (g *GenerationStats) recordSuccess(elapsed time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.total++
	g.successes++
	g.totalTimeMs += elapsed.Milliseconds()
}

func (g *GenerationStats) recordFailure() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.total++
	g.failures++
}

// Snapshot returns a copy of the current counters. The average covers
// successful generations only; failures abort at unpredictable stages and
// would skew it.
func (g *GenerationStats) Snapshot() GenerationSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := GenerationSnapshot{
		TotalGenerations:      g.total,
		SuccessfulGenerations: g.successes,
		FailedGenerations:     g.failures,
	}
	if g.successes > 0 {
		snap.AverageProcessingTimeMs = g.totalTimeMs / g.successes
	}
	if g.total > 0 {
		snap.SuccessRatePercent = float64(g.successes) / float64(g.total) * 100
	}
	return snap
}

// Reset zeroes all counters.
func (g *GenerationStats) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.total = 0
	g.successes = 0
	g.failures = 0
	g.totalTimeMs = 0
}
