package search

// Config holds the tunable constants of the search strategies. The early
// termination trigger in particular trades tail recall for latency in a
// corpus-size-dependent way, so it is configuration, not contract.
type Config struct {
	// WorkingSetSize bounds how many candidate records the in-memory scan
	// (and the batch variant) loads from the store. Default 1000.
	WorkingSetSize int

	// CandidateMultiplier scales the fetch window of the naive strategy
	// and the candidate request of the index strategy: limit × multiplier.
	// Default 10.
	CandidateMultiplier int

	// NaiveFetchCap caps the naive strategy's fetch window regardless of
	// limit. Default 500.
	NaiveFetchCap int

	// MinIndexCandidates floors the index strategy's candidate request.
	// Default 100.
	MinIndexCandidates int

	// HighConfidence is the similarity above which a result counts toward
	// the early-termination quota. Default 0.8.
	HighConfidence float32

	// EarlyTerminationFactor stops the scan once factor × limit results
	// exceed HighConfidence. Default 3.
	EarlyTerminationFactor int
}

// DefaultConfig returns the default strategy tuning.
func DefaultConfig() Config {
	return Config{
		WorkingSetSize:         1000,
		CandidateMultiplier:    10,
		NaiveFetchCap:          500,
		MinIndexCandidates:     100,
		HighConfidence:         0.8,
		EarlyTerminationFactor: 3,
	}
}

// normalize fills zero values with defaults so a partially populated
// Config stays usable.
func (c Config) normalize() Config {
	def := DefaultConfig()
	if c.WorkingSetSize <= 0 {
		c.WorkingSetSize = def.WorkingSetSize
	}
	if c.CandidateMultiplier <= 0 {
		c.CandidateMultiplier = def.CandidateMultiplier
	}
	if c.NaiveFetchCap <= 0 {
		c.NaiveFetchCap = def.NaiveFetchCap
	}
	if c.MinIndexCandidates <= 0 {
		c.MinIndexCandidates = def.MinIndexCandidates
	}
	if c.HighConfidence <= 0 {
		c.HighConfidence = def.HighConfidence
	}
	if c.EarlyTerminationFactor <= 0 {
		c.EarlyTerminationFactor = def.EarlyTerminationFactor
	}
	return c
}
