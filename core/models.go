package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for corpus records.
// It is generated using content-based hashing or assigned by the ingesting system.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// QuestionType classifies what an intake question was asking about.
// It is derived once when the answer is appended and never changes afterwards.
type QuestionType string

const (
	QuestionTypeProduct  QuestionType = "product"
	QuestionTypeIndustry QuestionType = "industry"
	QuestionTypeRegion   QuestionType = "region"
	QuestionTypeKeywords QuestionType = "keywords"
	QuestionTypeGeneral  QuestionType = "general"
)

// QuestionAnswer is one question/answer pair collected during intake.
type QuestionAnswer struct {
	Id        string
	Timestamp time.Time
	Question  string
	Answer    string
	Type      QuestionType
}

// SessionMetadata holds bookkeeping counters for a session.
type SessionMetadata struct {
	TotalQuestions   int
	LastGenerationAt time.Time // zero until the first lead generation
}

// Session is the conversational state for one intake, keyed by an opaque UUID.
// It is owned by the session store and mutated only through its operations.
type Session struct {
	ID           string
	CreatedAt    time.Time
	LastActivity time.Time
	Answers      []QuestionAnswer
	Metadata     SessionMetadata
}

// SessionStatus is a derived classification used for observability.
// It is recomputed on read and never persisted.
type SessionStatus string

const (
	SessionStatusNew       SessionStatus = "new"
	SessionStatusGathering SessionStatus = "gathering"
	SessionStatusIdle      SessionStatus = "idle"
	SessionStatusActive    SessionStatus = "active"
)

// idleAfter is how long a session with enough answers counts as idle.
const idleAfter = 5 * time.Minute

// Status derives the session's lifecycle classification at the given instant.
func (s *Session) Status(now time.Time) SessionStatus {
	switch {
	case len(s.Answers) == 0:
		return SessionStatusNew
	case len(s.Answers) < 3:
		return SessionStatusGathering
	case now.Sub(s.LastActivity) > idleAfter:
		return SessionStatusIdle
	default:
		return SessionStatusActive
	}
}

// SearchCriteria is the structured form of what the caller is looking for.
// Empty string fields mean the criterion was not provided.
// It is produced fresh per generation request and never persisted.
type SearchCriteria struct {
	Product  string
	Industry string
	Region   string
	Keywords []string
}

// IsEmpty reports whether no criterion was extracted at all.
func (c *SearchCriteria) IsEmpty() bool {
	return c.Product == "" && c.Industry == "" && c.Region == "" && len(c.Keywords) == 0
}

// EmbeddingRecord is one business record from the corpus with its
// precomputed embedding. Records are read-only from the engine's
// perspective; the persistent store owns them.
type EmbeddingRecord struct {
	Id               ID
	SourceDocumentID string
	Vector           []float32
	SourceFields     map[string]string
	CreatedAt        time.Time
}

// SearchResult is one scored candidate from a vector search.
// All scores are in [0,1].
type SearchResult struct {
	Record       *EmbeddingRecord
	Similarity   float32 // raw vector similarity
	Relevance    float32 // criteria keyword overlap
	Combined     float32 // final ranking score
	MatchReasons []string
}

// Lead is the caller-facing projection of a ranked candidate.
type Lead struct {
	Company  string
	Contact  string
	Email    string
	Phone    string
	Website  string
	Industry string
	Region   string
	Score    float32
	Reasons  []string
}

// ReportMetadata describes how a lead report was produced.
type ReportMetadata struct {
	TotalFound          int
	ProcessingTimeMs    int64
	QuestionAnswerCount int
}

// LeadReport is the final output of a generation request.
type LeadReport struct {
	Message  string
	Leads    []Lead
	Metadata ReportMetadata
}
