package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/brightquery/leadgen/core"
)

// Document is the JSON shape of a stored business record. The embedding
// field is kept raw because ingestion systems have produced it both as a
// dense array and as an object keyed by numeric strings; the drift is
// resolved here, once, rather than re-detected at every call site.
type Document struct {
	ID        string            `json:"id"`
	Embedding json.RawMessage   `json:"embedding"`
	Fields    map[string]string `json:"fields"`
	CreatedAt time.Time         `json:"createdAt"`
}

// DecodeRecord turns a raw JSON document into an EmbeddingRecord with a
// dense vector. A document whose embedding is absent or unconvertible
// yields an error; callers skip and count such records instead of
// propagating the failure.
func DecodeRecord(data []byte) (*core.EmbeddingRecord, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	vector, err := NormalizeEmbedding(doc.Embedding)
	if err != nil {
		return nil, err
	}

	fields := doc.Fields
	if fields == nil {
		fields = map[string]string{}
	}

	return &core.EmbeddingRecord{
		Id:               core.IDFromContent(doc.ID),
		SourceDocumentID: doc.ID,
		Vector:           vector,
		SourceFields:     fields,
		CreatedAt:        doc.CreatedAt,
	}, nil
}

// NormalizeEmbedding converts an embedding in either of its two storage
// representations to the dense form:
//
//   - a dense JSON array: [0.1, 0.2, ...]
//   - an object keyed by numeric strings: {"0": 0.1, "1": 0.2, ...}
//
// Both representations of the same vector normalize to identical slices.
// Anything else fails with ErrMalformedEmbedding; an invalid vector is
// treated as absent, never as a zero vector.
func NormalizeEmbedding(raw json.RawMessage) ([]float32, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrMissingEmbedding
	}

	var dense []float32
	if err := json.Unmarshal(raw, &dense); err == nil {
		if len(dense) == 0 {
			return nil, ErrMissingEmbedding
		}
		return dense, nil
	}

	var keyed map[string]float32
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, fmt.Errorf("%w: neither array nor keyed map", ErrMalformedEmbedding)
	}
	if len(keyed) == 0 {
		return nil, ErrMissingEmbedding
	}

	dense = make([]float32, len(keyed))
	for key, value := range keyed {
		idx, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric key %q", ErrMalformedEmbedding, key)
		}
		if idx < 0 || idx >= len(dense) {
			return nil, fmt.Errorf("%w: key %d outside [0,%d)", ErrMalformedEmbedding, idx, len(dense))
		}
		dense[idx] = value
	}
	return dense, nil
}

// EncodeDocument serializes a Document back to its stored JSON form.
func EncodeDocument(doc *Document) ([]byte, error) {
	return json.Marshal(doc)
}
