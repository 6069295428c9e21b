package badger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"

	"github.com/brightquery/leadgen/core"
	"github.com/brightquery/leadgen/storage"
)

// Store implements storage.RecordStore for BadgerDB. Documents are kept as
// the raw JSON bytes they were ingested with, so storage-format drift in
// the embedding field survives round trips and is resolved only at read.
type Store struct {
	backend *Backend
	decoded atomic.Int64
	skipped atomic.Int64
	logger  *slog.Logger
}

var _ storage.RecordStore = (*Store)(nil)

// NewStore creates a record store on the given backend.
func NewStore(backend *Backend) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend required")
	}
	return &Store{
		backend: backend,
		logger:  slog.Default().With("component", "badger-store"),
	}, nil
}

// Close is a no-op; the backend owns the database handle.
func (s *Store) Close() error {
	return nil
}

// PutDocuments stores raw JSON documents. A document must parse as JSON;
// one without an "id" field is assigned a content-based one, which keeps
// reseeding the same corpus idempotent. The document bytes are otherwise
// stored untouched.
func (s *Store) PutDocuments(ctx context.Context, docs ...[]byte) (int, error) {
	stored := 0
	for _, data := range docs {
		select {
		case <-ctx.Done():
			return stored, ctx.Err()
		default:
		}

		var doc storage.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return stored, fmt.Errorf("%w: %v", storage.ErrInvalidDocument, err)
		}

		if doc.ID == "" {
			doc.ID = fmt.Sprintf("%016x", uint64(core.IDFromContent(string(data))))
			encoded, err := storage.EncodeDocument(&doc)
			if err != nil {
				return stored, err
			}
			data = encoded
		}

		key := makeDocumentKey(doc.ID)
		value := data
		err := s.backend.Update(func(tx *badger.Txn) error {
			return tx.Set(key, value)
		})
		if err != nil {
			return stored, err
		}
		stored++
	}

	s.logger.Debug("stored documents", "count", stored)
	return stored, nil
}

// FetchRecords returns up to limit decoded records matching the filter.
// Badger iterates keys in lexicographic order, so the result order is
// stable for an unchanged corpus. Documents whose embeddings cannot be
// normalized are skipped, counted, and logged.
func (s *Store) FetchRecords(ctx context.Context, filter *storage.RecordFilter, limit int) ([]*core.EmbeddingRecord, error) {
	if limit <= 0 {
		return []*core.EmbeddingRecord{}, nil
	}

	var records []*core.EmbeddingRecord
	err := s.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid() && len(records) < limit; iter.Next() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			item := iter.Item()
			var record *core.EmbeddingRecord
			err := item.Value(func(val []byte) error {
				var decodeErr error
				record, decodeErr = storage.DecodeRecord(val)
				return decodeErr
			})
			if err != nil {
				s.skipped.Add(1)
				s.logger.Warn("skipping unusable record", "err", integrityError(item.Key(), err))
				continue
			}

			if !matchesFilter(record, filter) {
				continue
			}

			s.decoded.Add(1)
			records = append(records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// CountRecords returns the number of stored documents.
func (s *Store) CountRecords(ctx context.Context) (int, error) {
	count := 0
	err := s.backend.View(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(documentPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Stats returns cumulative decode statistics for this store instance.
func (s *Store) Stats() storage.DecodeStats {
	return storage.DecodeStats{
		RecordsDecoded: s.decoded.Load(),
		RecordsSkipped: s.skipped.Load(),
	}
}

// integrityError tags a decode failure with the offending document's ID so
// the skip-and-count path reports which record was unusable, not just that
// one was.
func integrityError(key []byte, err error) *core.DataIntegrityError {
	return &core.DataIntegrityError{
		DocumentID: strings.TrimPrefix(string(key), documentPrefix+":"),
		Reason:     err.Error(),
	}
}

// matchesFilter applies the category restriction against any source field
// whose key looks like a category, case-insensitively.
func matchesFilter(record *core.EmbeddingRecord, filter *storage.RecordFilter) bool {
	if filter == nil || filter.Category == "" {
		return true
	}
	for key, value := range record.SourceFields {
		if strings.Contains(strings.ToLower(key), "category") &&
			strings.EqualFold(strings.TrimSpace(value), filter.Category) {
			return true
		}
	}
	return false
}
