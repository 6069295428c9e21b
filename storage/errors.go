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


package storage

import "errors"

var (
	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrInvalidDocument indicates a document is not valid JSON or lacks
	// required structure.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrMissingEmbedding indicates a document has no embedding field.
	ErrMissingEmbedding = errors.New("document has no embedding")

	// ErrMalformedEmbedding indicates an embedding that is neither a dense
	// numeric array nor an equivalent numeric-string-keyed map.
	ErrMalformedEmbedding = errors.New("embedding cannot be normalized")

	// ErrIndexUnavailable indicates the store has no ANN index configured.
	ErrIndexUnavailable = errors.New("vector index unavailable")
)
