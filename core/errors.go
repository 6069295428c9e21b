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


package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions with no extra payload.
var (
	// ErrSessionNotFound indicates the session is absent or expired.
	// Surfaced to callers as a 404-equivalent; never retried.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInsufficientData indicates a valid session with zero question/answer
	// pairs. A search with no criteria is wasteful and rejected upstream.
	ErrInsufficientData = errors.New("session has no question/answer data")
)

// ValidationError describes malformed or missing caller input.
// Always surfaced, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// UpstreamServiceError indicates an embedding or language-model call failed
// after retries. It is only surfaced when the fallback path also failed;
// FallbackTried records whether one was attempted.
type UpstreamServiceError struct {
	Service       string // "embedding" or "completion"
	Stage         string // pipeline stage that made the call
	FallbackTried bool
	Err           error
}

func (e *UpstreamServiceError) Error() string {
	return fmt.Sprintf("upstream %s service failed at stage %s (fallback tried: %t): %v",
		e.Service, e.Stage, e.FallbackTried, e.Err)
}

func (e *UpstreamServiceError) Unwrap() error { return e.Err }

// SearchExecutionError indicates a search strategy failed. It is only
// surfaced once every strategy in the fallback chain has failed.
type SearchExecutionError struct {
	Strategy string
	Err      error
}

func (e *SearchExecutionError) Error() string {
	return fmt.Sprintf("search strategy %q failed: %v", e.Strategy, e.Err)
}

func (e *SearchExecutionError) Unwrap() error { return e.Err }

// DataIntegrityError indicates a single corpus record carries an unusable
// embedding. The record is skipped and counted; it never aborts a search.
type DataIntegrityError struct {
	DocumentID string
	Reason     string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("unusable record %s: %s", e.DocumentID, e.Reason)
}
