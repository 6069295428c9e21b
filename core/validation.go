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
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Caller input limits.
const (
	MaxQuestionLength = 500
	MaxAnswerLength   = 2000
)

// ValidateQuestionAnswer checks caller-supplied intake input.
//
// Validation rules:
//   - Question must be non-empty after trimming and at most 500 characters
//   - Answer must be non-empty after trimming and at most 2000 characters
//
// Lengths are measured in characters on the raw input, not the trimmed
// form, so a caller cannot smuggle an oversized value past the limit with
// whitespace, and multibyte text is not penalized for its encoding.
func ValidateQuestionAnswer(question, answer string) error {
	if strings.TrimSpace(question) == "" {
		return &ValidationError{Field: "question", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(question) > MaxQuestionLength {
		return &ValidationError{Field: "question", Reason: "question too long"}
	}
	if strings.TrimSpace(answer) == "" {
		return &ValidationError{Field: "answer", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(answer) > MaxAnswerLength {
		return &ValidationError{Field: "answer", Reason: "answer too long"}
	}
	return nil
}

// ValidateSessionID checks that a caller-supplied session ID is a
// well-formed UUID.
func ValidateSessionID(id string) error {
	if id == "" {
		return &ValidationError{Field: "sessionId", Reason: "must not be empty"}
	}
	if _, err := uuid.Parse(id); err != nil {
		return &ValidationError{Field: "sessionId", Reason: "must be a well-formed UUID"}
	}
	return nil
}
