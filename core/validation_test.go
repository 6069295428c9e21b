package core

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuestionAnswer(t *testing.T) {
	t.Run("accepts ordinary input", func(t *testing.T) {
		err := ValidateQuestionAnswer("What products do you sell?", "Cotton textiles")
		assert.NoError(t, err)
	})

	t.Run("rejects empty question", func(t *testing.T) {
		err := ValidateQuestionAnswer("   ", "an answer")
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "question", verr.Field)
	})

	t.Run("rejects empty answer", func(t *testing.T) {
		err := ValidateQuestionAnswer("a question", "")
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "answer", verr.Field)
	})

	t.Run("accepts question at the limit", func(t *testing.T) {
		question := strings.Repeat("q", MaxQuestionLength)
		assert.NoError(t, ValidateQuestionAnswer(question, "answer"))
	})

	t.Run("rejects question one over the limit", func(t *testing.T) {
		question := strings.Repeat("q", MaxQuestionLength+1)
		err := ValidateQuestionAnswer(question, "answer")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question too long")
	})

	t.Run("rejects answer over the limit", func(t *testing.T) {
		answer := strings.Repeat("a", MaxAnswerLength+1)
		err := ValidateQuestionAnswer("question", answer)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "answer too long")
	})

	t.Run("counts characters, not bytes", func(t *testing.T) {
		// 500 three-byte runes are within the limit; 501 are not.
		question := strings.Repeat("問", MaxQuestionLength)
		assert.NoError(t, ValidateQuestionAnswer(question, "answer"))

		err := ValidateQuestionAnswer(question+"問", "answer")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "question too long")
	})

	t.Run("measures raw length, not trimmed", func(t *testing.T) {
		// Padding with whitespace must not sneak an oversized value through.
		question := strings.Repeat("q", MaxQuestionLength-10) + strings.Repeat(" ", 20)
		err := ValidateQuestionAnswer(question, "answer")
		require.Error(t, err)
	})
}

func TestValidateSessionID(t *testing.T) {
	t.Run("accepts a UUID", func(t *testing.T) {
		assert.NoError(t, ValidateSessionID(uuid.NewString()))
	})

	t.Run("rejects empty id", func(t *testing.T) {
		assert.Error(t, ValidateSessionID(""))
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		assert.Error(t, ValidateSessionID("not-a-uuid"))
	})
}
