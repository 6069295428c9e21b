package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, IDFromContent("hello"), IDFromContent("hello"))
	})

	t.Run("differs across content", func(t *testing.T) {
		assert.NotEqual(t, IDFromContent("hello"), IDFromContent("world"))
	})
}

func TestSessionStatus(t *testing.T) {
	now := time.Now().UTC()

	qa := func(n int) []QuestionAnswer {
		answers := make([]QuestionAnswer, n)
		for i := range answers {
			answers[i] = QuestionAnswer{Question: "q", Answer: "a"}
		}
		return answers
	}

	t.Run("new with no answers", func(t *testing.T) {
		sess := &Session{LastActivity: now}
		assert.Equal(t, SessionStatusNew, sess.Status(now))
	})

	t.Run("gathering below three answers", func(t *testing.T) {
		sess := &Session{Answers: qa(2), LastActivity: now}
		assert.Equal(t, SessionStatusGathering, sess.Status(now))
	})

	t.Run("active with enough recent answers", func(t *testing.T) {
		sess := &Session{Answers: qa(3), LastActivity: now}
		assert.Equal(t, SessionStatusActive, sess.Status(now))
	})

	t.Run("idle after five minutes of silence", func(t *testing.T) {
		sess := &Session{Answers: qa(3), LastActivity: now.Add(-6 * time.Minute)}
		assert.Equal(t, SessionStatusIdle, sess.Status(now))
	})
}

func TestSearchCriteriaIsEmpty(t *testing.T) {
	assert.True(t, (&SearchCriteria{}).IsEmpty())
	assert.False(t, (&SearchCriteria{Industry: "textiles"}).IsEmpty())
	assert.False(t, (&SearchCriteria{Keywords: []string{"export"}}).IsEmpty())
}
