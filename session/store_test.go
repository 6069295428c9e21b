package session

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightquery/leadgen/core"
)

func TestStoreAppendAnswer(t *testing.T) {
	t.Run("creates session lazily", func(t *testing.T) {
		store := NewStore()
		id := uuid.NewString()

		sess := store.AppendAnswer(id, "What do you sell?", "Textiles")

		require.NotNil(t, sess)
		assert.Equal(t, id, sess.ID)
		require.Len(t, sess.Answers, 1)
		assert.Equal(t, "Textiles", sess.Answers[0].Answer)
		assert.Equal(t, 1, sess.Metadata.TotalQuestions)
		assert.NotEmpty(t, sess.Answers[0].Id)
	})

	t.Run("classifies the question once", func(t *testing.T) {
		store := NewStore()
		id := uuid.NewString()

		sess := store.AppendAnswer(id, "What product are you looking for?", "Cotton fabric")
		assert.Equal(t, core.QuestionTypeProduct, sess.Answers[0].Type)

		sess = store.AppendAnswer(id, "Which region should suppliers be in?", "India")
		assert.Equal(t, core.QuestionTypeRegion, sess.Answers[1].Type)
	})

	t.Run("concurrent appends lose nothing", func(t *testing.T) {
		store := NewStore()
		id := uuid.NewString()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.AppendAnswer(id, "first question", "first answer")
		}()
		go func() {
			defer wg.Done()
			store.AppendAnswer(id, "second question", "second answer")
		}()
		wg.Wait()

		sess, ok := store.Get(id)
		require.True(t, ok)
		assert.Len(t, sess.Answers, 2)
		assert.Equal(t, 2, sess.Metadata.TotalQuestions)
	})

	t.Run("returns a snapshot, not the stored session", func(t *testing.T) {
		store := NewStore()
		id := uuid.NewString()

		first := store.AppendAnswer(id, "q1", "a1")
		first.Answers[0].Answer = "mutated"

		sess, ok := store.Get(id)
		require.True(t, ok)
		assert.Equal(t, "a1", sess.Answers[0].Answer)
	})
}

func TestStoreExpiry(t *testing.T) {
	t.Run("expired session reads as absent", func(t *testing.T) {
		store := NewStore(WithTTL(20*time.Millisecond), WithSweepInterval(time.Hour))
		id := uuid.NewString()
		store.AppendAnswer(id, "q", "a")

		_, ok := store.Get(id)
		require.True(t, ok)

		time.Sleep(40 * time.Millisecond)

		_, ok = store.Get(id)
		assert.False(t, ok)
	})

	t.Run("append refreshes the expiry", func(t *testing.T) {
		store := NewStore(WithTTL(60*time.Millisecond), WithSweepInterval(time.Hour))
		id := uuid.NewString()
		store.AppendAnswer(id, "q1", "a1")

		time.Sleep(40 * time.Millisecond)
		store.AppendAnswer(id, "q2", "a2")
		time.Sleep(40 * time.Millisecond)

		// 80ms since creation but only 40ms since last activity.
		sess, ok := store.Get(id)
		require.True(t, ok)
		assert.Len(t, sess.Answers, 2)
	})

	t.Run("ClearExpired removes immediately", func(t *testing.T) {
		store := NewStore(WithTTL(20*time.Millisecond), WithSweepInterval(time.Hour))
		store.AppendAnswer(uuid.NewString(), "q", "a")
		store.AppendAnswer(uuid.NewString(), "q", "a")

		time.Sleep(40 * time.Millisecond)
		live := uuid.NewString()
		store.AppendAnswer(live, "q", "a")

		cleared, remaining := store.ClearExpired()
		assert.Equal(t, 2, cleared)
		assert.Equal(t, 1, remaining)
	})
}

func TestStoreMarkGenerated(t *testing.T) {
	store := NewStore()
	id := uuid.NewString()
	store.AppendAnswer(id, "q", "a")

	store.MarkGenerated(id)

	sess, ok := store.Get(id)
	require.True(t, ok)
	assert.False(t, sess.Metadata.LastGenerationAt.IsZero())

	// Absent session is a no-op, not a panic.
	store.MarkGenerated(uuid.NewString())
}

func TestStoreStats(t *testing.T) {
	store := NewStore()

	a := uuid.NewString()
	store.AppendAnswer(a, "q1", "a1")
	store.AppendAnswer(a, "q2", "a2")
	store.AppendAnswer(a, "q3", "a3")
	store.AppendAnswer(uuid.NewString(), "q", "a")

	stats := store.Stats()
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, 1, stats.ActiveSessions) // three answers and recent
	assert.Equal(t, 4, stats.TotalQuestionAnswers)
	assert.Greater(t, stats.EstimatedMemoryBytes, 0)
}
