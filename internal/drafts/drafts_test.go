package drafts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/emilythestrangee/stackit/backend/internal/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSaveAndGet(t *testing.T) {
	s := New(time.Hour, 0, metrics.New())
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	saved := s.Save("amy", "question", Draft{Title: "How?", Tags: []string{"go"}})
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "question", saved.Form)
	assert.Equal(t, s.now(), saved.SavedAt)

	got, ok := s.Get("amy", "question")
	require.True(t, ok)
	assert.Equal(t, saved, got)

	_, ok = s.Get("bob", "question")
	assert.False(t, ok, "drafts are per viewer")
	_, ok = s.Get("amy", "answer-1")
	assert.False(t, ok, "drafts are per form")
}

func TestSaveKeepsID(t *testing.T) {
	s := New(time.Hour, 0, nil)

	first := s.Save("amy", "answer-3", Draft{Content: "<p>a</p>"})
	second := s.Save("amy", "answer-3", Draft{Content: "<p>ab</p>"})
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "<p>ab</p>", second.Content)
	assert.Equal(t, 1, s.Len())
}

func TestSaveCopiesTags(t *testing.T) {
	s := New(time.Hour, 0, nil)
	tags := []string{"go", "gin"}
	s.Save("amy", "question", Draft{Tags: tags})
	tags[0] = "rust"

	got, _ := s.Get("amy", "question")
	assert.Equal(t, []string{"go", "gin"}, got.Tags)
}

func TestDiscard(t *testing.T) {
	s := New(time.Hour, 0, nil)
	s.Save("amy", "question", Draft{Title: "x"})

	s.Discard("amy", "question")
	_, ok := s.Get("amy", "question")
	assert.False(t, ok)

	s.Discard("amy", "question")
}

func TestExpiry(t *testing.T) {
	s := New(10*time.Millisecond, 0, nil)
	s.Save("amy", "question", Draft{Title: "x"})

	assert.Eventually(t, func() bool {
		_, ok := s.Get("amy", "question")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestJanitorSweepsUntilClosed(t *testing.T) {
	s := New(10*time.Millisecond, 5*time.Millisecond, nil)
	s.Save("amy", "question", Draft{Title: "x"})
	s.Save("bob", "answer-2", Draft{Content: "<p>y</p>"})

	// Len counts expired drafts until they are swept
	assert.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)

	s.Close()
	s.Close()
}
