package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceTracker(t *testing.T) {
	t.Run("unseeded tracker reports no source", func(t *testing.T) {
		tr := NewSourceTracker("chat-1")
		assert.False(t, tr.HasSourceChat())
	})

	t.Run("seeded with the source present", func(t *testing.T) {
		tr := NewSourceTracker("chat-1")
		tr.Seed([]string{"chat-1", "chat-2"})
		assert.True(t, tr.HasSourceChat())
	})

	t.Run("seeded without the source", func(t *testing.T) {
		tr := NewSourceTracker("chat-1")
		tr.Seed([]string{"chat-2"})
		assert.False(t, tr.HasSourceChat())
	})

	t.Run("deleting an unrelated chat changes nothing", func(t *testing.T) {
		tr := NewSourceTracker("chat-1")
		tr.Seed([]string{"chat-1", "chat-2"})
		tr.ChatDeleted("chat-2")
		assert.True(t, tr.HasSourceChat())
	})

	t.Run("deleting the source flips it off incrementally", func(t *testing.T) {
		tr := NewSourceTracker("chat-1")
		tr.Seed([]string{"chat-1", "chat-2"})
		tr.ChatDeleted("chat-1")
		assert.False(t, tr.HasSourceChat())
	})
}

func TestGate(t *testing.T) {
	t.Run("loading wins over everything", func(t *testing.T) {
		g := Gate{Loading: true, HasSourceChat: true}
		assert.False(t, g.Allowed())
		assert.Equal(t, "불러오는 중입니다.", g.Reason())
	})

	t.Run("missing source chat blocks with its own reason", func(t *testing.T) {
		g := Gate{HasSourceChat: false}
		assert.False(t, g.Allowed())
		assert.Contains(t, g.Reason(), "원본 대화가 삭제")
	})

	t.Run("unchanged form blocks", func(t *testing.T) {
		g := Gate{HasSourceChat: true, Unchanged: true}
		assert.False(t, g.Allowed())
		assert.Contains(t, g.Reason(), "변경된 내용이 없어")
	})

	t.Run("changed form with a live source is allowed", func(t *testing.T) {
		g := Gate{HasSourceChat: true, Unchanged: false}
		assert.True(t, g.Allowed())
		assert.Empty(t, g.Reason())
	})
}
