package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordIDComponents(t *testing.T) {
	t.Run("plain article number", func(t *testing.T) {
		id := RecordID("CIV-184")
		assert.Equal(t, "CIV", id.StatuteCode())
		assert.Equal(t, "184", id.ArticleNum())
	})

	t.Run("clause suffix preserved", func(t *testing.T) {
		id := RecordID("CIV-191-2")
		assert.Equal(t, "CIV", id.StatuteCode())
		assert.Equal(t, "191-2", id.ArticleNum())
	})

	t.Run("no separator", func(t *testing.T) {
		id := RecordID("CIV")
		assert.Equal(t, "CIV", id.StatuteCode())
		assert.Equal(t, "", id.ArticleNum())
	})
}

func TestContentHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		h1 := ContentHash("a person who negligently injures another")
		h2 := ContentHash("a person who negligently injures another")
		assert.Equal(t, h1, h2)
	})

	t.Run("different content produces different hash", func(t *testing.T) {
		h1 := ContentHash("article one")
		h2 := ContentHash("article two")
		assert.NotEqual(t, h1, h2)
	})

	t.Run("empty string is valid input", func(t *testing.T) {
		assert.NotPanics(t, func() { ContentHash("") })
	})
}
