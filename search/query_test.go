package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurispect/statcite/storage"
)

func TestBuildKeywordQuery(t *testing.T) {
	t.Run("known statute scopes by code", func(t *testing.T) {
		q := BuildKeywordQuery("Civil Code", "negligence liability")
		assert.Equal(t, "CIV", q.StatuteCode)
		assert.Empty(t, q.Must)
		require.Len(t, q.Should, 3)
		assert.Equal(t, 1, q.MinimumShouldMatch)
	})

	t.Run("alias scopes by code", func(t *testing.T) {
		q := BuildKeywordQuery("labor law", "overtime")
		assert.Equal(t, "LSA", q.StatuteCode)
	})

	t.Run("unknown statute falls back to name clause", func(t *testing.T) {
		q := BuildKeywordQuery("Maritime Act", "salvage")
		assert.Empty(t, q.StatuteCode)
		require.Len(t, q.Must, 1)
		assert.Equal(t, storage.FieldStatuteName, q.Must[0].Field)
		assert.Equal(t, "Maritime Act", q.Must[0].Value)
	})

	t.Run("boost ordering chapter over contents over category", func(t *testing.T) {
		q := BuildKeywordQuery("Civil Code", "torts")
		byField := map[storage.Field]float32{}
		for _, c := range q.Should {
			byField[c.Field] = c.Boost
		}
		assert.Greater(t, byField[storage.FieldChapter], byField[storage.FieldContents])
		assert.Greater(t, byField[storage.FieldContents], byField[storage.FieldCategory])
	})

	t.Run("unscoped query searches statute names", func(t *testing.T) {
		q := BuildKeywordQuery("", "consumer safety")
		assert.Empty(t, q.StatuteCode)
		require.Len(t, q.Should, 4)

		var nameBoost float32
		for _, c := range q.Should {
			if c.Field == storage.FieldStatuteName {
				nameBoost = c.Boost
			}
		}
		// Statute-name hits outrank everything for a bare concept query.
		assert.Greater(t, nameBoost, float32(boostChapter))
	})
}

func TestBuildArticleQuery(t *testing.T) {
	t.Run("scoped by code with label requirement", func(t *testing.T) {
		q := BuildArticleQuery("Civil Code", "Article 184")
		assert.Equal(t, "CIV", q.StatuteCode)
		require.Len(t, q.Must, 1)
		assert.Equal(t, storage.FieldArticleLabel, q.Must[0].Field)
		assert.Equal(t, "Article 184", q.Must[0].Value)
		assert.Empty(t, q.Should)
	})

	t.Run("unknown statute requires name match", func(t *testing.T) {
		q := BuildArticleQuery("Maritime Act", "Article 12")
		assert.Empty(t, q.StatuteCode)
		require.Len(t, q.Must, 2)
		assert.Equal(t, storage.FieldStatuteName, q.Must[0].Field)
		assert.Equal(t, storage.FieldArticleLabel, q.Must[1].Field)
	})
}
