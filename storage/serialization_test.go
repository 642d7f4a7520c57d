package storage

import (
	"testing"
	"time"

	"github.com/jurispect/statcite/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleSerialization(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	article := &core.Article{
		Id:           "CIV-191-2",
		StatuteCode:  "CIV",
		StatuteName:  "Civil Code",
		ArticleLabel: "Article 191-2",
		Chapter:      "Torts",
		Category:     "statute",
		Contents:     "The driver of a motor vehicle is liable for injury caused to another in the course of its use.",
		ContentHash:  core.ContentHash("The driver of a motor vehicle is liable for injury caused to another in the course of its use."),
		Vector:       []float32{0.25, -0.5, 0.125, 1},
		InsertedAt:   now,
		UpdatedAt:    now,
	}

	data := MarshalArticle(article)
	decoded, err := UnmarshalArticle(data)
	require.NoError(t, err)
	assert.Equal(t, article, decoded)
}

func TestArticleSerialization_NoVector(t *testing.T) {
	article := &core.Article{
		Id:           "CPA-7",
		StatuteCode:  "CPA",
		StatuteName:  "Consumer Protection Act",
		ArticleLabel: "Article 7",
		Contents:     "Business operators shall ensure the safety of goods and services.",
		InsertedAt:   time.UnixMicro(1).UTC(),
		UpdatedAt:    time.UnixMicro(2).UTC(),
	}

	decoded, err := UnmarshalArticle(MarshalArticle(article))
	require.NoError(t, err)
	assert.Nil(t, decoded.Vector)
	assert.Equal(t, article, decoded)
}

func TestArticleSerialization_Truncated(t *testing.T) {
	article := &core.Article{
		Id:       "CIV-184",
		Contents: "A person who damages the rights of another is bound to compensate.",
	}
	data := MarshalArticle(article)
	_, err := UnmarshalArticle(data[:len(data)/2])
	assert.Error(t, err)
}

func TestCheckpointSerialization(t *testing.T) {
	checkpoint := &core.Checkpoint{
		Name:      "reindex",
		LastID:    "CIV-191-2",
		UpdatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	decoded, err := UnmarshalCheckpoint(MarshalCheckpoint(checkpoint))
	require.NoError(t, err)
	assert.Equal(t, checkpoint, decoded)
}
