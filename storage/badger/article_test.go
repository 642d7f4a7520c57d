package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurispect/statcite/core"
	"github.com/jurispect/statcite/storage"
)

func seedArticles(t *testing.T, repo storage.ArticleRepository) {
	t.Helper()
	articles := []*core.Article{
		{
			Id: "CIV-184", StatuteCode: "CIV", StatuteName: "Civil Code",
			ArticleLabel: "Article 184", Chapter: "Torts", Category: "statute",
			Contents: "A person who, intentionally or negligently, wrongfully damages the rights of another is bound to compensate the injury.",
			Vector:   []float32{0.9, 0.1, 0.0},
		},
		{
			Id: "CIV-191-2", StatuteCode: "CIV", StatuteName: "Civil Code",
			ArticleLabel: "Article 191-2", Chapter: "Torts", Category: "statute",
			Contents: "The driver of a motor vehicle is liable for injury caused to another in the course of its use.",
			Vector:   []float32{0.85, 0.15, 0.0},
		},
		{
			Id: "CIV-179", StatuteCode: "CIV", StatuteName: "Civil Code",
			ArticleLabel: "Article 179", Chapter: "Unjust Enrichment", Category: "statute",
			Contents: "A person who acquires a benefit without legal ground to the prejudice of another shall return it.",
			Vector:   []float32{0.6, 0.4, 0.0},
		},
		{
			Id: "CPA-7", StatuteCode: "CPA", StatuteName: "Consumer Protection Act",
			ArticleLabel: "Article 7", Chapter: "Health and Safety", Category: "statute",
			Contents: "Business operators shall ensure that goods and services meet contemporary safety standards.",
			Vector:   []float32{0.1, 0.1, 0.8},
		},
	}
	_, err := repo.AddArticles(context.Background(), articles...)
	require.NoError(t, err)
}

func TestArticleRepositoryCRUD(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	seedArticles(t, repo)

	t.Run("get by id", func(t *testing.T) {
		article, err := repo.GetArticle(ctx, "CIV-184")
		require.NoError(t, err)
		assert.Equal(t, "Civil Code", article.StatuteName)
		assert.Equal(t, "Article 184", article.ArticleLabel)
		assert.False(t, article.InsertedAt.IsZero())
	})

	t.Run("missing id returns ErrNotFound", func(t *testing.T) {
		_, err := repo.GetArticle(ctx, "CIV-999")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("duplicate add rejected", func(t *testing.T) {
		_, err := repo.AddArticles(ctx, &core.Article{
			Id: "CIV-184", StatuteCode: "CIV", StatuteName: "Civil Code",
			ArticleLabel: "Article 184", Contents: "duplicate",
		})
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)
	})

	t.Run("invalid article rejected", func(t *testing.T) {
		_, err := repo.AddArticles(ctx, &core.Article{Id: "CIV-1"})
		assert.ErrorIs(t, err, core.ErrInvalidArticle)
	})

	t.Run("update bumps UpdatedAt", func(t *testing.T) {
		article, err := repo.GetArticle(ctx, "CPA-7")
		require.NoError(t, err)
		article.Chapter = "Health and Safety of Consumers"
		updated, err := repo.UpdateArticles(ctx, article)
		require.NoError(t, err)
		assert.True(t, updated[0].UpdatedAt.After(updated[0].InsertedAt) ||
			updated[0].UpdatedAt.Equal(updated[0].InsertedAt))

		reread, err := repo.GetArticle(ctx, "CPA-7")
		require.NoError(t, err)
		assert.Equal(t, "Health and Safety of Consumers", reread.Chapter)
	})

	t.Run("update of missing record fails", func(t *testing.T) {
		_, err := repo.UpdateArticles(ctx, &core.Article{Id: "LSA-1"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("batch get skips missing", func(t *testing.T) {
		articles, err := repo.GetArticles(ctx, "CIV-184", "LSA-1", "CPA-7")
		require.NoError(t, err)
		assert.Len(t, articles, 2)
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.CountArticles(ctx)
		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("delete", func(t *testing.T) {
		_, err := repo.AddArticles(ctx, &core.Article{
			Id: "CIV-1", StatuteCode: "CIV", StatuteName: "Civil Code",
			ArticleLabel: "Article 1", Contents: "Where there is no statute applicable, custom applies.",
		})
		require.NoError(t, err)
		require.NoError(t, repo.DeleteArticles(ctx, "CIV-1"))
		_, err = repo.GetArticle(ctx, "CIV-1")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, repo.DeleteArticles(ctx, "CIV-1"), storage.ErrNotFound)
	})
}

func TestListArticleIDs(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	seedArticles(t, repo)

	t.Run("walks the whole corpus in key order", func(t *testing.T) {
		ids, err := repo.ListArticleIDs(ctx, "", 0)
		require.NoError(t, err)
		assert.Equal(t, []core.RecordID{"CIV-179", "CIV-184", "CIV-191-2", "CPA-7"}, ids)
	})

	t.Run("resumes after id", func(t *testing.T) {
		ids, err := repo.ListArticleIDs(ctx, "CIV-184", 0)
		require.NoError(t, err)
		assert.Equal(t, []core.RecordID{"CIV-191-2", "CPA-7"}, ids)
	})

	t.Run("respects limit", func(t *testing.T) {
		ids, err := repo.ListArticleIDs(ctx, "", 2)
		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})
}

func TestFindByCitation(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	seedArticles(t, repo)

	t.Run("bare number matches clause variants", func(t *testing.T) {
		articles, err := repo.FindByCitation(ctx, []string{"Civil Code"}, `^(?i)article\s*191(?:\s*-\s*\d+|\s+clause\s+\d+)?$`)
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, core.RecordID("CIV-191-2"), articles[0].Id)
	})

	t.Run("statute name restriction", func(t *testing.T) {
		articles, err := repo.FindByCitation(ctx, []string{"Consumer Protection Act"}, `^(?i)article\s*184$`)
		require.NoError(t, err)
		assert.Empty(t, articles)
	})

	t.Run("name match is case-insensitive", func(t *testing.T) {
		articles, err := repo.FindByCitation(ctx, []string{"civil code"}, `^(?i)article\s*184$`)
		require.NoError(t, err)
		assert.Len(t, articles, 1)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := repo.FindByCitation(ctx, []string{"Civil Code"}, `([`)
		assert.ErrorIs(t, err, storage.ErrInvalidPattern)
	})
}

func TestSearchKeyword(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	seedArticles(t, repo)

	t.Run("scoped search ranks chapter matches first", func(t *testing.T) {
		query := &storage.KeywordQuery{
			StatuteCode: "CIV",
			Should: []storage.Clause{
				{Field: storage.FieldChapter, Term: "unjust enrichment", Boost: 3},
				{Field: storage.FieldContents, Term: "unjust enrichment", Boost: 2},
			},
			MinimumShouldMatch: 1,
		}
		results, err := repo.SearchKeyword(ctx, query, 10)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, core.RecordID("CIV-179"), results[0].Article.Id)
		assert.Equal(t, core.ProvenanceKeyword, results[0].Provenance)
	})

	t.Run("filter excludes other statutes", func(t *testing.T) {
		query := &storage.KeywordQuery{
			StatuteCode: "CPA",
			Should: []storage.Clause{
				{Field: storage.FieldContents, Term: "injury", Boost: 2},
			},
			MinimumShouldMatch: 1,
		}
		results, err := repo.SearchKeyword(ctx, query, 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("limit is honored", func(t *testing.T) {
		query := &storage.KeywordQuery{
			Should: []storage.Clause{
				{Field: storage.FieldContents, Term: "another person injury", Boost: 2},
			},
			MinimumShouldMatch: 1,
		}
		results, err := repo.SearchKeyword(ctx, query, 1)
		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("nil query rejected", func(t *testing.T) {
		_, err := repo.SearchKeyword(ctx, nil, 5)
		assert.ErrorIs(t, err, storage.ErrInvalidQuery)
	})
}

func TestFindSimilar(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	seedArticles(t, repo)

	t.Run("orders by similarity", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 3, 30, nil)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, core.RecordID("CIV-184"), results[0].Article.Id)
		assert.Equal(t, core.RecordID("CIV-191-2"), results[1].Article.Id)
		assert.Equal(t, core.ProvenanceVector, results[0].Provenance)
	})

	t.Run("statute filter applies", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 5, 50, &storage.VectorFilter{StatuteCode: "CPA"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, core.RecordID("CPA-7"), results[0].Article.Id)
	})

	t.Run("articles without vectors are skipped", func(t *testing.T) {
		_, err := repo.AddArticles(ctx, &core.Article{
			Id: "CIV-2", StatuteCode: "CIV", StatuteName: "Civil Code",
			ArticleLabel: "Article 2", Contents: "Customs repugnant to public order are not applied.",
		})
		require.NoError(t, err)

		results, err := repo.FindSimilar(ctx, []float32{1, 0, 0}, 10, 100, nil)
		require.NoError(t, err)
		for _, res := range results {
			assert.NotEqual(t, core.RecordID("CIV-2"), res.Article.Id)
		}
	})
}

func TestCheckpointRepository(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	checkpoints := NewCheckpointRepository(backend)

	t.Run("missing checkpoint", func(t *testing.T) {
		_, err := checkpoints.GetCheckpoint(ctx, "reindex")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("save and reload", func(t *testing.T) {
		require.NoError(t, checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{Name: "reindex", LastID: "CIV-184"}))
		cp, err := checkpoints.GetCheckpoint(ctx, "reindex")
		require.NoError(t, err)
		assert.Equal(t, core.RecordID("CIV-184"), cp.LastID)
		assert.False(t, cp.UpdatedAt.IsZero())
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, checkpoints.DeleteCheckpoint(ctx, "reindex"))
		require.NoError(t, checkpoints.DeleteCheckpoint(ctx, "reindex"))
		_, err := checkpoints.GetCheckpoint(ctx, "reindex")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
