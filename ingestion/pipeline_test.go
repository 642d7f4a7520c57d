package ingestion

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurispect/statcite/ai/mock"
	"github.com/jurispect/statcite/core"
	"github.com/jurispect/statcite/storage"
	"github.com/jurispect/statcite/storage/badger"
)

func newTestPipeline(t *testing.T) (*Pipeline, storage.ArticleRepository, *mock.MockEmbedder) {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	pipeline, err := NewPipeline(repo, embedder, WithPoolSize(2))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return pipeline, repo, embedder
}

func tortArticle() *core.Article {
	return &core.Article{
		StatuteName:  "Civil Code",
		ArticleLabel: "Article 184",
		Chapter:      "Torts",
		Category:     "statute",
		Contents:     "A person who, intentionally or negligently, wrongfully damages the rights of another is bound to compensate the injury.",
	}
}

func TestNewPipelineValidation(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	_, err = NewPipeline(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrArticleRepositoryRequired)

	_, err = NewPipeline(repo, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestIngestDerivesIdAndEmbeds(t *testing.T) {
	pipeline, repo, embedder := newTestPipeline(t)
	ctx := context.Background()

	stats, err := pipeline.Ingest(ctx, tortArticle())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
	pipeline.Wait()

	stored, err := repo.GetArticle(ctx, "CIV-184")
	require.NoError(t, err)
	assert.Equal(t, "CIV", stored.StatuteCode)
	assert.Equal(t, "Article 184", stored.ArticleLabel)
	assert.NotZero(t, stored.ContentHash)
	assert.NotEmpty(t, stored.Vector)
	assert.Equal(t, 1, embedder.CallCount())
}

func TestIngestResolvesAliasAndLabel(t *testing.T) {
	pipeline, repo, _ := newTestPipeline(t)
	ctx := context.Background()

	_, err := pipeline.Ingest(ctx, &core.Article{
		StatuteName:  "CPA",
		ArticleLabel: "7",
		Contents:     "Business operators shall ensure safety of goods and services.",
	})
	require.NoError(t, err)
	pipeline.Wait()

	stored, err := repo.GetArticle(ctx, "CPA-7")
	require.NoError(t, err)
	assert.Equal(t, "Consumer Protection Act", stored.StatuteName)
	assert.Equal(t, "Article 7", stored.ArticleLabel)
}

func TestIngestSkipsUnchanged(t *testing.T) {
	pipeline, _, embedder := newTestPipeline(t)
	ctx := context.Background()

	_, err := pipeline.Ingest(ctx, tortArticle())
	require.NoError(t, err)
	pipeline.Wait()
	require.Equal(t, 1, embedder.CallCount())

	// Same content again: no write, no embedding call.
	stats, err := pipeline.Ingest(ctx, tortArticle())
	require.NoError(t, err)
	pipeline.Wait()
	assert.Equal(t, 0, stats.Added)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 1, stats.Unchanged)
	assert.Equal(t, 1, embedder.CallCount())
}

func TestIngestReembedsChangedContent(t *testing.T) {
	pipeline, repo, embedder := newTestPipeline(t)
	ctx := context.Background()

	_, err := pipeline.Ingest(ctx, tortArticle())
	require.NoError(t, err)
	pipeline.Wait()

	before, err := repo.GetArticle(ctx, "CIV-184")
	require.NoError(t, err)

	amended := tortArticle()
	amended.Contents = amended.Contents + " The same applies to violations of protective statutes."
	stats, err := pipeline.Ingest(ctx, amended)
	require.NoError(t, err)
	pipeline.Wait()

	assert.Equal(t, 1, stats.Updated)
	after, err := repo.GetArticle(ctx, "CIV-184")
	require.NoError(t, err)
	assert.NotEqual(t, before.ContentHash, after.ContentHash)
	assert.NotEmpty(t, after.Vector)
	assert.Equal(t, 2, embedder.CallCount())
}

func TestIngestUnresolvableArticle(t *testing.T) {
	pipeline, _, _ := newTestPipeline(t)

	_, err := pipeline.Ingest(context.Background(), &core.Article{
		StatuteName:  "Maritime Act",
		ArticleLabel: "Article 12",
		Contents:     "Salvage operations require authorization.",
	})
	assert.ErrorIs(t, err, ErrUnresolvableArticle)
}

func TestReadCorpus(t *testing.T) {
	corpus := `[
		{"statute_name": "Civil Code", "article_label": "184", "chapter": "Torts", "contents": "Compensation for wrongful damage."},
		{"id": "CPA-7", "statute_name": "Consumer Protection Act", "article_label": "Article 7", "contents": "Safety of goods and services."}
	]`

	articles, err := ReadCorpus(strings.NewReader(corpus))
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "Civil Code", articles[0].StatuteName)
	assert.Equal(t, "184", articles[0].ArticleLabel)
	assert.Equal(t, core.RecordID("CPA-7"), articles[1].Id)

	t.Run("malformed input", func(t *testing.T) {
		_, err := ReadCorpus(strings.NewReader("{not json"))
		assert.Error(t, err)
	})
}
