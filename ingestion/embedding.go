package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jurispect/statcite/ai"
	"github.com/jurispect/statcite/core"
	"github.com/jurispect/statcite/storage"
)

// embeddingProcessor generates embedding vectors for stored articles.
type embeddingProcessor struct {
	articles storage.ArticleRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// newEmbeddingProcessor creates a new embedding processor.
func newEmbeddingProcessor(articles storage.ArticleRepository, embedder ai.Embedder, logger *slog.Logger) (*embeddingProcessor, error) {
	if articles == nil {
		return nil, ErrArticleRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		articles: articles,
		embedder: embedder,
		logger:   logger.With("processor", "embeddings"),
	}, nil
}

// process embeds the contents of the identified articles and stores the
// resulting vectors.
func (ep *embeddingProcessor) process(ctx context.Context, ids ...core.RecordID) error {
	ep.logger.Info("processing articles for embeddings", "records", len(ids))

	articles, err := ep.articles.GetArticles(ctx, ids...)
	if err != nil {
		ep.logger.Error("error retrieving articles", "err", err)
		return err
	}
	if len(articles) == 0 {
		return nil
	}

	texts := make([]string, len(articles))
	for i, article := range articles {
		texts[i] = article.Contents
	}

	ep.logger.Debug("generating embeddings for articles", "records", len(texts))
	embeddings, err := ep.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		ep.logger.Error("error generating embeddings", "err", err)
		return err
	}

	if len(embeddings) != len(articles) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(articles), len(embeddings))
	}

	for i := range embeddings {
		articles[i].Vector = embeddings[i]
	}

	if _, err := ep.articles.UpdateArticles(ctx, articles...); err != nil {
		return err
	}
	return nil
}
