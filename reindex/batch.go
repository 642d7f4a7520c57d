package reindex

import (
	"context"
	"fmt"
	"time"

	"github.com/jurispect/statcite/ai"
	"github.com/jurispect/statcite/core"
	"github.com/jurispect/statcite/storage"
)

// BatchProcessor handles embedding generation for batches of articles.
type BatchProcessor struct {
	repo           storage.ArticleRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a new batch processor.
// maxRetries: maximum number of retry attempts for embedding API calls
// retryBaseDelay: base delay for exponential backoff
func NewBatchProcessor(repo storage.ArticleRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		repo:           repo,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process generates embeddings for a batch of articles and updates them in
// the database. Vectors are normalized after embedding so dot-product
// similarity behaves as cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, articles []*core.Article) error {
	if len(articles) == 0 {
		return nil
	}

	texts := make([]string, len(articles))
	for i, article := range articles {
		texts[i] = article.Contents
	}

	// Generate embeddings with retry
	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		embeddings, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)

	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(embeddings) != len(articles) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(articles), len(embeddings))
	}

	for i := range articles {
		articles[i].Vector = NormalizeVector(embeddings[i])
		articles[i].ContentHash = core.ContentHash(articles[i].Contents)
	}

	_, err = bp.repo.UpdateArticles(ctx, articles...)
	if err != nil {
		return fmt.Errorf("failed to update articles: %w", err)
	}

	return nil
}
