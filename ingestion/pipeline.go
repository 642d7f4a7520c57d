package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/jurispect/statcite/ai"
	"github.com/jurispect/statcite/citation"
	"github.com/jurispect/statcite/core"
	"github.com/jurispect/statcite/lawref"
	"github.com/jurispect/statcite/storage"
)

// Pipeline orchestrates loading of statute articles and the asynchronous
// generation of their embedding vectors.
type Pipeline struct {
	articles storage.ArticleRepository
	pool     *ants.Pool
	proc     *embeddingProcessor
	wg       sync.WaitGroup
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(articles storage.ArticleRepository, embedder ai.Embedder, opts ...Option) (*Pipeline, error) {
	if articles == nil {
		return nil, ErrArticleRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		articles: articles,
		pool:     pool,
		logger:   slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	proc, err := newEmbeddingProcessor(articles, embedder, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.proc = proc

	return p, nil
}

// IngestStats summarizes one ingestion batch.
type IngestStats struct {
	Added     int
	Updated   int
	Unchanged int
}

// Ingest stores the given articles and submits new or changed ones for
// asynchronous embedding. An article without an id gets one derived from its
// statute name and article label. Articles whose content hash matches the
// stored record are skipped entirely.
//
// Embedding errors are logged, not returned; a failed batch leaves articles
// stored without vectors, which a later reindex run repairs.
func (p *Pipeline) Ingest(ctx context.Context, articles ...*core.Article) (*IngestStats, error) {
	stats := &IngestStats{}

	toAdd := make([]*core.Article, 0, len(articles))
	toUpdate := make([]*core.Article, 0)
	pending := make([]core.RecordID, 0, len(articles))

	for _, article := range articles {
		if err := p.prepare(article); err != nil {
			return nil, err
		}

		existing, err := p.articles.GetArticle(ctx, article.Id)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			toAdd = append(toAdd, article)
			pending = append(pending, article.Id)
		case err != nil:
			return nil, err
		case existing.ContentHash == article.ContentHash && len(existing.Vector) > 0:
			stats.Unchanged++
		default:
			// Content changed (or the stored record never got a vector):
			// overwrite and re-embed.
			article.Vector = nil
			article.InsertedAt = existing.InsertedAt
			toUpdate = append(toUpdate, article)
			pending = append(pending, article.Id)
		}
	}

	if len(toAdd) > 0 {
		if _, err := p.articles.AddArticles(ctx, toAdd...); err != nil {
			return nil, err
		}
		stats.Added = len(toAdd)
	}
	if len(toUpdate) > 0 {
		if _, err := p.articles.UpdateArticles(ctx, toUpdate...); err != nil {
			return nil, err
		}
		stats.Updated = len(toUpdate)
	}

	if len(pending) > 0 {
		p.submit(pending)
	}

	p.logger.Info("ingested articles",
		"added", stats.Added, "updated", stats.Updated, "unchanged", stats.Unchanged)
	return stats, nil
}

// prepare normalizes an incoming article: derives the id and statute code
// where missing, canonicalizes the statute name, and stamps the content
// hash.
func (p *Pipeline) prepare(article *core.Article) error {
	if article == nil {
		return core.ErrInvalidArticle
	}

	article.StatuteName = lawref.Resolve(article.StatuteName)
	article.ArticleLabel = citation.NormalizeArticleNo(article.ArticleLabel)

	if article.Id == "" {
		id, ok := citation.BuildRecordID(article.StatuteName, article.ArticleLabel)
		if !ok {
			return ErrUnresolvableArticle
		}
		article.Id = id
	}
	if article.StatuteCode == "" {
		article.StatuteCode = article.Id.StatuteCode()
	}
	article.ContentHash = core.ContentHash(article.Contents)

	return core.ValidateArticle(article)
}

// submit queues one embedding batch on the worker pool.
func (p *Pipeline) submit(ids []core.RecordID) {
	p.wg.Add(1)
	err := p.pool.Submit(func() {
		defer p.wg.Done()
		if err := p.proc.process(context.Background(), ids...); err != nil {
			p.logger.Error("error processing embeddings", "records", len(ids), "err", err)
		}
	})
	if err != nil {
		p.wg.Done()
		p.logger.Error("error submitting embedding batch", "err", err)
	}
}

// Wait blocks until all submitted embedding batches have finished.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

// Release waits for in-flight work and releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	p.wg.Wait()
	if p.pool != nil {
		p.pool.Release()
	}
}
