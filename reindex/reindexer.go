// Copyright 2025 Jurispect Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package reindex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jurispect/statcite/ai"
	"github.com/jurispect/statcite/core"
	"github.com/jurispect/statcite/storage"
)

// CheckpointName keys the resume marker in the checkpoint store.
const CheckpointName = "reindex"

// Config holds configuration for the reindexing operation.
type Config struct {
	// BatchSize is the number of articles to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of articles)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// Resume continues from a saved checkpoint instead of starting over.
	Resume bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		Resume:         true,
	}
}

// Reindexer orchestrates the re-embedding of all articles in a database.
type Reindexer struct {
	repo        storage.ArticleRepository
	checkpoints storage.CheckpointRepository
	config      *Config
	progress    io.Writer
	processor   *BatchProcessor
	iterator    *ArticleIterator
}

// NewReindexer creates a new reindexer.
// checkpoints may be nil, which disables resumption.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(repo storage.ArticleRepository, checkpoints storage.CheckpointRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reindexer, error) {
	if repo == nil {
		return nil, ErrArticleRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Reindexer{
		repo:        repo,
		checkpoints: checkpoints,
		config:      config,
		progress:    progress,
		processor:   NewBatchProcessor(repo, embedder, config.MaxRetries, config.RetryDelay),
		iterator:    NewArticleIterator(repo, config.BatchSize),
	}, nil
}

// Run executes the reindexing operation. Every article in the database is
// re-embedded with the configured embedder. After each batch the position is
// checkpointed; a rerun with Resume enabled picks up after the last
// completed batch. The checkpoint is cleared on successful completion.
func (r *Reindexer) Run(ctx context.Context) error {
	total, err := r.repo.CountArticles(ctx)
	if err != nil {
		return fmt.Errorf("failed to count articles: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(r.progress, "No articles found in database (0 articles)\n")
		return nil
	}

	afterID, err := r.resumePoint(ctx)
	if err != nil {
		return err
	}
	if afterID != "" {
		fmt.Fprintf(r.progress, "Resuming reindex after %q\n", afterID)
	}

	fmt.Fprintf(r.progress, "Starting reindex of %d articles (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0

	err = r.iterator.ForEach(ctx, afterID, func(articles []*core.Article) error {
		if err := r.processor.Process(ctx, articles); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(articles)
		tracker.Update(processed)

		return r.saveCheckpoint(ctx, articles[len(articles)-1].Id)
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	if err := r.clearCheckpoint(ctx); err != nil {
		return err
	}

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindex complete. Processed %d articles in %v (%.1f articles/sec)\n",
		processed, elapsed.Round(time.Second), float64(processed)/elapsed.Seconds())

	return nil
}

// resumePoint loads the saved cursor, if resumption is enabled and a
// checkpoint exists.
func (r *Reindexer) resumePoint(ctx context.Context) (core.RecordID, error) {
	if r.checkpoints == nil || !r.config.Resume {
		return "", nil
	}

	checkpoint, err := r.checkpoints.GetCheckpoint(ctx, CheckpointName)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load checkpoint: %w", err)
	}
	return checkpoint.LastID, nil
}

func (r *Reindexer) saveCheckpoint(ctx context.Context, lastID core.RecordID) error {
	if r.checkpoints == nil {
		return nil
	}
	err := r.checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Name:   CheckpointName,
		LastID: lastID,
	})
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

func (r *Reindexer) clearCheckpoint(ctx context.Context) error {
	if r.checkpoints == nil {
		return nil
	}
	if err := r.checkpoints.DeleteCheckpoint(ctx, CheckpointName); err != nil {
		return fmt.Errorf("failed to clear checkpoint: %w", err)
	}
	return nil
}
