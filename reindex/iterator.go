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

	"github.com/jurispect/statcite/core"
	"github.com/jurispect/statcite/storage"
)

const (
	// DefaultBatchSize is the default number of articles to fetch in each batch
	DefaultBatchSize = 100
)

// ArticleIterator walks the article corpus in id order, one batch at a time.
// The cursor position makes checkpoint-based resumption possible: a caller
// can start iteration strictly after any previously processed id.
type ArticleIterator struct {
	repo      storage.ArticleRepository
	batchSize int
}

// NewArticleIterator creates a new article iterator.
// batchSize: number of articles to fetch in each batch (must be > 0)
func NewArticleIterator(repo storage.ArticleRepository, batchSize int) *ArticleIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ArticleIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all articles with ids strictly after afterID,
// calling fn for each batch. Iteration stops on the first error from fn or
// when the corpus is exhausted. Context cancellation is checked between
// batches.
func (it *ArticleIterator) ForEach(ctx context.Context, afterID core.RecordID, fn func([]*core.Article) error) error {
	cursor := afterID

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ids, err := it.repo.ListArticleIDs(ctx, cursor, it.batchSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		batch, err := it.repo.GetArticles(ctx, ids...)
		if err != nil {
			return err
		}

		if err := fn(batch); err != nil {
			return err
		}

		cursor = ids[len(ids)-1]
	}
}
