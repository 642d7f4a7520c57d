package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/jurispect/statcite/core"
	"github.com/jurispect/statcite/storage"
)

// ArticleRepository implements storage.ArticleRepository for BadgerDB.
type ArticleRepository struct {
	backend *Backend
}

var _ storage.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(backend *Backend) (*ArticleRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &ArticleRepository{backend: backend}, nil
}

// Close is a no-op; the backend owns the database handle.
func (r *ArticleRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ArticleRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// FindByCitation delegates to the backend.
func (r *ArticleRepository) FindByCitation(ctx context.Context, statuteNames []string, articlePattern string) ([]*core.Article, error) {
	return r.backend.FindByCitation(ctx, statuteNames, articlePattern)
}

// SearchKeyword delegates to the backend.
func (r *ArticleRepository) SearchKeyword(ctx context.Context, query *storage.KeywordQuery, limit int) ([]*core.SearchResult, error) {
	return r.backend.SearchKeyword(ctx, query, limit)
}

// FindSimilar delegates to the backend.
func (r *ArticleRepository) FindSimilar(ctx context.Context, vector []float32, limit, numCandidates int, filter *storage.VectorFilter) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, limit, numCandidates, filter)
}

// AddArticles adds one or more article records to storage.
func (r *ArticleRepository) AddArticles(ctx context.Context, articles ...*core.Article) ([]*core.Article, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, article := range articles {
			if err := core.ValidateArticle(article); err != nil {
				return err
			}

			key := makeArticleKey(article.Id)
			if _, err := tx.Get(key); err == nil {
				return storage.ErrDuplicateKey
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			article.InsertedAt = time.Now().UTC()
			article.UpdatedAt = article.InsertedAt

			if err := tx.Set(key, storage.MarshalArticle(article)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return articles, nil
}

// UpdateArticles updates existing article records.
func (r *ArticleRepository) UpdateArticles(ctx context.Context, articles ...*core.Article) ([]*core.Article, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, article := range articles {
			key := makeArticleKey(article.Id)
			if _, err := tx.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return storage.ErrNotFound
				}
				return err
			}

			article.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalArticle(article)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return articles, nil
}

// DeleteArticles removes article records by their ids.
func (r *ArticleRepository) DeleteArticles(ctx context.Context, ids ...core.RecordID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeArticleKey(id)
			if _, err := tx.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return storage.ErrNotFound
				}
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetArticle retrieves a single article by id.
func (r *ArticleRepository) GetArticle(ctx context.Context, id core.RecordID) (*core.Article, error) {
	var article *core.Article
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeArticleKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			article, err = storage.UnmarshalArticle(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return article, nil
}

// GetArticles retrieves multiple articles by their ids, skipping missing ones.
func (r *ArticleRepository) GetArticles(ctx context.Context, ids ...core.RecordID) ([]*core.Article, error) {
	articles := make([]*core.Article, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeArticleKey(id))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				article, err := storage.UnmarshalArticle(val)
				if err != nil {
					return err
				}
				articles = append(articles, article)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// ListArticleIDs returns up to limit article ids strictly after afterID in
// key order.
func (r *ArticleRepository) ListArticleIDs(ctx context.Context, afterID core.RecordID, limit int) ([]core.RecordID, error) {
	var ids []core.RecordID
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeArticleScanPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		seek := makeArticleScanPrefix()
		if afterID != "" {
			seek = makeArticleKey(afterID)
		}

		for iter.Seek(seek); iter.Valid(); iter.Next() {
			id := articleIDFromKey(iter.Item().Key())
			if afterID != "" && id <= afterID {
				continue
			}
			ids = append(ids, id)
			if limit > 0 && len(ids) >= limit {
				return nil
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountArticles returns the number of stored articles.
func (r *ArticleRepository) CountArticles(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeArticleScanPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}
