package badger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/jurispect/statcite/core"
	"github.com/jurispect/statcite/storage"
)

// Backend wraps a BadgerDB instance and provides low-level operations.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenBackend opens a BadgerDB database at the specified path.
// Creates the directory if it doesn't exist.
func OpenBackend(filePath string, inMemory bool) (*Backend, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Backend{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// WithTransaction executes a function within a transaction.
func (b *Backend) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return b.WithTx(func(tx *badger.Txn) error {
		if err := fn(ctx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// scanArticles iterates every article record under the given key prefix and
// invokes visit for each. Returning false from visit stops the scan.
func (b *Backend) scanArticles(prefix []byte, visit func(article *core.Article) (bool, error)) error {
	return b.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var article *core.Article
			err := item.Value(func(val []byte) error {
				var err error
				article, err = storage.UnmarshalArticle(val)
				return err
			})
			if err != nil {
				return err
			}
			if article == nil {
				continue
			}

			keep, err := visit(article)
			if err != nil {
				return err
			}
			if !keep {
				return nil
			}
		}
		return nil
	}, false)
}

// FindByCitation returns articles whose statute name matches any of the given
// names and whose article label matches the regex pattern.
func (b *Backend) FindByCitation(ctx context.Context, statuteNames []string, articlePattern string) ([]*core.Article, error) {
	re, err := regexp.Compile(articlePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrInvalidPattern, err)
	}

	nameSet := make(map[string]bool, len(statuteNames))
	for _, name := range statuteNames {
		nameSet[strings.ToLower(strings.TrimSpace(name))] = true
	}

	var matches []*core.Article
	err = b.scanArticles(makeArticleScanPrefix(), func(article *core.Article) (bool, error) {
		if len(nameSet) > 0 && !nameSet[strings.ToLower(article.StatuteName)] {
			return true, nil
		}
		if re.MatchString(article.ArticleLabel) {
			matches = append(matches, article)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(matches, func(a, b *core.Article) int {
		return strings.Compare(string(a.Id), string(b.Id))
	})
	return matches, nil
}

// SearchKeyword executes a compound boolean query, ranked by the query's own
// scoring. A statute-code filter narrows the scan to that statute's keys.
func (b *Backend) SearchKeyword(ctx context.Context, query *storage.KeywordQuery, limit int) ([]*core.SearchResult, error) {
	if query == nil {
		return nil, storage.ErrInvalidQuery
	}

	prefix := makeArticleScanPrefix()
	if query.StatuteCode != "" {
		prefix = makeStatuteScanPrefix(query.StatuteCode)
	}

	var results []*core.SearchResult
	err := b.scanArticles(prefix, func(article *core.Article) (bool, error) {
		score, ok := query.Score(article)
		if ok {
			results = append(results, &core.SearchResult{
				Article:    article,
				Score:      score,
				Provenance: core.ProvenanceKeyword,
			})
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	sortByScoreDesc(results)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// FindSimilar finds articles similar to the given vector. It keeps an
// oversampled pool of numCandidates by similarity before returning the top
// limit results, mirroring the candidate behavior of ANN indexes.
func (b *Backend) FindSimilar(ctx context.Context, vector []float32, limit, numCandidates int, filter *storage.VectorFilter) ([]*core.SearchResult, error) {
	if numCandidates < limit {
		numCandidates = limit
	}

	var pool []*core.SearchResult
	err := b.scanArticles(makeArticleScanPrefix(), func(article *core.Article) (bool, error) {
		if len(article.Vector) == 0 {
			return true, nil
		}
		if !filter.Matches(article) {
			return true, nil
		}

		// Cosine similarity; vectors are stored unit-length.
		similarity := dotProduct(vector, article.Vector)
		pool = append(pool, &core.SearchResult{
			Article:    article,
			Score:      similarity,
			Provenance: core.ProvenanceVector,
		})
		if len(pool) > numCandidates*2 {
			sortByScoreDesc(pool)
			pool = pool[:numCandidates]
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	sortByScoreDesc(pool)
	if len(pool) > numCandidates {
		pool = pool[:numCandidates]
	}
	if limit > 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	return pool, nil
}

func sortByScoreDesc(results []*core.SearchResult) {
	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return strings.Compare(string(a.Article.Id), string(b.Article.Id))
	})
}

// dotProduct calculates the dot product of two vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
