package storage

import (
	"context"

	"github.com/jurispect/statcite/core"
)

// ArticleRepository provides operations over the statute-article store.
// Implementations must be thread-safe and support concurrent access.
type ArticleRepository interface {
	// AddArticles adds one or more article records to storage.
	// Records are keyed by their RecordID; adding an existing id returns
	// ErrDuplicateKey. Sets InsertedAt/UpdatedAt timestamps.
	AddArticles(ctx context.Context, articles ...*core.Article) ([]*core.Article, error)

	// UpdateArticles updates existing article records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateArticles(ctx context.Context, articles ...*core.Article) ([]*core.Article, error)

	// DeleteArticles removes article records by their ids.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteArticles(ctx context.Context, ids ...core.RecordID) error

	// GetArticle retrieves a single article by id.
	// Returns ErrNotFound if the record doesn't exist.
	GetArticle(ctx context.Context, id core.RecordID) (*core.Article, error)

	// GetArticles retrieves multiple articles by their ids.
	// Returns only the records that exist (no error for missing records).
	GetArticles(ctx context.Context, ids ...core.RecordID) ([]*core.Article, error)

	// ListArticleIDs returns up to limit article ids strictly after afterID
	// in key order. An empty afterID starts from the beginning. Used by
	// batch jobs to walk the corpus incrementally.
	ListArticleIDs(ctx context.Context, afterID core.RecordID, limit int) ([]core.RecordID, error)

	// CountArticles returns the number of stored articles.
	CountArticles(ctx context.Context) (int, error)

	// FindByCitation returns articles whose statute name matches any of the
	// given names (case-insensitively) and whose article label matches the
	// regex pattern. Returns ErrInvalidPattern for a pattern that does not
	// compile.
	FindByCitation(ctx context.Context, statuteNames []string, articlePattern string) ([]*core.Article, error)

	// SearchKeyword executes a compound boolean query and returns up to
	// limit results ranked by relevance score (highest first).
	SearchKeyword(ctx context.Context, query *KeywordQuery, limit int) ([]*core.SearchResult, error)

	// FindSimilar finds articles similar to the given vector, optionally
	// restricted by equality filters. The implementation ranks an
	// oversampled pool of numCandidates before returning the top limit
	// results by similarity (highest first).
	FindSimilar(ctx context.Context, vector []float32, limit, numCandidates int, filter *VectorFilter) ([]*core.SearchResult, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// CheckpointRepository persists batch-job progress markers.
type CheckpointRepository interface {
	// SaveCheckpoint stores a checkpoint, overwriting any previous one with
	// the same name. Sets UpdatedAt.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// GetCheckpoint retrieves a checkpoint by name.
	// Returns ErrNotFound if no checkpoint with that name exists.
	GetCheckpoint(ctx context.Context, name string) (*core.Checkpoint, error)

	// DeleteCheckpoint removes a checkpoint. Deleting a missing checkpoint
	// is not an error.
	DeleteCheckpoint(ctx context.Context, name string) error
}

// VectorFilter restricts vector search to articles matching exact field
// values. Zero-valued fields are ignored.
type VectorFilter struct {
	StatuteCode string
	Category    string
}

// Matches reports whether an article satisfies the filter.
func (f *VectorFilter) Matches(article *core.Article) bool {
	if f == nil {
		return true
	}
	if f.StatuteCode != "" && article.StatuteCode != f.StatuteCode {
		return false
	}
	if f.Category != "" && article.Category != f.Category {
		return false
	}
	return true
}
