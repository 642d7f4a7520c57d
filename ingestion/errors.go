package ingestion

import "errors"

var (
	// ErrArticleRepositoryRequired is returned when an article repository is not provided.
	ErrArticleRepositoryRequired = errors.New("article repository required")

	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrUnresolvableArticle is returned when an article has no id and one
	// cannot be derived from its statute name and article label.
	ErrUnresolvableArticle = errors.New("article id not derivable from statute name and label")
)
