package search

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jurispect/statcite/ai"
	"github.com/jurispect/statcite/citation"
	"github.com/jurispect/statcite/core"
	"github.com/jurispect/statcite/lawref"
	"github.com/jurispect/statcite/storage"
)

const (
	// DefaultLimit is the result count used when the caller does not set one.
	DefaultLimit = 5

	// MaxLimit caps the result count a caller may request.
	MaxLimit = 50

	// Oversampling factor for the vector candidate pool.
	oversampleFactor = 10

	// Preview excerpts are cut to roughly this many bytes at a word boundary.
	previewLength = 160

	defaultCallTimeout    = 10 * time.Second
	defaultRetryAttempts  = 2
	defaultRetryBaseDelay = 250 * time.Millisecond
)

// Options control a single search invocation.
type Options struct {
	// Limit is the maximum number of results, clamped to [1, MaxLimit].
	// Zero means DefaultLimit.
	Limit int

	// StatuteName scopes the search to one statute. Accepts canonical names
	// and aliases. Only consulted for non-citation queries; a citation in
	// the query text always names its own statute.
	StatuteName string
}

// Response is the outcome of one resolution cascade.
type Response struct {
	Results []*core.SearchResult

	// Strategy tags how the results were produced. Stable diagnostic
	// contract: evaluation harnesses compare against these values.
	Strategy core.StrategyTag

	ElapsedMs int64
}

// Searcher resolves free-form legal queries to ranked statute articles.
// It is stateless across calls and safe for concurrent use.
type Searcher struct {
	articles       storage.ArticleRepository
	embedder       ai.Embedder
	merge          MergeFunc
	logger         *slog.Logger
	callTimeout    time.Duration
	retryAttempts  int
	retryBaseDelay time.Duration
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithCallTimeout sets the per-call timeout applied to each outbound store
// and embedding call. Default is 10s.
func WithCallTimeout(timeout time.Duration) Option {
	return func(s *Searcher) error {
		if timeout > 0 {
			s.callTimeout = timeout
		}
		return nil
	}
}

// WithRetry sets the bounded retry policy around outbound calls.
// Default is 2 attempts with a 250ms base delay.
func WithRetry(attempts int, baseDelay time.Duration) Option {
	return func(s *Searcher) error {
		if attempts > 0 {
			s.retryAttempts = attempts
		}
		if baseDelay > 0 {
			s.retryBaseDelay = baseDelay
		}
		return nil
	}
}

// WithMergeFunc replaces the default vector-first positional fusion.
func WithMergeFunc(merge MergeFunc) Option {
	return func(s *Searcher) error {
		if merge != nil {
			s.merge = merge
		}
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(articles storage.ArticleRepository, embedder ai.Embedder, opts ...Option) (*Searcher, error) {
	if articles == nil {
		return nil, ErrArticleRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		articles:       articles,
		embedder:       embedder,
		merge:          Merge,
		logger:         slog.Default(),
		callTimeout:    defaultCallTimeout,
		retryAttempts:  defaultRetryAttempts,
		retryBaseDelay: defaultRetryBaseDelay,
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search resolves a query through the strategy cascade and returns up to
// opts.Limit ranked results with the strategy tag that produced them.
func (s *Searcher) Search(ctx context.Context, query string, opts *Options) (*Response, error) {
	return s.SearchWithMonitor(ctx, query, opts, nil)
}

// SearchWithMonitor resolves a query with monitoring. The monitor receives
// callbacks as strategies run and retrieval legs complete.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, opts *Options, monitor SearchMonitor) (*Response, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if opts == nil {
		opts = &Options{}
	}

	start := time.Now()
	limit := clampLimit(opts.Limit)
	trimmed := strings.TrimSpace(query)

	monitor.Start(trimmed)

	// An empty query is a valid request with a trivially empty answer.
	if trimmed == "" {
		return s.finish(monitor, start, core.StrategyEmpty, nil), nil
	}

	if cite, ok := citation.Parse(trimmed); ok {
		monitor.CitationParsed(cite)
		return s.resolveCitation(ctx, cite, limit, monitor, start)
	}

	statute, term := classifyConcept(trimmed, opts.StatuteName)
	return s.resolveConcept(ctx, statute, term, limit, monitor, start)
}

// resolveCitation runs the citation arm of the cascade: direct id lookup,
// then a tolerant regex scan, then a statute-scoped label search. The label
// search is terminal; a citation-shaped query never falls through to the
// concept strategies, so its empty result set is the answer.
func (s *Searcher) resolveCitation(ctx context.Context, cite core.Citation, limit int, monitor SearchMonitor, start time.Time) (*Response, error) {
	canonical := lawref.Resolve(cite.StatuteName)

	// S0: point lookup by record id.
	if id, ok := citation.BuildRecordID(canonical, cite.ArticleLabel); ok {
		article, err := s.getArticle(ctx, id)
		switch {
		case err == nil:
			monitor.DirectHit(id)
			results := []*core.SearchResult{{
				Article:    article,
				Score:      1,
				Provenance: core.ProvenanceKeyword,
			}}
			return s.finish(monitor, start, core.StrategyDirectLookup, results), nil
		case errors.Is(err, storage.ErrNotFound):
			// fall through to the regex scan
		default:
			s.logger.Error("direct lookup failed", "id", id, "err", err)
			return nil, err
		}
	}

	// S1: regex scan over statute name variants and article-number variants.
	if num, ok := citation.ExtractArticleNum(cite.ArticleLabel); ok {
		names := append([]string{canonical}, lawref.AliasesFor(canonical)...)
		if !strings.EqualFold(cite.StatuteName, canonical) {
			names = append(names, cite.StatuteName)
		}

		matches, err := s.findByCitation(ctx, names, citation.ArticlePattern(num))
		if err != nil {
			s.logger.Error("citation scan failed", "statute", canonical, "num", num, "err", err)
			return nil, err
		}

		results := make([]*core.SearchResult, 0, len(matches))
		for _, article := range matches {
			results = append(results, &core.SearchResult{
				Article:    article,
				Score:      1,
				Provenance: core.ProvenanceKeyword,
			})
		}
		monitor.AfterRegexScan(resultIDs(results))

		if len(results) > 0 {
			if len(results) > limit {
				results = results[:limit]
			}
			return s.finish(monitor, start, core.StrategyRegexFallback, results), nil
		}
	}

	// S2a: statute-scoped article-label search. Terminal.
	results, err := s.searchKeyword(ctx, BuildArticleQuery(canonical, cite.ArticleLabel), limit)
	if err != nil {
		s.logger.Error("article label search failed", "statute", canonical, "label", cite.ArticleLabel, "err", err)
		return nil, err
	}
	monitor.AfterKeywordSearch(resultIDs(results))

	return s.finish(monitor, start, core.StrategyArticleSearch, results), nil
}

// resolveConcept runs the hybrid arm: keyword and embedding+vector retrieval
// issued concurrently and joined before the merge. A failed vector leg
// degrades to keyword-only with a fallback strategy tag; a failed keyword
// leg propagates, since no further fallback exists.
func (s *Searcher) resolveConcept(ctx context.Context, statute, term string, limit int, monitor SearchMonitor, start time.Time) (*Response, error) {
	lawKnown := statute != ""

	type legResult struct {
		results []*core.SearchResult
		err     error
	}
	keywordCh := make(chan legResult, 1)
	vectorCh := make(chan legResult, 1)

	go func() {
		results, err := s.searchKeyword(ctx, BuildKeywordQuery(statute, term), limit)
		keywordCh <- legResult{results, err}
	}()
	go func() {
		results, err := s.vectorSearch(ctx, statute, term, limit)
		vectorCh <- legResult{results, err}
	}()

	keyword := <-keywordCh
	vector := <-vectorCh

	if keyword.err != nil {
		s.logger.Error("keyword search failed", "term", term, "err", keyword.err)
		return nil, keyword.err
	}
	monitor.AfterKeywordSearch(resultIDs(keyword.results))

	if vector.err != nil {
		s.logger.Warn("vector leg unavailable, degrading to keyword-only",
			"term", term, "err", vector.err)
		monitor.VectorDegraded(vector.err)
		return s.finish(monitor, start, conceptStrategy(lawKnown, false), keyword.results), nil
	}
	monitor.AfterVectorSearch(resultIDs(vector.results))

	merged := s.merge(keyword.results, vector.results, limit)
	return s.finish(monitor, start, conceptStrategy(lawKnown, true), merged), nil
}

// vectorSearch embeds the term and queries the vector index, scoped to the
// statute code when one is known.
func (s *Searcher) vectorSearch(ctx context.Context, statute, term string, limit int) ([]*core.SearchResult, error) {
	var vector []float32
	err := retryCall(ctx, s.retryAttempts, s.retryBaseDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		var embedErr error
		vector, embedErr = s.embedder.EmbedText(callCtx, term)
		return embedErr
	})
	if err != nil {
		return nil, err
	}

	var filter *storage.VectorFilter
	if statute != "" {
		if code, ok := lawref.CodeFor(statute); ok {
			filter = &storage.VectorFilter{StatuteCode: code}
		}
	}

	var results []*core.SearchResult
	err = retryCall(ctx, s.retryAttempts, s.retryBaseDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		var searchErr error
		results, searchErr = s.articles.FindSimilar(callCtx, vector, limit, limit*oversampleFactor, filter)
		return searchErr
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Searcher) getArticle(ctx context.Context, id core.RecordID) (*core.Article, error) {
	var article *core.Article
	err := retryCall(ctx, s.retryAttempts, s.retryBaseDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		var getErr error
		article, getErr = s.articles.GetArticle(callCtx, id)
		// A missing record is a classification outcome, not a transient
		// failure. Don't retry it.
		if errors.Is(getErr, storage.ErrNotFound) {
			article = nil
			return nil
		}
		return getErr
	})
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, storage.ErrNotFound
	}
	return article, nil
}

func (s *Searcher) findByCitation(ctx context.Context, statuteNames []string, pattern string) ([]*core.Article, error) {
	var matches []*core.Article
	err := retryCall(ctx, s.retryAttempts, s.retryBaseDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		var findErr error
		matches, findErr = s.articles.FindByCitation(callCtx, statuteNames, pattern)
		return findErr
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (s *Searcher) searchKeyword(ctx context.Context, query *storage.KeywordQuery, limit int) ([]*core.SearchResult, error) {
	var results []*core.SearchResult
	err := retryCall(ctx, s.retryAttempts, s.retryBaseDelay, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		defer cancel()
		var searchErr error
		results, searchErr = s.articles.SearchKeyword(callCtx, query, limit)
		return searchErr
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// finish stamps previews and latency onto the outgoing response.
func (s *Searcher) finish(monitor SearchMonitor, start time.Time, strategy core.StrategyTag, results []*core.SearchResult) *Response {
	if results == nil {
		results = []*core.SearchResult{}
	}
	for _, result := range results {
		if result.Preview == "" && result.Article != nil {
			result.Preview = makePreview(result.Article.Contents)
		}
	}

	monitor.Finish(strategy, results)

	return &Response{
		Results:   results,
		Strategy:  strategy,
		ElapsedMs: time.Since(start).Milliseconds(),
	}
}

// classifyConcept picks the statute scope and search term for a non-citation
// query: explicit statute option, then statute-prefix extraction, then the
// concept table, else bare free text.
func classifyConcept(trimmed, explicitStatute string) (statute, term string) {
	if explicitStatute != "" {
		return lawref.Resolve(explicitStatute), trimmed
	}
	if statute, remainder, ok := lawref.ExtractLawName(trimmed); ok {
		return statute, remainder
	}
	if statute, concept, ok := lawref.RewriteByConcept(trimmed); ok {
		return statute, concept
	}
	return "", trimmed
}

func conceptStrategy(lawKnown, hybrid bool) core.StrategyTag {
	switch {
	case lawKnown && hybrid:
		return core.StrategyHybridLawConcept
	case lawKnown:
		return core.StrategyKeywordOnlyLawConcept
	case hybrid:
		return core.StrategyHybridPureConcept
	default:
		return core.StrategyKeywordOnlyPureConcept
	}
}

func clampLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit < 1:
		return 1
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

func resultIDs(results []*core.SearchResult) []core.RecordID {
	ids := make([]core.RecordID, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Article.Id)
	}
	return ids
}

// makePreview returns a short excerpt of the contents, cut at a word
// boundary.
func makePreview(contents string) string {
	trimmed := strings.TrimSpace(contents)
	if len(trimmed) <= previewLength {
		return trimmed
	}
	cut := trimmed[:previewLength]
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
