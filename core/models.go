package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// RecordID is the composite primary key of an article record,
// "{statute code}-{article number}", e.g. "CIV-184" or "CIV-191-2".
type RecordID string

// StatuteCode returns the statute-code component of the id.
func (id RecordID) StatuteCode() string {
	s := string(id)
	if i := strings.Index(s, "-"); i > 0 {
		return s[:i]
	}
	return s
}

// ArticleNum returns the article-number component of the id, including any
// clause suffix ("191-2").
func (id RecordID) ArticleNum() string {
	s := string(id)
	if i := strings.Index(s, "-"); i > 0 && i+1 < len(s) {
		return s[i+1:]
	}
	return ""
}

// ContentHash generates a deterministic digest of article text using BLAKE2b.
// Identical content produces identical hashes, which lets the ingestion
// pipeline skip re-embedding unchanged articles.
func ContentHash(text string) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}

// Article represents a single statute-article record.
// It may be enriched with an embedding vector during ingestion.
type Article struct {
	Id           RecordID
	StatuteCode  string
	StatuteName  string
	ArticleLabel string // Canonical label, e.g. "Article 191-2"
	Chapter      string // Chapter or section title, may be empty
	Category     string // Document nature, e.g. "statute", "regulation"
	Contents     string
	ContentHash  uint64    // BLAKE2b digest of Contents
	Vector       []float32 // Embedding vector (populated by the ingestion pipeline)
	InsertedAt   time.Time
	UpdatedAt    time.Time
}

// Citation is a parsed statute-article reference from a query.
type Citation struct {
	StatuteName  string // Raw statute prefix as it appeared in the query
	ArticleSpec  string // Raw article marker as it appeared in the query
	ArticleLabel string // Normalized label, e.g. "Article 191-2"
}

// Provenance marks which retrieval path produced a search result.
type Provenance string

const (
	ProvenanceKeyword Provenance = "keyword"
	ProvenanceVector  Provenance = "vector"
	ProvenanceBoth    Provenance = "both"
)

// StrategyTag identifies how a result set was produced. The tag set is a
// stable diagnostic contract: evaluation harnesses key off these values.
type StrategyTag string

const (
	StrategyDirectLookup           StrategyTag = "direct_id_lookup"
	StrategyRegexFallback          StrategyTag = "regex_fallback"
	StrategyArticleSearch          StrategyTag = "atlas_article"
	StrategyHybridLawConcept       StrategyTag = "hybrid_law_concept"
	StrategyHybridPureConcept      StrategyTag = "hybrid_pure_concept"
	StrategyKeywordOnlyLawConcept  StrategyTag = "keyword_fallback_law_concept"
	StrategyKeywordOnlyPureConcept StrategyTag = "keyword_fallback_pure_concept"
	StrategyEmpty                  StrategyTag = "empty"
)

// SearchResult represents one ranked article with its relevance score and
// the retrieval path that produced it.
type SearchResult struct {
	Article    *Article
	Score      float32
	Provenance Provenance
	Preview    string // Short content excerpt, may be empty
}

// Checkpoint records progress of a long-running batch job so an interrupted
// run can resume where it left off.
type Checkpoint struct {
	Name      string
	LastID    RecordID
	UpdatedAt time.Time
}
