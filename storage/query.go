package storage

import (
	"strings"

	"github.com/jurispect/statcite/core"
)

// Field identifies a searchable article field.
type Field string

const (
	FieldChapter      Field = "chapter"
	FieldContents     Field = "contents"
	FieldCategory     Field = "category"
	FieldStatuteName  Field = "statute_name"
	FieldArticleLabel Field = "article_label"
)

// Clause is a boosted free-text match against a single field.
type Clause struct {
	Field Field
	Term  string
	Boost float32
}

// Phrase is a whole-phrase requirement on a field: case-insensitive and
// bounded by word breaks, so a label phrase cannot match inside a longer
// article number.
type Phrase struct {
	Field Field
	Value string
}

// KeywordQuery is a compound boolean query: an optional statute-code filter,
// phrase clauses that must all hold, and boosted should clauses of which at
// least MinimumShouldMatch must hold. The query carries its own scoring so
// that every backend ranks identically.
type KeywordQuery struct {
	StatuteCode        string // exact statute-code filter, "" = unscoped
	Must               []Phrase
	Should             []Clause
	MinimumShouldMatch int
}

// Score evaluates the query against an article. The boolean reports whether
// the article qualifies at all; the score is the sum of boost-weighted token
// overlap over the matching should clauses, with a verbatim bonus when a
// clause's full phrase occurs in the field.
func (q *KeywordQuery) Score(article *core.Article) (float32, bool) {
	if q.StatuteCode != "" && article.StatuteCode != q.StatuteCode {
		return 0, false
	}

	for _, p := range q.Must {
		if !phraseFold(fieldValue(article, p.Field), p.Value) {
			return 0, false
		}
	}

	// A must-only query (e.g. the scoped article-label search) qualifies
	// with a fixed score.
	if len(q.Should) == 0 {
		return 1, true
	}

	matched := 0
	var score float32
	for _, c := range q.Should {
		value := fieldValue(article, c.Field)
		frac := overlapFraction(c.Term, value)
		if frac == 0 {
			continue
		}
		matched++
		score += frac * c.Boost
		if containsFold(value, c.Term) {
			score += 0.3 * c.Boost
		}
	}

	minShould := q.MinimumShouldMatch
	if minShould < 1 {
		minShould = 1
	}
	if matched < minShould {
		return 0, false
	}
	return score, true
}

// fieldValue returns the article text behind a query field.
func fieldValue(article *core.Article, field Field) string {
	switch field {
	case FieldChapter:
		return article.Chapter
	case FieldContents:
		return article.Contents
	case FieldCategory:
		return article.Category
	case FieldStatuteName:
		return article.StatuteName
	case FieldArticleLabel:
		return article.ArticleLabel
	default:
		return ""
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(strings.TrimSpace(needle)))
}
