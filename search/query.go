package search

import (
	"github.com/jurispect/statcite/lawref"
	"github.com/jurispect/statcite/storage"
)

// Relevance boosts for the concept keyword query. Chapter titles are short
// and highly specific, so a chapter hit outranks a content hit.
const (
	boostChapter     = 3.0
	boostContents    = 2.0
	boostCategory    = 1.0
	boostStatuteName = 4.0
)

// BuildKeywordQuery builds the compound boolean query for a concept search
// term. A known statute scopes the query by code, an unknown statute name
// falls back to a textual must-clause, and an unscoped query additionally
// searches the statute-name field so a bare concept can still surface the
// right statute.
func BuildKeywordQuery(statuteName, term string) *storage.KeywordQuery {
	q := &storage.KeywordQuery{MinimumShouldMatch: 1}

	if statuteName != "" {
		if code, ok := lawref.CodeFor(statuteName); ok {
			q.StatuteCode = code
		} else {
			q.Must = append(q.Must, storage.Phrase{Field: storage.FieldStatuteName, Value: statuteName})
		}
	}

	q.Should = append(q.Should,
		storage.Clause{Field: storage.FieldChapter, Term: term, Boost: boostChapter},
		storage.Clause{Field: storage.FieldContents, Term: term, Boost: boostContents},
		storage.Clause{Field: storage.FieldCategory, Term: term, Boost: boostCategory},
	)
	if statuteName == "" {
		q.Should = append(q.Should,
			storage.Clause{Field: storage.FieldStatuteName, Term: term, Boost: boostStatuteName},
		)
	}

	return q
}

// BuildArticleQuery builds the statute-scoped article-label query used when
// a citation parsed but neither the direct lookup nor the regex scan found a
// record. Both clauses are hard requirements, so results either carry the
// requested label or the query returns empty.
func BuildArticleQuery(statuteName, articleLabel string) *storage.KeywordQuery {
	q := &storage.KeywordQuery{}

	if code, ok := lawref.CodeFor(statuteName); ok {
		q.StatuteCode = code
	} else {
		q.Must = append(q.Must, storage.Phrase{Field: storage.FieldStatuteName, Value: statuteName})
	}
	q.Must = append(q.Must, storage.Phrase{Field: storage.FieldArticleLabel, Value: articleLabel})

	return q
}
