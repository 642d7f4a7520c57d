package citation

import (
	"regexp"
	"strings"

	"github.com/jurispect/statcite/core"
	"github.com/jurispect/statcite/lawref"
)

var (
	// Citation grammar: non-empty statute prefix followed by an article
	// marker. The § shorthand may sit flush against the prefix.
	articleCitationRe = regexp.MustCompile(`^(.+?)\s+((?i:article)\s+\d+(?:-\d+)?(?:\s+(?i:clause)\s+\d+)?)$`)
	sectionCitationRe = regexp.MustCompile(`^(.+?)\s*(§\s*\d+(?:-\d+)?)$`)

	// Article-number normalization forms.
	pureNumberRe = regexp.MustCompile(`^\d+(?:-\d+)?$`)
	clauseFormRe = regexp.MustCompile(`^(?i:article)\s+(\d+)\s+(?i:clause)\s+(\d+)$`)
	canonicalRe  = regexp.MustCompile(`^(?i:article)\s+(\d+(?:-\d+)?)$`)

	articleNumRe = regexp.MustCompile(`\d+(?:-\d+)?`)
)

// Parse recognizes a "<statute> <article-spec>" query. Returns false when the
// query has no citation shape.
func Parse(query string) (core.Citation, bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return core.Citation{}, false
	}

	m := articleCitationRe.FindStringSubmatch(trimmed)
	if m == nil {
		m = sectionCitationRe.FindStringSubmatch(trimmed)
	}
	if m == nil {
		return core.Citation{}, false
	}

	prefix := strings.TrimSpace(m[1])
	if prefix == "" {
		return core.Citation{}, false
	}

	return core.Citation{
		StatuteName:  prefix,
		ArticleSpec:  m[2],
		ArticleLabel: NormalizeArticleNo(m[2]),
	}, true
}

// NormalizeArticleNo normalizes an article spec into the canonical
// "Article N" / "Article N-M" label form:
//
//	"184"                  -> "Article 184"
//	"§191-2"               -> "Article 191-2"
//	"Article 191 Clause 2" -> "Article 191-2"
//	"Article 184"          -> "Article 184" (pass-through)
//
// Unrecognized input is returned trimmed but otherwise unchanged; downstream
// strategies must tolerate a non-canonical label.
func NormalizeArticleNo(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "§"))

	if pureNumberRe.MatchString(s) {
		return "Article " + s
	}
	if m := clauseFormRe.FindStringSubmatch(s); m != nil {
		return "Article " + m[1] + "-" + m[2]
	}
	if m := canonicalRe.FindStringSubmatch(s); m != nil {
		return "Article " + m[1]
	}
	return s
}

// ExtractArticleNum extracts the digit/hyphen portion of an article label.
// Returns false when the label has no recognizable article number.
func ExtractArticleNum(label string) (string, bool) {
	num := articleNumRe.FindString(label)
	return num, num != ""
}

// BuildRecordID builds the primary key of an article record from a statute
// name (canonical or alias) and an article label. Returns false when the
// statute has no known code or the label has no extractable number.
func BuildRecordID(statuteName, articleLabel string) (core.RecordID, bool) {
	code, ok := lawref.CodeFor(statuteName)
	if !ok {
		return "", false
	}
	num, ok := ExtractArticleNum(articleLabel)
	if !ok {
		return "", false
	}
	return core.RecordID(code + "-" + num), true
}

// ArticlePattern builds a tolerant regex over an article number for the
// regex-fallback strategy. A clause-bearing number matches both its
// hyphenated and "Clause" spellings; a bare number additionally matches its
// clause variants, since the fallback exists to surface near misses.
func ArticlePattern(num string) string {
	base, clause, _ := strings.Cut(num, "-")
	if clause != "" {
		return `^(?i)article\s*` + base + `(?:\s*-\s*` + clause + `|\s+clause\s+` + clause + `)$`
	}
	return `^(?i)article\s*` + base + `(?:\s*-\s*\d+|\s+clause\s+\d+)?$`
}
