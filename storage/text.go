package storage

import "strings"

// Stop words to filter out before token-overlap scoring. Includes the filler
// that dominates colloquial legal questions.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "what": true, "when": true, "how": true,
	"can": true, "my": true, "i": true, "about": true, "shall": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation,
// and removes stop words.
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// phraseFold reports whether needle occurs in haystack as a whole phrase:
// case-insensitive and bounded by word breaks on both sides, so "Article 18"
// never matches inside "Article 184".
func phraseFold(haystack, needle string) bool {
	want := strings.Fields(strings.ToLower(needle))
	if len(want) == 0 {
		return true
	}
	have := strings.Fields(strings.ToLower(haystack))

	for i := 0; i+len(want) <= len(have); i++ {
		match := true
		for j, token := range want {
			if have[i+j] != token {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// overlapFraction returns the fraction of query tokens (after filtering)
// that appear in the document text. Returns 0 when the query has no
// meaningful tokens.
func overlapFraction(query, document string) float32 {
	queryWords := tokenizeAndFilter(query)
	if len(queryWords) == 0 {
		return 0
	}

	docWords := tokenizeAndFilter(document)
	docWordSet := make(map[string]bool, len(docWords))
	for _, word := range docWords {
		docWordSet[word] = true
	}

	hits := 0
	for _, qWord := range queryWords {
		if docWordSet[qWord] {
			hits++
		}
	}
	return float32(hits) / float32(len(queryWords))
}
