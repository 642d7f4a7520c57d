package lawref

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Derived indexes, built once at package initialization and read-only after.
var (
	// aliasIndex maps lowercase alias -> canonical name.
	aliasIndex map[string]string

	// codeIndex maps lowercase canonical name -> code.
	codeIndex map[string]string

	// prefixTerms holds every canonical name and alias, longest first, for
	// statute-prefix extraction.
	prefixTerms []string

	// conceptKeys holds every concept term, longest first.
	conceptKeys []string

	// reverseAliases maps canonical name -> its aliases.
	reverseAliases map[string][]string
)

func init() {
	aliasIndex = make(map[string]string, len(statuteAliases)+len(statuteCodes))
	codeIndex = make(map[string]string, len(statuteCodes))
	reverseAliases = make(map[string][]string, len(statuteCodes))

	for name, code := range statuteCodes {
		lower := strings.ToLower(name)
		aliasIndex[lower] = name
		codeIndex[lower] = code
		prefixTerms = append(prefixTerms, name)
	}
	for alias, name := range statuteAliases {
		aliasIndex[strings.ToLower(alias)] = name
		reverseAliases[name] = append(reverseAliases[name], alias)
		prefixTerms = append(prefixTerms, alias)
	}
	for key := range conceptRules {
		conceptKeys = append(conceptKeys, key)
	}

	byLengthDesc := func(terms []string) {
		sort.Slice(terms, func(i, j int) bool {
			if len(terms[i]) != len(terms[j]) {
				return len(terms[i]) > len(terms[j])
			}
			return terms[i] < terms[j]
		})
	}
	byLengthDesc(prefixTerms)
	byLengthDesc(conceptKeys)
	for _, aliases := range reverseAliases {
		sort.Strings(aliases)
	}
}

// Resolve maps an abbreviation or colloquial statute name to its canonical
// name. Unknown inputs are returned unchanged, so Resolve is total and
// idempotent: resolving an already-canonical name returns it as is.
func Resolve(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return name
	}
	if canonical, ok := aliasIndex[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return name
}

// CodeFor returns the statute code for a canonical name, alias or
// abbreviation. Returns false if the statute is unknown.
func CodeFor(name string) (string, bool) {
	canonical := Resolve(name)
	code, ok := codeIndex[strings.ToLower(strings.TrimSpace(canonical))]
	return code, ok
}

// AliasesFor returns the known aliases of a canonical statute name, sorted.
// Returns nil for unknown statutes or statutes without aliases.
func AliasesFor(canonical string) []string {
	return reverseAliases[Resolve(canonical)]
}

// StatuteNames returns all canonical statute names, sorted.
func StatuteNames() []string {
	names := make([]string, 0, len(statuteCodes))
	for name := range statuteCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExtractLawName tries every known statute name and alias, longest first, as
// a literal case-insensitive prefix of the trimmed query. The prefix must end
// at a word boundary ("insurance law" must not match inside "insurance
// lawsuit"), and non-empty text must remain after it: a bare statute name
// carries no search term and is not a concept query.
func ExtractLawName(query string) (statute, remainder string, ok bool) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", "", false
	}

	lower := strings.ToLower(trimmed)
	for _, term := range prefixTerms {
		lowerTerm := strings.ToLower(term)
		if !strings.HasPrefix(lower, lowerTerm) {
			continue
		}
		tail := trimmed[len(lowerTerm):]
		if next, _ := utf8.DecodeRuneInString(tail); !unicode.IsSpace(next) {
			continue
		}
		rest := strings.TrimSpace(tail)
		if rest == "" {
			continue
		}
		return Resolve(term), rest, true
	}
	return "", "", false
}

// RewriteByConcept maps a free-text query onto a statute and a search term
// via the concept table. Exact match wins; failing that, concept keys are
// scanned longest-first for substring containment so that a short, general
// key never preempts a longer, more specific one.
func RewriteByConcept(query string) (statute, concept string, ok bool) {
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower == "" {
		return "", "", false
	}

	if rule, found := conceptRules[lower]; found {
		return rule.Statute, conceptTerm(lower, rule), true
	}

	for _, key := range conceptKeys {
		if strings.Contains(lower, key) {
			rule := conceptRules[key]
			return rule.Statute, conceptTerm(key, rule), true
		}
	}
	return "", "", false
}

// conceptTerm picks the canonical concept substitute when the rule defines
// one, else keeps the matched key as the search term.
func conceptTerm(key string, rule ConceptRule) string {
	if rule.Concept != "" {
		return rule.Concept
	}
	return key
}
