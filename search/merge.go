package search

import "github.com/jurispect/statcite/core"

// MergeFunc fuses a keyword result list and a vector result list into one
// ranked, deduplicated list of at most limit results. The fusion policy is
// pluggable so alternative rankers can be benchmarked against the default.
type MergeFunc func(keyword, vector []*core.SearchResult, limit int) []*core.SearchResult

// Merge is the default vector-first positional fusion.
//
// Vector results are taken first in their returned order with synthetic
// scores 1.00, 0.99, 0.98, ... then keyword results fill the remaining slots
// with scores 0.50, 0.49, 0.48, ... An id present in both inputs keeps its
// vector position and score but is tagged with provenance "both".
//
// Guarantees: output length <= limit, no duplicate ids, vector-sourced items
// never rank below keyword-only items.
func Merge(keyword, vector []*core.SearchResult, limit int) []*core.SearchResult {
	merged := make([]*core.SearchResult, 0, limit)
	if limit <= 0 {
		return merged
	}

	seen := make(map[core.RecordID]*core.SearchResult, limit)

	for i, r := range vector {
		if len(merged) >= limit {
			break
		}
		if _, ok := seen[r.Article.Id]; ok {
			continue
		}
		out := *r
		out.Score = 1.0 - 0.01*float32(i)
		out.Provenance = core.ProvenanceVector
		merged = append(merged, &out)
		seen[out.Article.Id] = &out
	}

	for i, r := range keyword {
		if len(merged) >= limit {
			break
		}
		if _, ok := seen[r.Article.Id]; ok {
			continue
		}
		out := *r
		out.Score = 0.5 - 0.01*float32(i)
		out.Provenance = core.ProvenanceKeyword
		merged = append(merged, &out)
		seen[out.Article.Id] = &out
	}

	// Retag ids that appeared in both inputs, regardless of which copy made
	// it into the output.
	keywordIDs := make(map[core.RecordID]bool, len(keyword))
	for _, r := range keyword {
		keywordIDs[r.Article.Id] = true
	}
	for _, r := range vector {
		if !keywordIDs[r.Article.Id] {
			continue
		}
		if out, ok := seen[r.Article.Id]; ok {
			out.Provenance = core.ProvenanceBoth
		}
	}

	return merged
}
