package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jurispect/statcite/core"
)

// corpusEntry is the on-disk JSON shape of one statute article.
type corpusEntry struct {
	Id           string `json:"id,omitempty"`
	StatuteName  string `json:"statute_name"`
	ArticleLabel string `json:"article_label"`
	Chapter      string `json:"chapter,omitempty"`
	Category     string `json:"category,omitempty"`
	Contents     string `json:"contents"`
}

// ReadCorpus decodes a JSON array of articles from r. Ids, statute codes and
// content hashes are filled in later by the pipeline.
func ReadCorpus(r io.Reader) ([]*core.Article, error) {
	var entries []corpusEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding corpus: %w", err)
	}

	articles := make([]*core.Article, len(entries))
	for i, entry := range entries {
		articles[i] = &core.Article{
			Id:           core.RecordID(entry.Id),
			StatuteName:  entry.StatuteName,
			ArticleLabel: entry.ArticleLabel,
			Chapter:      entry.Chapter,
			Category:     entry.Category,
			Contents:     entry.Contents,
		}
	}
	return articles, nil
}

// LoadCorpus reads a JSON corpus file from disk.
func LoadCorpus(path string) ([]*core.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus file: %w", err)
	}
	defer f.Close()
	return ReadCorpus(f)
}
