package badger

import (
	"strings"

	"github.com/jurispect/statcite/core"
)

// Key prefixes for different data types. Article keys embed the RecordID,
// which itself starts with the statute code, so a prefix scan over
// "artrec:<code>-" visits exactly one statute's articles.
const (
	articleRecordPrefix = "artrec"
	checkpointPrefix    = "chkpt"
)

// makeArticleKey generates a key for an article record by id.
func makeArticleKey(id core.RecordID) []byte {
	return []byte(articleRecordPrefix + ":" + string(id))
}

// makeArticleScanPrefix generates the prefix covering all article records.
func makeArticleScanPrefix() []byte {
	return []byte(articleRecordPrefix + ":")
}

// makeStatuteScanPrefix generates the prefix covering one statute's articles.
func makeStatuteScanPrefix(statuteCode string) []byte {
	return []byte(articleRecordPrefix + ":" + statuteCode + "-")
}

// articleIDFromKey recovers the RecordID from an article key.
func articleIDFromKey(key []byte) core.RecordID {
	s := string(key)
	if rest, ok := strings.CutPrefix(s, articleRecordPrefix+":"); ok {
		return core.RecordID(rest)
	}
	return core.RecordID(s)
}

// makeCheckpointKey generates a key for a named checkpoint.
func makeCheckpointKey(name string) []byte {
	return []byte(checkpointPrefix + ":" + name)
}
