package search

import "github.com/jurispect/statcite/core"

// SearchMonitor provides hooks to observe the resolution cascade.
// Implement this interface to track which strategies ran and what each
// retrieval leg returned. All callbacks run on the calling goroutine.
type SearchMonitor interface {
	Start(query string)
	CitationParsed(cite core.Citation)
	DirectHit(id core.RecordID)
	AfterRegexScan(ids []core.RecordID)
	AfterKeywordSearch(ids []core.RecordID)
	AfterVectorSearch(ids []core.RecordID)
	VectorDegraded(err error)
	Finish(strategy core.StrategyTag, results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                      {}
func (n *noopMonitor) CitationParsed(_ core.Citation)                      {}
func (n *noopMonitor) DirectHit(_ core.RecordID)                           {}
func (n *noopMonitor) AfterRegexScan(_ []core.RecordID)                    {}
func (n *noopMonitor) AfterKeywordSearch(_ []core.RecordID)                {}
func (n *noopMonitor) AfterVectorSearch(_ []core.RecordID)                 {}
func (n *noopMonitor) VectorDegraded(_ error)                              {}
func (n *noopMonitor) Finish(_ core.StrategyTag, _ []*core.SearchResult)   {}
