package search

import "github.com/poiesic/recallit/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during
// a search. Callbacks are invoked synchronously with respect to each
// other; TurnScored may be called from pool workers but never
// concurrently.
type SearchMonitor interface {
	Start(query string)
	AfterParse(parsed *core.ParsedQuery)
	AfterCandidateRetrieval(ids []core.ID)
	TurnScored(turn *core.ConversationTurn, relevance core.RelevanceResult)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                              {}
func (n *noopMonitor) AfterParse(_ *core.ParsedQuery)                              {}
func (n *noopMonitor) AfterCandidateRetrieval(_ []core.ID)                         {}
func (n *noopMonitor) TurnScored(_ *core.ConversationTurn, _ core.RelevanceResult) {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)                               {}
