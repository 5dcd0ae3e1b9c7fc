// Package scorer implements the edge-scoring policies that drive
// hierarchical agglomeration.
//
// A Policy assigns every live edge a merge priority: the lower the score,
// the earlier the merge loop contracts the edge. Policies keep derived state
// (accumulated region sizes, affinity histograms, affiliated edge lists)
// incrementally up to date through the two merge notifications instead of
// recomputing from the graph.
//
// All policies follow one call discipline, guaranteed by the merge loop:
// calls arrive from a single goroutine, a node merge is delivered exactly
// once and before the edge merges it induces, and a retired id is never
// scored or notified again. Scoring a retired edge panics rather than
// answering from stale state.
package scorer

import "github.com/hierseg/hierseg/core"

// Policy is the contract between the merge loop and a scoring strategy.
type Policy interface {
	// Score returns the merge priority of a live edge. Lower scores merge
	// earlier. Score panics if e is retired.
	Score(e core.EdgeID) float64

	// OnNodeMerge is called exactly once after the graph has absorbed
	// node from into node to.
	OnNodeMerge(from, to core.NodeID)

	// OnEdgeMerge is called exactly once for every pair of edges that a
	// node merge made parallel, after edge from was folded into edge to.
	OnEdgeMerge(from, to core.EdgeID)
}

// OneMinus inverts a policy: score 1 - p.Score(e). Affinity-valued policies
// score high-affinity boundaries high, but the merge loop contracts low
// scores first; wrapping them in OneMinus makes strong boundaries merge
// first. Notifications pass through unchanged.
func OneMinus(p Policy) Policy {
	return &oneMinus{inner: p}
}

type oneMinus struct {
	inner Policy
}

func (o *oneMinus) Score(e core.EdgeID) float64      { return 1 - o.inner.Score(e) }
func (o *oneMinus) OnNodeMerge(from, to core.NodeID) { o.inner.OnNodeMerge(from, to) }
func (o *oneMinus) OnEdgeMerge(from, to core.EdgeID) { o.inner.OnEdgeMerge(from, to) }
