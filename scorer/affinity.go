package scorer

import (
	"github.com/hierseg/hierseg/core"
	"github.com/hierseg/hierseg/rag"
)

// AffinityPolicy scores an edge by its own affinity. When two edges fold,
// the survivor keeps the minimum (NewMinAffinity) or maximum
// (NewMaxAffinity) of the two values: an exact, O(1) combination of the
// original weights.
type AffinityPolicy struct {
	g   *rag.Graph
	aff *rag.AffinityMap
	max bool
}

// NewMinAffinity scores edges by affinity, combining folds by minimum.
func NewMinAffinity(g *rag.Graph, affinities *rag.AffinityMap, _ *rag.SizeMap) *AffinityPolicy {
	return &AffinityPolicy{g: g, aff: affinities}
}

// NewMaxAffinity scores edges by affinity, combining folds by maximum.
func NewMaxAffinity(g *rag.Graph, affinities *rag.AffinityMap, _ *rag.SizeMap) *AffinityPolicy {
	return &AffinityPolicy{g: g, aff: affinities, max: true}
}

// Score returns the current affinity of a live edge.
func (p *AffinityPolicy) Score(e core.EdgeID) float64 {
	if !p.g.IsLiveEdge(e) {
		panic(&rag.ErrRetiredEdge{ID: e})
	}
	return p.aff.Get(e)
}

// OnNodeMerge is a no-op: affinity scores carry no per-node state.
func (p *AffinityPolicy) OnNodeMerge(from, to core.NodeID) {}

// OnEdgeMerge keeps the extremum of the two folded affinities.
func (p *AffinityPolicy) OnEdgeMerge(from, to core.EdgeID) {
	af, at := p.aff.Get(from), p.aff.Get(to)
	if (af < at) != p.max {
		p.aff.Set(to, af)
	}
}
