package scorer

import (
	"github.com/hierseg/hierseg/core"
	"github.com/hierseg/hierseg/rag"
)

// SizePolicy scores an edge by the size of its endpoint regions: the
// minimum for NewMinSize, the maximum for NewMaxSize. Merging small regions
// first bounds growth imbalance without any per-edge bookkeeping; scores
// are recomputed from the size map on every query.
type SizePolicy struct {
	g     *rag.Graph
	sizes *rag.SizeMap
	max   bool
}

// NewMinSize scores edges by the smaller endpoint region size.
func NewMinSize(g *rag.Graph, _ *rag.AffinityMap, sizes *rag.SizeMap) *SizePolicy {
	return &SizePolicy{g: g, sizes: sizes}
}

// NewMaxSize scores edges by the larger endpoint region size.
func NewMaxSize(g *rag.Graph, _ *rag.AffinityMap, sizes *rag.SizeMap) *SizePolicy {
	return &SizePolicy{g: g, sizes: sizes, max: true}
}

// Score returns the min (or max) endpoint size of a live edge.
func (p *SizePolicy) Score(e core.EdgeID) float64 {
	u, v, err := p.g.Endpoints(e)
	if err != nil {
		panic(err)
	}
	su, sv := p.sizes.Get(u), p.sizes.Get(v)
	if (su < sv) != p.max {
		return float64(su)
	}
	return float64(sv)
}

// OnNodeMerge consolidates the absorbed region's size into the survivor.
// Sizes are conserved: nothing is created or destroyed by a merge.
func (p *SizePolicy) OnNodeMerge(from, to core.NodeID) {
	p.sizes.Add(to, p.sizes.Get(from))
}

// OnEdgeMerge is a no-op: size scores carry no per-edge state.
func (p *SizePolicy) OnEdgeMerge(from, to core.EdgeID) {}
