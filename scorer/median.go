package scorer

import (
	"github.com/hierseg/hierseg/core"
	"github.com/hierseg/hierseg/internal/selection"
	"github.com/hierseg/hierseg/rag"
)

// MedianAffinity scores an edge by the exact median affinity of the
// original edges beneath it.
//
// Every surviving edge lazily accumulates its affiliated edges: the ids of
// all original-graph edges it has absorbed. An edge with an empty list is
// still original and scores as its own affinity. A compound edge scores as
// the lower median of its affiliated affinities, found by partial ordering
// to the middle element rather than a full sort, so a query costs time
// linear in the affiliated set.
type MedianAffinity struct {
	g          *rag.Graph
	aff        *rag.AffinityMap
	affiliated [][]core.EdgeID
}

// NewMedianAffinity builds the policy with one empty affiliated list per
// original edge.
func NewMedianAffinity(g *rag.Graph, affinities *rag.AffinityMap, _ *rag.SizeMap) *MedianAffinity {
	return &MedianAffinity{
		g:          g,
		aff:        affinities,
		affiliated: make([][]core.EdgeID, g.NumEdges()),
	}
}

// Score returns the edge's own affinity if it is still original, otherwise
// the lower median of its affiliated affinities. A single affiliated edge
// yields that edge's affinity.
func (p *MedianAffinity) Score(e core.EdgeID) float64 {
	if !p.g.IsLiveEdge(e) {
		panic(&rag.ErrRetiredEdge{ID: e})
	}

	edges := p.affiliated[e]
	if len(edges) == 0 {
		return p.aff.Get(e)
	}

	// Lower median for even-sized sets.
	mid := (len(edges) - 1) / 2
	selection.NthElement(edges, mid, func(a, b core.EdgeID) bool {
		return p.aff.Get(a) < p.aff.Get(b)
	})
	return p.aff.Get(edges[mid])
}

// OnNodeMerge is a no-op: affiliated lists are per-edge state.
func (p *MedianAffinity) OnNodeMerge(from, to core.NodeID) {}

// OnEdgeMerge transfers ownership of everything beneath the absorbed edge
// to the survivor. An original edge contributes its own id; a compound edge
// contributes its whole affiliated list. A survivor that was still original
// first claims its own id, so the list holds the full multiset of original
// edges beneath it. The absorbed list is cleared so each original id lives
// in exactly one list at a time.
func (p *MedianAffinity) OnEdgeMerge(from, to core.EdgeID) {
	if len(p.affiliated[to]) == 0 {
		p.affiliated[to] = append(p.affiliated[to], to)
	}
	if len(p.affiliated[from]) == 0 {
		p.affiliated[to] = append(p.affiliated[to], from)
	} else {
		p.affiliated[to] = append(p.affiliated[to], p.affiliated[from]...)
	}
	p.affiliated[from] = nil
}

// Affiliated exposes the affiliated edge ids of an edge, for tests. The
// returned slice is the policy's own working storage.
func (p *MedianAffinity) Affiliated(e core.EdgeID) []core.EdgeID {
	return p.affiliated[e]
}
