// Package rag implements the region adjacency graph that hierarchical
// agglomeration operates on.
//
// A Graph starts from an over-segmentation: every region is a node, every
// boundary between two regions is an edge carrying an affinity in [0,1].
// Contracting an edge merges its two endpoint regions. Nodes and edges that
// are absorbed by a contraction are retired; any access to a retired id is
// reported as an error rather than answered with stale data.
package rag

import (
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hierseg/hierseg/core"
)

// ErrRetiredNode is returned when a node id that was absorbed by an earlier
// contraction is used.
type ErrRetiredNode struct {
	ID core.NodeID
}

func (e *ErrRetiredNode) Error() string {
	return fmt.Sprintf("node %d is retired", e.ID)
}

// ErrRetiredEdge is returned when an edge id that was absorbed by an earlier
// contraction is used.
type ErrRetiredEdge struct {
	ID core.EdgeID
}

func (e *ErrRetiredEdge) Error() string {
	return fmt.Sprintf("edge %d is retired", e.ID)
}

// ErrAffinityOutOfRange is returned by AddEdge for affinities outside [0,1].
type ErrAffinityOutOfRange struct {
	Affinity float64
}

func (e *ErrAffinityOutOfRange) Error() string {
	return fmt.Sprintf("affinity %g out of range [0,1]", e.Affinity)
}

// Edge holds the current endpoints of an adjacency.
type Edge struct {
	U core.NodeID
	V core.NodeID
}

// EdgeMerge records that edge From was folded into edge To because a node
// contraction made them parallel.
type EdgeMerge struct {
	From core.EdgeID
	To   core.EdgeID
}

// Merge is the result of a single edge contraction: node From was absorbed
// into node To, retiring the contracted edge and folding every adjacency that
// became parallel. EdgeMerges is ordered and deterministic for a given graph
// state.
type Merge struct {
	Edge       core.EdgeID
	From       core.NodeID
	To         core.NodeID
	EdgeMerges []EdgeMerge
}

// Graph is a mutable region adjacency graph.
//
// All ids are dense: nodes are 0..NumNodes()-1, edges are issued by AddEdge
// starting at 0. Ids stay valid for the lifetime of the graph but become
// retired when the node or edge is absorbed by a contraction.
//
// Graph is not safe for concurrent use.
type Graph struct {
	edges     []Edge
	adjacency []map[core.NodeID]core.EdgeID
	affinity  *AffinityMap

	liveNodes *roaring.Bitmap
	liveEdges *roaring.Bitmap

	// parent implements union-find over nodes: parent[n] == n for a live
	// root, otherwise the node it was absorbed into (possibly indirectly).
	parent []core.NodeID
}

// NewGraph creates a graph over numNodes initial regions and no edges.
func NewGraph(numNodes int) *Graph {
	g := &Graph{
		adjacency: make([]map[core.NodeID]core.EdgeID, numNodes),
		affinity:  &AffinityMap{},
		liveNodes: roaring.New(),
		liveEdges: roaring.New(),
		parent:    make([]core.NodeID, numNodes),
	}
	if numNodes > 0 {
		g.liveNodes.AddRange(0, uint64(numNodes))
	}
	for i := range g.parent {
		g.parent[i] = core.NodeID(i)
	}
	return g
}

// NumNodes returns the number of original regions.
func (g *Graph) NumNodes() int { return len(g.parent) }

// NumEdges returns the number of edges ever added, including retired ones.
func (g *Graph) NumEdges() int { return len(g.edges) }

// NumLiveNodes returns the number of regions that have not been absorbed.
func (g *Graph) NumLiveNodes() int { return int(g.liveNodes.GetCardinality()) }

// NumLiveEdges returns the number of adjacencies that have not been retired.
func (g *Graph) NumLiveEdges() int { return int(g.liveEdges.GetCardinality()) }

// IsLiveNode reports whether n is a live (non-retired) node.
func (g *Graph) IsLiveNode(n core.NodeID) bool {
	return int(n) < len(g.parent) && g.liveNodes.Contains(uint32(n))
}

// IsLiveEdge reports whether e is a live (non-retired) edge.
func (g *Graph) IsLiveEdge(e core.EdgeID) bool {
	return int(e) < len(g.edges) && g.liveEdges.Contains(uint32(e))
}

// Affinities returns the per-edge affinity store. Slots are created by
// AddEdge; policies may rewrite entries of surviving edges as they fold.
func (g *Graph) Affinities() *AffinityMap { return g.affinity }

// AddEdge adds an adjacency between live nodes u and v with the given
// affinity and returns its id. Affinities outside [0,1] are rejected so that
// downstream histogram binning cannot index out of range.
func (g *Graph) AddEdge(u, v core.NodeID, affinity float64) (core.EdgeID, error) {
	if !g.IsLiveNode(u) {
		return 0, &ErrRetiredNode{ID: u}
	}
	if !g.IsLiveNode(v) {
		return 0, &ErrRetiredNode{ID: v}
	}
	if u == v {
		return 0, fmt.Errorf("self adjacency on node %d", u)
	}
	if affinity < 0 || affinity > 1 {
		return 0, &ErrAffinityOutOfRange{Affinity: affinity}
	}
	if _, ok := g.adjacency[u][v]; ok {
		return 0, fmt.Errorf("nodes %d and %d are already adjacent", u, v)
	}

	e := core.EdgeID(len(g.edges))
	g.edges = append(g.edges, Edge{U: u, V: v})
	g.affinity.values = append(g.affinity.values, affinity)
	if g.adjacency[u] == nil {
		g.adjacency[u] = make(map[core.NodeID]core.EdgeID)
	}
	if g.adjacency[v] == nil {
		g.adjacency[v] = make(map[core.NodeID]core.EdgeID)
	}
	g.adjacency[u][v] = e
	g.adjacency[v][u] = e
	g.liveEdges.Add(uint32(e))

	return e, nil
}

// Endpoints returns the current endpoints of a live edge. Endpoints change
// over time: surviving edges are re-attached to the surviving node of each
// contraction.
func (g *Graph) Endpoints(e core.EdgeID) (core.NodeID, core.NodeID, error) {
	if !g.IsLiveEdge(e) {
		return 0, 0, &ErrRetiredEdge{ID: e}
	}
	return g.edges[e].U, g.edges[e].V, nil
}

// EdgeBetween returns the live edge connecting u and v, if any.
func (g *Graph) EdgeBetween(u, v core.NodeID) (core.EdgeID, bool) {
	if !g.IsLiveNode(u) || !g.IsLiveNode(v) {
		return 0, false
	}
	e, ok := g.adjacency[u][v]
	return e, ok
}

// Degree returns the number of live adjacencies of a live node.
func (g *Graph) Degree(n core.NodeID) (int, error) {
	if !g.IsLiveNode(n) {
		return 0, &ErrRetiredNode{ID: n}
	}
	return len(g.adjacency[n]), nil
}

// LiveEdges calls fn for every live edge in ascending id order.
func (g *Graph) LiveEdges(fn func(core.EdgeID) bool) {
	it := g.liveEdges.Iterator()
	for it.HasNext() {
		if !fn(core.EdgeID(it.Next())) {
			return
		}
	}
}

// IncidentEdges calls fn for every live edge incident to live node n, in
// no particular order.
func (g *Graph) IncidentEdges(n core.NodeID, fn func(core.EdgeID) bool) error {
	if !g.IsLiveNode(n) {
		return &ErrRetiredNode{ID: n}
	}
	for _, e := range g.adjacency[n] {
		if !fn(e) {
			return nil
		}
	}
	return nil
}

// LiveNodes returns the ids of all live nodes in ascending order.
func (g *Graph) LiveNodes() []core.NodeID {
	nodes := make([]core.NodeID, 0, g.liveNodes.GetCardinality())
	it := g.liveNodes.Iterator()
	for it.HasNext() {
		nodes = append(nodes, core.NodeID(it.Next()))
	}
	return nodes
}

// Contract merges the endpoints of live edge e into a single region.
//
// The surviving endpoint is the one with the higher live degree (lower id on
// a tie), which bounds the number of adjacencies that must be re-attached.
// The contracted edge is retired, and every adjacency of the absorbed node
// is either re-attached to the survivor or, if the survivor already had an
// edge to the same neighbor, folded into that edge and retired. The returned
// Merge lists the node merge and each induced edge merge; callers must
// deliver the node merge to score policies before the edge merges.
func (g *Graph) Contract(e core.EdgeID) (Merge, error) {
	if !g.IsLiveEdge(e) {
		return Merge{}, &ErrRetiredEdge{ID: e}
	}

	u, v := g.edges[e].U, g.edges[e].V
	to, from := u, v
	if len(g.adjacency[v]) > len(g.adjacency[u]) ||
		(len(g.adjacency[v]) == len(g.adjacency[u]) && v < u) {
		to, from = v, u
	}

	g.liveEdges.Remove(uint32(e))
	delete(g.adjacency[to], from)
	delete(g.adjacency[from], to)

	m := Merge{Edge: e, From: from, To: to}
	for w, fe := range g.adjacency[from] {
		delete(g.adjacency[w], from)
		if te, ok := g.adjacency[to][w]; ok {
			// to and from shared the neighbor w: the two edges
			// become parallel and fold into the survivor.
			g.liveEdges.Remove(uint32(fe))
			m.EdgeMerges = append(m.EdgeMerges, EdgeMerge{From: fe, To: te})
		} else {
			g.adjacency[to][w] = fe
			g.adjacency[w][to] = fe
			if g.edges[fe].U == from {
				g.edges[fe].U = to
			} else {
				g.edges[fe].V = to
			}
		}
	}
	// Adjacency iteration order is not deterministic; merge reports are.
	slices.SortFunc(m.EdgeMerges, func(a, b EdgeMerge) int {
		return int(a.From) - int(b.From)
	})

	g.adjacency[from] = nil
	g.liveNodes.Remove(uint32(from))
	g.parent[from] = to

	return m, nil
}

// Root returns the live region that original node n now belongs to,
// compressing the union-find path as it goes.
func (g *Graph) Root(n core.NodeID) core.NodeID {
	root := n
	for g.parent[root] != root {
		root = g.parent[root]
	}
	for g.parent[n] != root {
		g.parent[n], n = root, g.parent[n]
	}
	return root
}

// Labels returns, for every original node, the live region it belongs to.
// The labeling depends only on the set of contractions performed, not on
// their order.
func (g *Graph) Labels() []core.NodeID {
	labels := make([]core.NodeID, len(g.parent))
	for i := range labels {
		labels[i] = g.Root(core.NodeID(i))
	}
	return labels
}
