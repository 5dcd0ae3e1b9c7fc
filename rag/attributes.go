package rag

import "github.com/hierseg/hierseg/core"

// AffinityMap is a dense per-edge affinity store. Slot e holds the affinity
// of edge e: the original boundary affinity for an original edge, or the
// policy-maintained combined value for a surviving compound edge.
type AffinityMap struct {
	values []float64
}

// NewAffinityMap creates a store with numEdges zero-valued slots. Graphs
// populate their own map through AddEdge; this constructor exists for
// policies tested in isolation.
func NewAffinityMap(numEdges int) *AffinityMap {
	return &AffinityMap{values: make([]float64, numEdges)}
}

// Len returns the number of slots.
func (m *AffinityMap) Len() int { return len(m.values) }

// Get returns the affinity of edge e.
func (m *AffinityMap) Get(e core.EdgeID) float64 { return m.values[e] }

// Set overwrites the affinity of edge e.
func (m *AffinityMap) Set(e core.EdgeID, affinity float64) { m.values[e] = affinity }

// SizeMap is a dense per-node region size store. Sizes are voxel (or pixel)
// counts from the over-segmentation. Contractions consolidate sizes but
// never create or destroy them: the sum over live nodes is invariant.
type SizeMap struct {
	values []uint64
}

// NewSizeMap creates a store with one zero-valued slot per node.
func NewSizeMap(numNodes int) *SizeMap {
	return &SizeMap{values: make([]uint64, numNodes)}
}

// Len returns the number of slots.
func (m *SizeMap) Len() int { return len(m.values) }

// Get returns the size of node n.
func (m *SizeMap) Get(n core.NodeID) uint64 { return m.values[n] }

// Set overwrites the size of node n.
func (m *SizeMap) Set(n core.NodeID, size uint64) { m.values[n] = size }

// Add accumulates into the size of node n.
func (m *SizeMap) Add(n core.NodeID, size uint64) { m.values[n] += size }

// Total returns the sum over a set of nodes. Summing the live nodes of the
// graph after any number of contractions yields the same value as summing
// all original nodes before the first one.
func (m *SizeMap) Total(nodes []core.NodeID) uint64 {
	var total uint64
	for _, n := range nodes {
		total += m.values[n]
	}
	return total
}
