package core

// NodeID is a dense identifier for a region in the adjacency graph.
// IDs are issued contiguously at graph construction, starting at 0.
// Used for all hot-path structures (adjacency, attribute stores, bitmaps).
type NodeID uint32

// EdgeID is a dense identifier for an adjacency between two regions.
// IDs are issued contiguously as edges are added, starting at 0.
type EdgeID uint32

// MaxNodeID is the maximum possible value for a NodeID.
const MaxNodeID = ^NodeID(0)

// MaxEdgeID is the maximum possible value for an EdgeID.
const MaxEdgeID = ^EdgeID(0)
