package scorer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hierseg/hierseg/core"
	"github.com/hierseg/hierseg/rag"
)

// starGraph builds a hub-and-spoke graph: node 0 in the middle, one spoke
// edge per affinity. Edge i carries affinities[i] and connects 0 to i+1.
// Spoke edges never become parallel, which lets tests drive OnEdgeMerge
// sequences directly against policy state.
func starGraph(t *testing.T, affinities []float64) *rag.Graph {
	t.Helper()
	g := rag.NewGraph(len(affinities) + 1)
	for i, a := range affinities {
		e, err := g.AddEdge(0, core.NodeID(i+1), a)
		require.NoError(t, err)
		require.Equal(t, core.EdgeID(i), e)
	}
	return g
}
