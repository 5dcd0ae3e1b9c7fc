package hierseg

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hierseg/hierseg/core"
	"github.com/hierseg/hierseg/rag"
	"github.com/hierseg/hierseg/scorer"
)

// pathGraph builds 0-1-2-...-n with the given edge affinities.
func pathGraph(t *testing.T, affinities []float64) *rag.Graph {
	t.Helper()
	g := rag.NewGraph(len(affinities) + 1)
	for i, a := range affinities {
		_, err := g.AddEdge(core.NodeID(i), core.NodeID(i+1), a)
		require.NoError(t, err)
	}
	return g
}

func TestNewValidation(t *testing.T) {
	g := rag.NewGraph(2)
	p := scorer.NewConstant(g, g.Affinities(), nil, 0.5)

	_, err := New(nil, p)
	require.ErrorIs(t, err, ErrNilGraph)

	_, err = New(g, nil)
	require.ErrorIs(t, err, ErrNilPolicy)
}

func TestRunMergesStrongestBoundariesFirst(t *testing.T) {
	g := pathGraph(t, []float64{0.9, 0.2, 0.8})
	policy := scorer.OneMinus(scorer.NewMaxAffinity(g, g.Affinities(), nil))

	a, err := New(g, policy, WithThreshold(0.5))
	require.NoError(t, err)

	merges, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, merges)

	history := a.History()
	require.Len(t, history, 2)
	require.Equal(t, core.EdgeID(0), history[0].Edge)
	require.InDelta(t, 0.1, history[0].Score, 1e-12)
	require.Equal(t, core.EdgeID(2), history[1].Edge)
	require.InDelta(t, 0.2, history[1].Score, 1e-12)

	labels := a.Labels()
	require.Equal(t, labels[0], labels[1])
	require.Equal(t, labels[2], labels[3])
	require.NotEqual(t, labels[1], labels[2])
}

func TestRunToSingleRegion(t *testing.T) {
	g := pathGraph(t, []float64{0.9, 0.2, 0.8, 0.5})
	policy := scorer.OneMinus(scorer.NewMaxAffinity(g, g.Affinities(), nil))

	a, err := New(g, policy)
	require.NoError(t, err)

	merges, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, merges)
	require.Equal(t, 1, g.NumLiveNodes())
	require.Equal(t, 0, g.NumLiveEdges())

	labels := a.Labels()
	for _, l := range labels {
		require.Equal(t, labels[0], l)
	}
}

func TestRunMinRegions(t *testing.T) {
	g := pathGraph(t, []float64{0.9, 0.2, 0.8, 0.5})
	policy := scorer.OneMinus(scorer.NewMaxAffinity(g, g.Affinities(), nil))

	a, err := New(g, policy, WithMinRegions(3))
	require.NoError(t, err)

	merges, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, merges)
	require.Equal(t, 3, g.NumLiveNodes())
}

// With the min-size policy region sizes only grow, so every contraction
// must score at least as high as the one before it; stale frontier entries
// have to be rescored, not merged.
func TestRunSizePolicyRescoresStaleEntries(t *testing.T) {
	g := rag.NewGraph(5)
	sizes := rag.NewSizeMap(5)
	for i, s := range []uint64{1, 2, 50, 9, 3} {
		sizes.Set(core.NodeID(i), s)
	}
	// A ring plus one chord.
	for _, edge := range [][2]core.NodeID{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}, {1, 4}} {
		_, err := g.AddEdge(edge[0], edge[1], 0.5)
		require.NoError(t, err)
	}

	total := sizes.Total(g.LiveNodes())
	a, err := New(g, scorer.NewMinSize(g, g.Affinities(), sizes))
	require.NoError(t, err)

	merges, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, merges)

	history := a.History()
	for i := 1; i < len(history); i++ {
		require.GreaterOrEqual(t, history[i].Score, history[i-1].Score)
	}

	require.Equal(t, total, sizes.Total(g.LiveNodes()))
}

func TestRunQuantileEndToEnd(t *testing.T) {
	g := rag.NewGraph(4)
	sizes := rag.NewSizeMap(4)
	for i := 0; i < 4; i++ {
		sizes.Set(core.NodeID(i), 1)
	}
	// A square with one strong diagonal pair of boundaries.
	for _, edge := range []struct {
		u, v core.NodeID
		aff  float64
	}{
		{0, 1, 0.95},
		{1, 2, 0.1},
		{2, 3, 0.9},
		{3, 0, 0.15},
	} {
		_, err := g.AddEdge(edge.u, edge.v, edge.aff)
		require.NoError(t, err)
	}

	policy, err := scorer.NewQuantileAffinity(g, g.Affinities(), sizes)
	require.NoError(t, err)

	a, err := New(g, scorer.OneMinus(policy), WithThreshold(0.5))
	require.NoError(t, err)

	merges, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, merges)

	labels := a.Labels()
	require.Equal(t, labels[0], labels[1])
	require.Equal(t, labels[2], labels[3])
	require.NotEqual(t, labels[0], labels[2])
}

func TestRunStochasticMergesEverything(t *testing.T) {
	g := pathGraph(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5})
	policy := scorer.NewStochastic(g, g.Affinities(), nil, 1234)

	a, err := New(g, policy)
	require.NoError(t, err)

	merges, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, merges)
	require.Equal(t, 1, g.NumLiveNodes())
}

func TestRunCancelled(t *testing.T) {
	g := pathGraph(t, []float64{0.5, 0.5})
	policy := scorer.NewConstant(g, g.Affinities(), nil, 0.1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, err := New(g, policy)
	require.NoError(t, err)

	_, err = a.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunTwiceFails(t *testing.T) {
	g := pathGraph(t, []float64{0.5})
	policy := scorer.NewConstant(g, g.Affinities(), nil, 0.1)

	a, err := New(g, policy)
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	require.NoError(t, err)

	_, err = a.Run(context.Background())
	require.ErrorIs(t, err, ErrAlreadyRun)
}

func TestSnapshotMirrorsResult(t *testing.T) {
	g := pathGraph(t, []float64{0.9, 0.2})
	policy := scorer.OneMinus(scorer.NewMaxAffinity(g, g.Affinities(), nil))

	a, err := New(g, policy, WithThreshold(0.5))
	require.NoError(t, err)
	_, err = a.Run(context.Background())
	require.NoError(t, err)

	snap := a.Snapshot()
	labels := a.Labels()
	require.Len(t, snap.Labels, len(labels))
	for i, l := range labels {
		require.Equal(t, uint32(l), snap.Labels[i])
	}

	history := a.History()
	require.Len(t, snap.Merges, len(history))
	for i, m := range history {
		require.Equal(t, uint32(m.Edge), snap.Merges[i].Edge)
		require.Equal(t, m.Score, snap.Merges[i].Score)
	}
}
