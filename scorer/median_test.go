package scorer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hierseg/hierseg/core"
	"github.com/hierseg/hierseg/testutil"
)

func TestMedianOriginalEdgeScoresOwnAffinity(t *testing.T) {
	g := starGraph(t, []float64{0.3, 0.6})
	p := NewMedianAffinity(g, g.Affinities(), nil)

	require.Empty(t, p.Affiliated(0))
	require.Equal(t, 0.3, p.Score(0))
	require.Equal(t, 0.6, p.Score(1))
}

// The affiliated multiset {0.1, 0.2, 0.3, 0.4} scores its lower median 0.2.
func TestMedianLowerMedianEvenSet(t *testing.T) {
	g := starGraph(t, []float64{0.1, 0.2, 0.3, 0.4})
	p := NewMedianAffinity(g, g.Affinities(), nil)

	for e := core.EdgeID(1); e <= 3; e++ {
		p.OnEdgeMerge(e, 0)
	}

	require.Len(t, p.Affiliated(0), 4)
	require.Equal(t, 0.2, p.Score(0))
}

func TestMedianTwoEdges(t *testing.T) {
	g := starGraph(t, []float64{0.9, 0.4})
	p := NewMedianAffinity(g, g.Affinities(), nil)

	p.OnEdgeMerge(1, 0)
	require.Equal(t, 0.4, p.Score(0))
}

// Merging originals 0.2, 0.5, 0.9 into one edge yields median 0.5 under
// every pairing order.
func TestMedianOrderIndependence(t *testing.T) {
	type fold struct{ from, to core.EdgeID }
	tests := []struct {
		name  string
		folds []fold
	}{
		{name: "both into first", folds: []fold{{1, 0}, {2, 0}}},
		{name: "chain through second", folds: []fold{{2, 1}, {1, 0}}},
		{name: "chain through third", folds: []fold{{1, 2}, {2, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := starGraph(t, []float64{0.2, 0.5, 0.9})
			p := NewMedianAffinity(g, g.Affinities(), nil)
			for _, f := range tt.folds {
				p.OnEdgeMerge(f.from, f.to)
			}
			require.Equal(t, 0.5, p.Score(0))
		})
	}
}

// Ownership of affiliated ids transfers on a fold; nothing is duplicated.
func TestMedianOwnershipTransfer(t *testing.T) {
	g := starGraph(t, []float64{0.2, 0.5, 0.9})
	p := NewMedianAffinity(g, g.Affinities(), nil)

	p.OnEdgeMerge(2, 1)
	require.ElementsMatch(t, []core.EdgeID{1, 2}, p.Affiliated(1))
	require.Empty(t, p.Affiliated(2))

	p.OnEdgeMerge(1, 0)
	require.ElementsMatch(t, []core.EdgeID{0, 1, 2}, p.Affiliated(0))
	require.Empty(t, p.Affiliated(1))
}

func TestMedianMatchesFullSort(t *testing.T) {
	rng := testutil.NewRNG(23)
	affinities := rng.Affinities(31)
	g := starGraph(t, affinities)
	p := NewMedianAffinity(g, g.Affinities(), nil)

	for e := 1; e < len(affinities); e++ {
		p.OnEdgeMerge(core.EdgeID(e), 0)
	}

	sorted := append([]float64(nil), affinities...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j] < sorted[i] {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	require.Equal(t, sorted[(len(sorted)-1)/2], p.Score(0))
}

func TestMedianScoreRetiredEdgePanics(t *testing.T) {
	g := starGraph(t, []float64{0.5, 0.6})
	p := NewMedianAffinity(g, g.Affinities(), nil)

	e, ok := g.EdgeBetween(0, 1)
	require.True(t, ok)
	_, err := g.Contract(e)
	require.NoError(t, err)

	require.Panics(t, func() { p.Score(e) })
}
