package scorer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStochasticDraws(t *testing.T) {
	g := starGraph(t, []float64{0.5})
	p := NewStochastic(g, g.Affinities(), nil, 1)

	const draws = 10000
	var sum float64
	distinct := map[float64]bool{}
	for i := 0; i < draws; i++ {
		s := p.Score(0)
		require.GreaterOrEqual(t, s, 0.0)
		require.Less(t, s, 1.0)
		sum += s
		distinct[s] = true
	}

	// Uniform draws: mean near 0.5, and far from constant across calls.
	require.InDelta(t, 0.5, sum/draws, 0.02)
	require.Greater(t, len(distinct), draws/2)
}

func TestStochasticReproducible(t *testing.T) {
	g := starGraph(t, []float64{0.5})
	a := NewStochastic(g, g.Affinities(), nil, 99)
	b := NewStochastic(g, g.Affinities(), nil, 99)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Score(0), b.Score(0))
	}
}

func TestConstant(t *testing.T) {
	g := starGraph(t, []float64{0.5, 0.9})
	p := NewConstant(g, g.Affinities(), nil, 0.25)

	require.Equal(t, 0.25, p.Score(0))
	require.Equal(t, 0.25, p.Score(1))

	// Merges do not change anything.
	p.OnNodeMerge(1, 0)
	p.OnEdgeMerge(1, 0)
	require.Equal(t, 0.25, p.Score(0))
}

func TestOneMinus(t *testing.T) {
	g := starGraph(t, []float64{0.2, 0.8})
	p := OneMinus(NewMaxAffinity(g, g.Affinities(), nil))

	require.InDelta(t, 0.8, p.Score(0), 1e-12)
	require.InDelta(t, 0.2, p.Score(1), 1e-12)

	// Notifications pass through to the wrapped policy.
	p.OnEdgeMerge(1, 0)
	require.InDelta(t, 0.2, p.Score(0), 1e-12)
}
