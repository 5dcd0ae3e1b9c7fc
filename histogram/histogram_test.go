package histogram

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hierseg/hierseg/testutil"
)

func TestNewRejectsTooFewBins(t *testing.T) {
	for _, bins := range []int{-1, 0, 1} {
		_, err := New(bins)
		require.Error(t, err, "bins=%d", bins)
	}
}

func TestSpike(t *testing.T) {
	h, err := New(256)
	require.NoError(t, err)

	h.Inc(0.5)

	require.Equal(t, uint64(1), h.Total())
	require.Equal(t, uint64(1), h.Count(127)) // 0.5*255 = 127.5, truncated
	require.InDelta(t, 127.0/255.0, h.Rank(1), 1e-12)
}

func TestBinBoundaries(t *testing.T) {
	h, err := New(256)
	require.NoError(t, err)

	require.Equal(t, 0, h.BinOf(0))
	require.Equal(t, 255, h.BinOf(1))
	require.Equal(t, 0.0, h.Value(0))
	require.Equal(t, 1.0, h.Value(255))
}

func TestMergePreservesTotal(t *testing.T) {
	a, _ := New(16)
	b, _ := New(16)
	a.Inc(0.1)
	a.Inc(0.9)
	b.Inc(0.5)

	require.NoError(t, a.Merge(b))
	require.Equal(t, uint64(3), a.Total())
	// b is unchanged by the merge.
	require.Equal(t, uint64(1), b.Total())
}

func TestMergeBinMismatch(t *testing.T) {
	a, _ := New(16)
	b, _ := New(32)
	require.Error(t, a.Merge(b))
}

func TestRankBoundaries(t *testing.T) {
	h, _ := New(256)
	require.Equal(t, 0.0, h.Rank(1), "empty histogram")

	h.Inc(0.25)
	h.Inc(0.75)

	// Pivot beyond the total clamps to the highest occupied bin.
	require.InDelta(t, h.Value(h.BinOf(0.75)), h.Rank(100), 1e-12)
}

// Merging a fixed set of spikes in two different random orders must produce
// bit-identical histograms: bin-wise addition is commutative and
// associative.
func TestMergeOrderIndependence(t *testing.T) {
	rng := testutil.NewRNG(42)
	affinities := rng.Affinities(100)

	build := func(order []int) *Histogram {
		acc, err := New(256)
		require.NoError(t, err)
		for _, i := range order {
			spike, err := New(256)
			require.NoError(t, err)
			spike.Inc(affinities[i])
			require.NoError(t, acc.Merge(spike))
		}
		return acc
	}

	first := build(rng.Perm(len(affinities)))
	second := build(rng.Perm(len(affinities)))

	require.True(t, first.Equal(second))
	require.Equal(t, uint64(len(affinities)), first.Total())
	for pivot := uint64(1); pivot <= first.Total(); pivot += 7 {
		require.Equal(t, first.Rank(pivot), second.Rank(pivot))
	}
}
