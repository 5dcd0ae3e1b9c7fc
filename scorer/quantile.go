package scorer

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hierseg/hierseg/core"
	"github.com/hierseg/hierseg/histogram"
	"github.com/hierseg/hierseg/rag"
)

// QuantileOptions configures a QuantileAffinity policy.
type QuantileOptions struct {
	// Quantile is the target percentile in (0,100]. 50 queries the median.
	Quantile int

	// Bins is the histogram resolution. The quantile is exact when Bins
	// matches the native discretization of the affinities (256 for 8-bit
	// data); coarser bins trade precision for memory.
	Bins int

	// InitWorkers bounds the goroutines used to build the initial
	// per-edge histograms. Zero means GOMAXPROCS.
	InitWorkers int
}

// QuantileAffinity scores an edge by an approximate percentile of the
// affinities of all original edges folded into it. Every edge carries a
// histogram; an original edge starts as a single spike at its own affinity,
// and folds add histograms bin-wise. Because bin-wise addition commutes,
// the histogram of a surviving edge does not depend on the order the merge
// loop folded its originals.
type QuantileAffinity struct {
	aff      *rag.AffinityMap
	hists    []*histogram.Histogram
	quantile uint64
}

// NewQuantileAffinity builds the policy and one spike histogram per
// original edge. Histogram construction is independent per edge and runs on
// InitWorkers goroutines; everything after construction is single-threaded
// per the merge loop's call discipline.
func NewQuantileAffinity(g *rag.Graph, affinities *rag.AffinityMap, _ *rag.SizeMap, optFns ...func(o *QuantileOptions)) (*QuantileAffinity, error) {
	opts := QuantileOptions{
		Quantile: 50,
		Bins:     histogram.DefaultBins,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Quantile <= 0 || opts.Quantile > 100 {
		return nil, fmt.Errorf("quantile %d out of range (0,100]", opts.Quantile)
	}
	if _, err := histogram.New(opts.Bins); err != nil {
		return nil, err
	}

	p := &QuantileAffinity{
		aff:      affinities,
		hists:    make([]*histogram.Histogram, g.NumEdges()),
		quantile: uint64(opts.Quantile),
	}

	workers := opts.InitWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	numEdges := g.NumEdges()
	chunk := (numEdges + workers - 1) / workers
	for lo := 0; lo < numEdges; lo += chunk {
		lo := lo
		hi := min(lo+chunk, numEdges)
		eg.Go(func() error {
			for e := lo; e < hi; e++ {
				h, err := histogram.New(opts.Bins)
				if err != nil {
					return err
				}
				h.Inc(affinities.Get(core.EdgeID(e)))
				p.hists[e] = h
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return p, nil
}

// Score treats the edge's histogram as an empirical distribution of all
// affinities folded into it and returns the value at the configured
// percentile, rescaled to [0,1]. The 1-based pivot rank is
// floor(Q*total/100)+1, clamped to total so that Q=100 returns the highest
// occupied bin.
func (p *QuantileAffinity) Score(e core.EdgeID) float64 {
	h := p.hists[e]
	if h == nil {
		panic(&rag.ErrRetiredEdge{ID: e})
	}
	total := h.Total()
	if total == 0 {
		// Only reachable through caller misuse; fall back to the
		// edge's own affinity.
		return p.aff.Get(e)
	}
	return h.Rank(p.quantile*total/100 + 1)
}

// OnNodeMerge is a no-op: histograms are per-edge state.
func (p *QuantileAffinity) OnNodeMerge(from, to core.NodeID) {}

// OnEdgeMerge folds the absorbed edge's histogram into the survivor's.
// The fold is exact: no information is lost beyond the original binning.
func (p *QuantileAffinity) OnEdgeMerge(from, to core.EdgeID) {
	if err := p.hists[to].Merge(p.hists[from]); err != nil {
		panic(err)
	}
	p.hists[from] = nil
}

// Histogram exposes the current histogram of a live edge, for inspection
// and tests.
func (p *QuantileAffinity) Histogram(e core.EdgeID) *histogram.Histogram {
	return p.hists[e]
}
