package scorer

import (
	"math/rand"

	"github.com/hierseg/hierseg/core"
	"github.com/hierseg/hierseg/rag"
)

// Stochastic scores every query with a fresh uniform draw in [0,1),
// independent of any graph state. It is an ablation baseline for
// merge-order experiments. Each instance owns its generator, so runs are
// reproducible for a fixed seed.
type Stochastic struct {
	rng *rand.Rand
}

// NewStochastic creates a stochastic baseline policy with the given seed.
func NewStochastic(_ *rag.Graph, _ *rag.AffinityMap, _ *rag.SizeMap, seed int64) *Stochastic {
	return &Stochastic{rng: rand.New(rand.NewSource(seed))} //nolint:gosec
}

// Score returns a fresh uniform draw in [0,1). Intentionally not a pure
// function of edge state: repeated calls on the same edge differ.
func (p *Stochastic) Score(core.EdgeID) float64 { return p.rng.Float64() }

// OnNodeMerge is a no-op.
func (p *Stochastic) OnNodeMerge(from, to core.NodeID) {}

// OnEdgeMerge is a no-op.
func (p *Stochastic) OnEdgeMerge(from, to core.EdgeID) {}

// Constant scores every edge with one configured value, regardless of any
// merges. Baseline for merge-order experiments.
type Constant struct {
	value float64
}

// NewConstant creates a constant baseline policy.
func NewConstant(_ *rag.Graph, _ *rag.AffinityMap, _ *rag.SizeMap, value float64) *Constant {
	return &Constant{value: value}
}

// Score returns the configured value.
func (p *Constant) Score(core.EdgeID) float64 { return p.value }

// OnNodeMerge is a no-op.
func (p *Constant) OnNodeMerge(from, to core.NodeID) {}

// OnEdgeMerge is a no-op.
func (p *Constant) OnEdgeMerge(from, to core.EdgeID) {}
