package hierseg

import (
	"container/heap"
	"context"

	"github.com/hierseg/hierseg/core"
	"github.com/hierseg/hierseg/persistence"
	"github.com/hierseg/hierseg/queue"
	"github.com/hierseg/hierseg/rag"
	"github.com/hierseg/hierseg/scorer"
)

// MergeRecord describes one contraction performed by the merge loop.
type MergeRecord struct {
	Edge  core.EdgeID // Edge that was contracted.
	From  core.NodeID // Region absorbed by the contraction.
	To    core.NodeID // Surviving region.
	Score float64     // Score the edge merged at.
}

// Agglomerator drives greedy agglomeration: it repeatedly contracts the
// live edge with the lowest score under the configured policy, keeping the
// policy's state in sync through the merge notifications, until a stopping
// criterion is met.
//
// An Agglomerator is single-use and mutates the graph it was built over.
// All operations run on the calling goroutine.
type Agglomerator struct {
	g      *rag.Graph
	policy scorer.Policy
	opts   options

	history []MergeRecord
	ran     bool
}

// New creates an Agglomerator over a graph and a score policy. The policy
// must have been constructed over the same graph.
func New(g *rag.Graph, policy scorer.Policy, optFns ...Option) (*Agglomerator, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if policy == nil {
		return nil, ErrNilPolicy
	}

	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Agglomerator{g: g, policy: policy, opts: opts}, nil
}

// Run performs the merge loop and returns the number of contractions.
//
// Edges are kept in a frontier ordered by (score, edge id), so equal scores
// merge lowest-id first and runs are reproducible for deterministic
// policies. A popped edge whose neighborhood changed since it was scored is
// rescored and re-queued instead of merged, so every contraction uses a
// score that reflects the current graph.
//
// The loop stops when the frontier is empty, the best fresh score exceeds
// the threshold, the live region count reaches the configured minimum, or
// ctx is cancelled.
func (a *Agglomerator) Run(ctx context.Context) (int, error) {
	if a.ran {
		return 0, ErrAlreadyRun
	}
	a.ran = true

	numEdges := a.g.NumEdges()
	frontier := &queue.EdgeQueue{Items: make([]*queue.Item, 0, numEdges)}
	scored := make([]uint64, numEdges)
	touched := make([]uint64, numEdges)
	tick := uint64(1)

	a.g.LiveEdges(func(e core.EdgeID) bool {
		scored[e] = tick
		heap.Push(frontier, &queue.Item{Edge: e, Score: a.policy.Score(e)})
		return true
	})

	a.opts.logger.Debug("merge loop starting",
		"live_nodes", a.g.NumLiveNodes(),
		"live_edges", a.g.NumLiveEdges(),
		"threshold", a.opts.threshold,
		"min_regions", a.opts.minRegions,
	)

	merges := 0
	for frontier.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return merges, err
		}
		if a.g.NumLiveNodes() <= a.opts.minRegions {
			break
		}

		item := heap.Pop(frontier).(*queue.Item)
		e := item.Edge

		if !a.g.IsLiveEdge(e) {
			// Retired by an earlier contraction while queued.
			continue
		}
		if touched[e] > scored[e] {
			// Neighborhood changed since this entry was scored.
			tick++
			scored[e] = tick
			item.Score = a.policy.Score(e)
			heap.Push(frontier, item)
			continue
		}
		if item.Score > a.opts.threshold {
			break
		}

		m, err := a.g.Contract(e)
		if err != nil {
			return merges, err
		}
		a.policy.OnNodeMerge(m.From, m.To)
		for _, em := range m.EdgeMerges {
			a.policy.OnEdgeMerge(em.From, em.To)
		}

		tick++
		_ = a.g.IncidentEdges(m.To, func(ie core.EdgeID) bool {
			touched[ie] = tick
			return true
		})

		a.history = append(a.history, MergeRecord{Edge: e, From: m.From, To: m.To, Score: item.Score})
		merges++

		if a.opts.logEvery > 0 && merges%a.opts.logEvery == 0 {
			a.opts.logger.Debug("merge loop progress",
				"merges", merges,
				"live_nodes", a.g.NumLiveNodes(),
				"last_score", item.Score,
			)
		}
	}

	a.opts.logger.Info("merge loop finished",
		"merges", merges,
		"live_nodes", a.g.NumLiveNodes(),
		"live_edges", a.g.NumLiveEdges(),
	)

	return merges, nil
}

// Labels returns, for every original region, the surviving region it was
// merged into.
func (a *Agglomerator) Labels() []core.NodeID {
	return a.g.Labels()
}

// History returns the contractions performed, in merge order.
func (a *Agglomerator) History() []MergeRecord {
	return a.history
}

// Snapshot captures the current labels and merge history for persistence.
func (a *Agglomerator) Snapshot() *persistence.Snapshot {
	labels := a.g.Labels()
	snap := &persistence.Snapshot{
		Labels: make([]uint32, len(labels)),
		Merges: make([]persistence.MergeStep, len(a.history)),
	}
	for i, l := range labels {
		snap.Labels[i] = uint32(l)
	}
	for i, m := range a.history {
		snap.Merges[i] = persistence.MergeStep{
			Edge:  uint32(m.Edge),
			From:  uint32(m.From),
			To:    uint32(m.To),
			Score: m.Score,
		}
	}
	return snap
}
