// Package histogram provides the fixed-bin affinity histograms behind the
// approximate quantile score policy.
//
// A histogram discretizes affinities in [0,1] into a fixed number of bins
// (256 unless configured otherwise). An original edge starts as a spike: a
// single count in the bin of its own affinity. When edges fold during
// agglomeration their histograms are added bin-wise, which is commutative
// and associative, so the histogram of a surviving edge is independent of
// the order its originals were folded in.
package histogram

import "fmt"

// DefaultBins is the bin count used when none is configured. It matches a
// native 8-bit affinity discretization, for which the quantile query is
// exact rather than approximate.
const DefaultBins = 256

// Histogram counts affinity samples in fixed, equally wide bins.
//
// Counters are 64-bit: totals reach the number of original edges folded into
// one surviving edge, which can be millions on volumetric data, and must not
// silently wrap.
type Histogram struct {
	counts []uint64
	total  uint64
}

// New creates an empty histogram with the given number of bins.
// Bin counts below 2 are rejected: the value of bin b is b/(bins-1).
func New(bins int) (*Histogram, error) {
	if bins < 2 {
		return nil, fmt.Errorf("histogram needs at least 2 bins, got %d", bins)
	}
	return &Histogram{counts: make([]uint64, bins)}, nil
}

// Bins returns the number of bins.
func (h *Histogram) Bins() int { return len(h.counts) }

// Total returns the number of samples recorded, across all bins.
func (h *Histogram) Total() uint64 { return h.total }

// Count returns the number of samples in bin b.
func (h *Histogram) Count(b int) uint64 { return h.counts[b] }

// BinOf returns the bin index of a value in [0,1].
func (h *Histogram) BinOf(value float64) int {
	return int(value * float64(len(h.counts)-1))
}

// Value returns the affinity represented by bin b, in [0,1].
func (h *Histogram) Value(b int) float64 {
	return float64(b) / float64(len(h.counts)-1)
}

// Inc records one sample of a value in [0,1].
func (h *Histogram) Inc(value float64) {
	h.counts[h.BinOf(value)]++
	h.total++
}

// Merge adds other into h bin-wise. Both histograms must have the same bin
// count; the combined total is exactly the sum of the two totals.
func (h *Histogram) Merge(other *Histogram) error {
	if len(other.counts) != len(h.counts) {
		return fmt.Errorf("bin count mismatch: %d != %d", len(other.counts), len(h.counts))
	}
	for i, c := range other.counts {
		h.counts[i] += c
	}
	h.total += other.total
	return nil
}

// Rank returns the value of the first bin whose cumulative count reaches
// pivot (1-based). With pivot > total, the highest occupied bin is returned;
// on an empty histogram, Rank returns 0.
func (h *Histogram) Rank(pivot uint64) float64 {
	if h.total == 0 {
		return 0
	}
	if pivot > h.total {
		pivot = h.total
	}
	var cum uint64
	for b, c := range h.counts {
		cum += c
		if cum >= pivot {
			return h.Value(b)
		}
	}
	// Unreachable: pivot <= total and the counts sum to total.
	return h.Value(len(h.counts) - 1)
}

// Equal reports whether two histograms have identical bins and counts.
func (h *Histogram) Equal(other *Histogram) bool {
	if len(other.counts) != len(h.counts) || other.total != h.total {
		return false
	}
	for i, c := range other.counts {
		if c != h.counts[i] {
			return false
		}
	}
	return true
}
