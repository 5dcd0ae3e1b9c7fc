// Package queue provides the merge frontier: a priority queue of edges
// ordered by score.
package queue

import (
	"container/heap"

	"github.com/hierseg/hierseg/core"
)

// Compile time check to ensure EdgeQueue satisfies the heap interface.
var _ heap.Interface = (*EdgeQueue)(nil)

// Item represents an edge in the merge frontier.
type Item struct {
	Edge  core.EdgeID // Edge is the edge this entry scores.
	Score float64     // Score is the merge priority; lower merges earlier.
	Index int         // Index is maintained by the heap.Interface methods.
}

// EdgeQueue implements heap.Interface over Items. The lowest score is at
// the top; equal scores are broken by the lower edge id, which makes the
// pop order fully deterministic.
type EdgeQueue struct {
	Items []*Item
}

// Len returns the number of elements in the queue.
func (q *EdgeQueue) Len() int { return len(q.Items) }

// Less reports whether the element with index i should sort before the element with index j.
func (q *EdgeQueue) Less(i, j int) bool {
	if q.Items[i].Score != q.Items[j].Score {
		return q.Items[i].Score < q.Items[j].Score
	}
	return q.Items[i].Edge < q.Items[j].Edge
}

// Swap swaps the elements with indexes i and j.
func (q *EdgeQueue) Swap(i, j int) {
	q.Items[i], q.Items[j] = q.Items[j], q.Items[i]
	q.Items[i].Index, q.Items[j].Index = i, j
}

// Push adds x to the queue.
func (q *EdgeQueue) Push(x any) {
	item, _ := x.(*Item)
	item.Index = len(q.Items)
	q.Items = append(q.Items, item)
}

// Pop removes and returns the top element from the queue.
func (q *EdgeQueue) Pop() any {
	if len(q.Items) == 0 {
		return nil
	}

	old := q.Items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // Avoid memory leak
	item.Index = -1
	q.Items = old[:n-1]

	return item
}
