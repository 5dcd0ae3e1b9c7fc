package queue

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hierseg/hierseg/core"
)

func TestPopOrder(t *testing.T) {
	q := &EdgeQueue{}
	heap.Push(q, &Item{Edge: 3, Score: 0.7})
	heap.Push(q, &Item{Edge: 1, Score: 0.2})
	heap.Push(q, &Item{Edge: 2, Score: 0.5})

	var edges []core.EdgeID
	for q.Len() > 0 {
		edges = append(edges, heap.Pop(q).(*Item).Edge)
	}
	require.Equal(t, []core.EdgeID{1, 2, 3}, edges)
}

func TestTieBreakByEdgeID(t *testing.T) {
	q := &EdgeQueue{}
	for _, e := range []core.EdgeID{5, 2, 9, 0} {
		heap.Push(q, &Item{Edge: e, Score: 0.5})
	}

	var edges []core.EdgeID
	for q.Len() > 0 {
		edges = append(edges, heap.Pop(q).(*Item).Edge)
	}
	require.Equal(t, []core.EdgeID{0, 2, 5, 9}, edges)
}

func TestPopEmpty(t *testing.T) {
	q := &EdgeQueue{}
	require.Nil(t, q.Pop())
}
