package pqueue_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brainseg/ragseg/pqueue"
)

func TestPQ_PopOrder(t *testing.T) {
	pq := pqueue.New()
	pq.Push(1, 0.5, 0)
	pq.Push(2, 0.1, 0)
	pq.Push(3, 0.9, 0)

	item, ok := pq.Pop()
	require.True(t, ok)
	require.Equal(t, int32(2), item.EdgeID)

	item, ok = pq.Pop()
	require.True(t, ok)
	require.Equal(t, int32(1), item.EdgeID)

	item, ok = pq.Pop()
	require.True(t, ok)
	require.Equal(t, int32(3), item.EdgeID)

	_, ok = pq.Pop()
	require.False(t, ok)
}

func TestPQ_TieBreakByEdgeID(t *testing.T) {
	pq := pqueue.New()
	pq.Push(5, 0.5, 0)
	pq.Push(2, 0.5, 0)
	pq.Push(9, 0.5, 0)

	item, _ := pq.Pop()
	require.Equal(t, int32(2), item.EdgeID)
}

func TestPQ_GenerationCarriedThrough(t *testing.T) {
	pq := pqueue.New()
	pq.Push(1, 0.2, 7)
	item, ok := pq.Pop()
	require.True(t, ok)
	require.Equal(t, uint64(7), item.Generation)
}

func TestPQ_LazyDuplicateLowestWins(t *testing.T) {
	// Simulates the "push a cheaper priority without removing the old
	// entry" pattern: only the cheapest surfaces first.
	pq := pqueue.New()
	pq.Push(1, 0.8, 0)
	pq.Push(1, 0.3, 1)

	item, ok := pq.Pop()
	require.True(t, ok)
	require.Equal(t, 0.3, item.Priority)
	require.Equal(t, uint64(1), item.Generation)

	item, ok = pq.Pop()
	require.True(t, ok)
	require.Equal(t, 0.8, item.Priority)
	require.Equal(t, uint64(0), item.Generation)
}
