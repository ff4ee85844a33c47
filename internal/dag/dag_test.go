package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.NotNil(t, g.nodes)
	assert.Empty(t, g.nodes)
	assert.Empty(t, g.Nodes())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	assert.Len(t, g.nodes, 1)
	nodeA, ok := g.nodes["a"]
	require.True(t, ok)
	assert.Equal(t, "a", nodeA.id)
	assert.NotNil(t, nodeA.deps)

	g.AddNode("a") // idempotent
	assert.Len(t, g.nodes, 1)

	g.AddNode("b")
	assert.True(t, g.Has("b"))
	assert.False(t, g.Has("c"))
	assert.Equal(t, []string{"a", "b"}, g.Nodes())
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		require.NoError(t, g.AddEdge("a", "b")) // b depends on a

		deps, err := g.Dependencies("b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, deps)
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorIs(t, err, ErrCycle)
		assert.ErrorContains(t, err, "a -> a")

		_, err = g.Dependencies("dne")
		assert.ErrorContains(t, err, "node not found")
	})
}

func TestNeighboursFollowInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"z", "y", "x", "sink"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("x", "sink"))
	require.NoError(t, g.AddEdge("z", "sink"))
	require.NoError(t, g.AddEdge("y", "sink"))

	deps, err := g.Dependencies("sink")
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "y", "x"}, deps)
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // transitive edge
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a"))

		err := g.DetectCycles()
		assert.ErrorIs(t, err, ErrCycle)
		assert.ErrorContains(t, err, "a -> b -> a")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "d"))
		require.NoError(t, g.AddEdge("d", "a"))

		err := g.DetectCycles()
		assert.ErrorIs(t, err, ErrCycle)
		assert.ErrorContains(t, err, "a -> d -> c -> b -> a")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))

		g.AddNode("x")
		g.AddNode("y")
		g.AddNode("z")
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y"))

		err := g.DetectCycles()
		assert.ErrorIs(t, err, ErrCycle)
		assert.ErrorContains(t, err, "y -> z -> y")
	})
}

func TestTopologicalSort(t *testing.T) {
	g := New()
	for _, id := range []string{"report", "score", "features", "label"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("score", "report"))
	require.NoError(t, g.AddEdge("features", "score"))
	require.NoError(t, g.AddEdge("label", "score"))

	order, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"features", "label", "score", "report"}, order)

	again, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, order, again)
}
