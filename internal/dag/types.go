package dag

import (
	"errors"
	"sync"
)

// ErrCycle is wrapped by every error that reports a dependency cycle,
// including a self-referential edge.
var ErrCycle = errors.New("cycle detected")

// Graph is a collection of nodes and their dependencies.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects nodes and order during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[string]*node
	// order lists node IDs in insertion order.
	order []string
}

// node is a single vertex. It is un-exported to enforce interaction with the
// graph through string IDs.
type node struct {
	id string
	// seq is the insertion position, used to sort neighbours.
	seq int
	// deps holds the nodes this node depends on (predecessors).
	deps map[string]*node
}
