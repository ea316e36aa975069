package graph

import (
	"sync"
	"sync/atomic"

	"github.com/vk/buildgrid/internal/config"
)

// State describes a node's position in the execution lifecycle.
type State int32

const (
	Pending State = iota
	Running
	Done
	Failed
)

// Graph is the arena of target nodes for a single build invocation, keyed by
// canonical address. The structure is immutable once Build returns; only the
// per-node execution fields mutate afterwards.
type Graph struct {
	Nodes map[string]*Node
}

// Node is a single vertex of the dependency graph: one target plus its
// resolved edges and execution state.
type Node struct {
	ID     string
	Target *config.Target

	// Deps holds the nodes this node depends on (predecessors).
	Deps map[string]*Node
	// Dependents holds the nodes that depend on this node (successors).
	Dependents map[string]*Node

	// State and Error are written by the executor.
	State atomic.Int32
	Error error

	// depCount is the counting barrier: the number of unfinished
	// dependencies gating this node's execution.
	depCount atomic.Int32
	// skipOnce guarantees a node is skipped at most once when an upstream
	// failure cascades through its dependents.
	skipOnce sync.Once
}

// SetInitialCounters seeds the counting barrier from the resolved edges.
func (n *Node) SetInitialCounters() {
	n.depCount.Store(int32(len(n.Deps)))
}

// DepCount returns the number of dependencies still gating this node.
func (n *Node) DepCount() int32 {
	return n.depCount.Load()
}

// DecrementDepCount records one completed dependency and returns the number
// still outstanding.
func (n *Node) DecrementDepCount() int32 {
	return n.depCount.Add(-1)
}

// SkipOnce runs fn at most once for this node, used to mark it skipped.
func (n *Node) SkipOnce(fn func()) {
	n.skipOnce.Do(fn)
}
