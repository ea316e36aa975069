package scheduler

import (
	"container/heap"

	"github.com/vk/buildgrid/internal/graph"
)

// Schedule is a lazy, finite sequence of graph nodes in topological order:
// every dependency is emitted before each of its dependents. Ties among
// simultaneously-ready nodes are broken by declaration order, so a given
// graph always yields the same sequence. A Schedule is single-pass and not
// restartable; once exhausted, Next returns false forever.
type Schedule struct {
	ready     nodeHeap
	indegree  map[string]int
	emitted   int
	nodeCount int
}

// New computes a schedule over the given graph. The graph must already have
// passed cycle detection; a cyclic graph produces a schedule that ends early,
// observable via Remaining.
func New(g *graph.Graph) *Schedule {
	s := &Schedule{
		indegree:  make(map[string]int, len(g.Nodes)),
		nodeCount: len(g.Nodes),
	}
	for id, node := range g.Nodes {
		s.indegree[id] = len(node.Deps)
		if len(node.Deps) == 0 {
			s.ready = append(s.ready, node)
		}
	}
	heap.Init(&s.ready)
	return s
}

// Next emits the next node in topological order. The second return value is
// false when the sequence is exhausted.
func (s *Schedule) Next() (*graph.Node, bool) {
	if s.ready.Len() == 0 {
		return nil, false
	}

	node := heap.Pop(&s.ready).(*graph.Node)
	s.emitted++

	for _, dependent := range node.Dependents {
		s.indegree[dependent.ID]--
		if s.indegree[dependent.ID] == 0 {
			heap.Push(&s.ready, dependent)
		}
	}

	return node, true
}

// Remaining returns the number of nodes not yet emitted. After exhaustion it
// is zero for an acyclic graph; a non-zero value means the sequence ended
// early because the leftover nodes sit on a cycle.
func (s *Schedule) Remaining() int {
	return s.nodeCount - s.emitted
}

// nodeHeap is a min-heap of ready nodes ordered by declaration sequence.
type nodeHeap []*graph.Node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].Target.Seq < h[j].Target.Seq }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x any)         { *h = append(*h, x.(*graph.Node)) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return node
}
