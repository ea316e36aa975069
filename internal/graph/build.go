package graph

import (
	"context"
	"fmt"

	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/ctxlog"
)

// Build constructs a complete, validated dependency graph from a config
// model. It fails with DuplicateTargetError, UnresolvedDependencyError or
// CyclicDependencyError; all three are fatal, since no execution order can
// be established over an invalid graph.
func Build(ctx context.Context, model *config.Model) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.")
	graph := &Graph{Nodes: make(map[string]*Node)}

	// First pass: create all nodes.
	if err := createNodes(ctx, model, graph); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node creation complete.", "node_count", len(graph.Nodes))

	// Second pass: resolve raw references into edges.
	if err := linkNodes(ctx, model, graph); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node linking complete.")

	// Third pass: initialize the counting barriers.
	for _, node := range graph.Nodes {
		node.SetInitialCounters()
	}

	if err := graph.detectCycles(); err != nil {
		return nil, fmt.Errorf("error validating dependency graph: %w", err)
	}
	logger.Debug("Build: Cycle detection passed.")

	logger.Debug("Build: Graph construction successful.")
	return graph, nil
}

// createNodes performs the first pass of graph creation. A canonical address
// appearing twice is a hard error, not a silent overwrite.
func createNodes(ctx context.Context, model *config.Model, graph *Graph) error {
	logger := ctxlog.FromContext(ctx)
	for _, t := range model.Targets {
		id := t.ID()
		if _, exists := graph.Nodes[id]; exists {
			return &DuplicateTargetError{Address: id}
		}
		logger.Debug("Creating node.", "id", id, "kind", t.Kind)
		graph.Nodes[id] = &Node{
			ID:         id,
			Target:     t,
			Deps:       make(map[string]*Node),
			Dependents: make(map[string]*Node),
		}
	}
	return nil
}
