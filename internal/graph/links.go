package graph

import (
	"context"
	"fmt"

	"github.com/vk/buildgrid/internal/address"
	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/ctxlog"
)

// linkNodes performs the second pass, resolving every raw dependency
// reference to a node already present in the arena. Linking runs only after
// all build files have been merged, so references may point at targets
// declared anywhere under the load roots.
func linkNodes(ctx context.Context, model *config.Model, graph *Graph) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting node linking pass.")

	for _, t := range model.Targets {
		node := graph.Nodes[t.ID()]
		for _, ref := range t.Dependencies {
			depNode, err := resolveReference(node, ref, graph)
			if err != nil {
				return err
			}
			if node == depNode {
				return fmt.Errorf("target '%s' depends on itself", node.ID)
			}
			if _, exists := node.Deps[depNode.ID]; !exists {
				logger.Debug("Linking dependency.", "from", node.ID, "to", depNode.ID)
				node.Deps[depNode.ID] = depNode
				depNode.Dependents[node.ID] = node
			}
		}
	}

	logger.Debug("Finished node linking pass.")
	return nil
}

// resolveReference parses a raw reference and looks it up in the arena.
// Shorthand references (no path component) are first tried relative to the
// referencing target's own directory, then at the root.
func resolveReference(from *Node, ref string, graph *Graph) (*Node, error) {
	addr, err := address.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("target '%s': %w", from.ID, err)
	}

	if node, ok := graph.Nodes[addr.String()]; ok {
		return node, nil
	}

	// A bare `name` inside src/main/BUILD refers to a sibling first.
	if addr.Path == "" && from.Target.Address.Path != "" {
		sibling := address.New(from.Target.Address.Path, addr.Name)
		if node, ok := graph.Nodes[sibling.String()]; ok {
			return node, nil
		}
	}

	return nil, &UnresolvedDependencyError{Target: from.ID, Reference: ref}
}

// detectCycles checks for circular dependencies in the graph using DFS with
// visiting/visited marker sets.
func (g *Graph) detectCycles() error {
	visiting := make(map[string]bool)
	visited := make(map[string]bool)

	var visit func(node *Node) error
	visit = func(node *Node) error {
		visiting[node.ID] = true
		for _, dep := range node.Deps {
			if visiting[dep.ID] {
				return &CyclicDependencyError{Node: dep.ID}
			}
			if !visited[dep.ID] {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		delete(visiting, node.ID)
		visited[node.ID] = true
		return nil
	}

	for _, node := range g.Nodes {
		if !visited[node.ID] {
			if err := visit(node); err != nil {
				return err
			}
		}
	}
	return nil
}

// Subgraph returns a fresh graph containing the named target and its
// transitive dependencies only. Nodes are re-created so that the subgraph
// carries its own execution state and counters.
func (g *Graph) Subgraph(ctx context.Context, id string) (*Graph, error) {
	rootNode, ok := g.Nodes[id]
	if !ok {
		return nil, fmt.Errorf("requested target not found: %s", id)
	}

	keep := make(map[string]*config.Target)
	var collect func(n *Node)
	collect = func(n *Node) {
		if _, ok := keep[n.ID]; ok {
			return
		}
		keep[n.ID] = n.Target
		for _, dep := range n.Deps {
			collect(dep)
		}
	}
	collect(rootNode)

	model := &config.Model{}
	for _, t := range keep {
		model.Targets = append(model.Targets, t)
	}

	// Rebuilding re-runs resolution and cycle detection over the subset.
	return Build(ctx, model)
}
