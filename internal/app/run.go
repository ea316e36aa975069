package app

import (
	"context"
	"fmt"

	"github.com/vk/buildgrid/internal/address"
	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/executor"
	"github.com/vk/buildgrid/internal/graph"
	"github.com/vk/buildgrid/internal/scheduler"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.StatusPort > 0 {
		if err := a.startStatusServer(appConfig.StatusPort); err != nil {
			return err
		}
	}

	a.logger.Debug("Building dependency graph from config model...")
	g, err := graph.Build(ctx, a.model)
	if err != nil {
		return fmt.Errorf("failed to build dependency graph: %w", err)
	}
	a.logger.Debug("Dependency graph built.", "node_count", len(g.Nodes))

	if appConfig.TargetAddr != "" {
		g, err = a.selectTarget(ctx, g, appConfig.TargetAddr)
		if err != nil {
			return err
		}
		a.logger.Info("Restricted run to requested target.", "target", appConfig.TargetAddr, "node_count", len(g.Nodes))
	}

	a.metrics.GraphNodes.Set(float64(len(g.Nodes)))

	if len(g.Nodes) == 0 {
		a.logger.Warn("No targets found in graph, execution not required.")
		return nil
	}

	if appConfig.DryRun {
		return a.printSchedule(g)
	}

	a.logger.Info("🚀 Starting concurrent execution...", "workers", appConfig.Workers)
	exec := executor.New(g, a.registry, executor.Options{
		Workers:       appConfig.Workers,
		TargetTimeout: appConfig.TargetTimeout,
		RunID:         a.runID,
		Root:          appConfig.RootPath,
		Metrics:       a.metrics,
	})
	if err := exec.Run(ctx); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.")

	a.logger.Debug("App.Run method finished.")
	return nil
}

// selectTarget prunes the graph to the requested address and its transitive
// dependencies.
func (a *App) selectTarget(ctx context.Context, g *graph.Graph, raw string) (*graph.Graph, error) {
	addr, err := address.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid -target address: %w", err)
	}
	sub, err := g.Subgraph(ctx, addr.String())
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// printSchedule writes the deterministic topological order to the output
// writer without executing anything.
func (a *App) printSchedule(g *graph.Graph) error {
	schedule := scheduler.New(g)
	for {
		node, ok := schedule.Next()
		if !ok {
			break
		}
		fmt.Fprintln(a.outW, node.ID)
	}
	if remaining := schedule.Remaining(); remaining != 0 {
		// Build already rejected cycles, so a short schedule is a bug.
		return fmt.Errorf("internal error: schedule ended with %d targets unvisited", remaining)
	}
	return nil
}
