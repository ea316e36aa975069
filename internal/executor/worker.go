package executor

import (
	"context"

	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/graph"
)

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, readyChan chan *graph.Node, cancel context.CancelFunc, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for node := range readyChan {
		workerLogger := logger.With("workerID", workerID, "nodeID", node.ID)

		if ctx.Err() != nil {
			node.SkipOnce(func() {
				workerLogger.Warn("Context canceled, skipping target execution.")
				node.State.Store(int32(graph.Failed))
				node.Error = ctx.Err()
				e.wg.Done()
				e.skipDependents(ctx, node)
			})
			continue
		}

		workerLogger.Debug("Worker picked up target for execution.")
		node.State.Store(int32(graph.Running))

		if err := e.runTarget(ctx, node); err != nil {
			workerLogger.Error("Target execution failed.", "error", err)
			node.State.Store(int32(graph.Failed))
			node.Error = err
			if e.opts.Metrics != nil {
				e.opts.Metrics.TargetsTotal.WithLabelValues(node.Target.Kind, "failed").Inc()
			}
			cancel()
			e.skipDependents(ctx, node)
			e.wg.Done()
			continue
		}

		workerLogger.Debug("Target execution succeeded.")
		node.State.Store(int32(graph.Done))
		if e.opts.Metrics != nil {
			e.opts.Metrics.TargetsTotal.WithLabelValues(node.Target.Kind, "done").Inc()
		}

		for _, dependent := range node.Dependents {
			if dependent.DecrementDepCount() == 0 {
				workerLogger.Debug("Unlocking dependent target.", "dependentID", dependent.ID)
				readyChan <- dependent
			}
		}

		e.wg.Done()
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}
