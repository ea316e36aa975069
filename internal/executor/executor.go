package executor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/graph"
	"github.com/vk/buildgrid/internal/metrics"
	"github.com/vk/buildgrid/internal/registry"
)

// Options configures a single executor run.
type Options struct {
	// Workers is the size of the worker pool. Values below 1 are treated
	// as 1.
	Workers int
	// TargetTimeout bounds each target's handler invocation. Zero means
	// no timeout. The timeout wraps handler execution only, never the
	// graph bookkeeping around it.
	TargetTimeout time.Duration
	// RunID identifies the invocation in logs and eval-context variables.
	RunID string
	// Root is the build root path, exposed to argument expressions.
	Root string
	// Metrics receives per-target observations.
	Metrics *metrics.Metrics
}

// Executor runs a validated graph with a parallel worker pool. Each node's
// execution is gated on completion of all its dependencies via the node's
// counting barrier.
type Executor struct {
	graph    *graph.Graph
	registry *registry.Registry
	opts     Options
	wg       sync.WaitGroup
}

// New creates an executor for the given graph.
func New(g *graph.Graph, reg *registry.Registry, opts Options) *Executor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Executor{
		graph:    g,
		registry: reg,
		opts:     opts,
	}
}

// skippedError marks a node that never ran because an upstream dependency
// failed. It is a symptom, not a root cause, and is filtered out of the
// run's reported error.
type skippedError struct {
	upstream string
}

func (e *skippedError) Error() string {
	return fmt.Sprintf("skipped due to upstream failure of '%s'", e.upstream)
}

// Run executes the entire graph concurrently and returns an error if any
// node fails. It respects the cancellation signal from the provided context.
func (e *Executor) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	readyChan := make(chan *graph.Node, len(e.graph.Nodes))
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger.Debug("Initializing executor, finding root nodes...")
	roots := make([]*graph.Node, 0)
	for _, node := range e.graph.Nodes {
		if node.DepCount() == 0 {
			roots = append(roots, node)
		}
	}
	// Seed roots in declaration order so runs of the same graph start
	// identically regardless of map iteration.
	sort.Slice(roots, func(i, j int) bool {
		return roots[i].Target.Seq < roots[j].Target.Seq
	})
	for _, node := range roots {
		logger.Debug("Found root node.", "nodeID", node.ID)
		readyChan <- node
	}
	logger.Debug("Found all root nodes.", "count", len(roots))

	e.wg.Add(len(e.graph.Nodes))

	logger.Debug("Starting worker pool.", "workers", e.opts.Workers)
	for i := 0; i < e.opts.Workers; i++ {
		go e.worker(runCtx, readyChan, cancel, i)
	}

	logger.Info("Waiting for all targets to complete...")
	e.wg.Wait()
	logger.Info("All targets completed.")
	close(readyChan)

	return e.collectFailures(ctx)
}

// collectFailures inspects terminal node states and reports the run's root
// cause error, filtering out skip symptoms and cancellation noise.
func (e *Executor) collectFailures(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var failedNodes []string
	var rootCauseError error
	for _, node := range e.graph.Nodes {
		if graph.State(node.State.Load()) != graph.Failed {
			continue
		}
		logger.Error("Target failed execution.", "nodeID", node.ID, "error", node.Error)

		var skipped *skippedError
		if node.Error == nil || errors.As(node.Error, &skipped) || errors.Is(node.Error, context.Canceled) {
			continue
		}
		failedNodes = append(failedNodes, node.ID)
		if rootCauseError == nil {
			rootCauseError = node.Error
		}
	}

	if rootCauseError != nil {
		sort.Strings(failedNodes)
		return fmt.Errorf("execution failed for %s: %w", strings.Join(failedNodes, ", "), rootCauseError)
	}

	// External cancellation leaves only skip symptoms and context.Canceled
	// behind, but the run still did not complete and must not report success.
	if ctx.Err() != nil {
		return fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return nil
}

// skipDependents recursively marks all downstream nodes as failed and
// releases their slot in the WaitGroup.
func (e *Executor) skipDependents(ctx context.Context, node *graph.Node) {
	logger := ctxlog.FromContext(ctx)
	for _, dependent := range node.Dependents {
		dependent.SkipOnce(func() {
			logger.Warn("Skipping dependent target due to upstream failure.", "nodeID", dependent.ID, "dependency", node.ID)
			dependent.State.Store(int32(graph.Failed))
			dependent.Error = &skippedError{upstream: node.ID}
			if e.opts.Metrics != nil {
				e.opts.Metrics.TargetsTotal.WithLabelValues(dependent.Target.Kind, "skipped").Inc()
			}
			e.wg.Done()
			e.skipDependents(ctx, dependent)
		})
	}
}
