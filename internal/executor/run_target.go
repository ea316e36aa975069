package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/graph"
)

// runTarget executes a single node: it decodes the target's arguments into
// the runner's input struct and invokes the runner, bounded by the
// per-target timeout.
func (e *Executor) runTarget(ctx context.Context, node *graph.Node) error {
	logger := ctxlog.FromContext(ctx).With("target", node.ID)
	logger.Info("▶️ Starting target", "kind", node.Target.Kind)

	runner, ok := e.registry.Runner(node.Target.Kind)
	if !ok {
		// Registry validation runs before any execution, so this is
		// unreachable outside of programmer error.
		return fmt.Errorf("no runner registered for kind '%s'", node.Target.Kind)
	}

	var input any
	if runner.NewInput != nil {
		input = runner.NewInput()
		if node.Target.Arguments != nil {
			logger.Debug("Decoding target arguments.")
			if diags := gohcl.DecodeBody(node.Target.Arguments, e.buildEvalContext(node), input); diags.HasErrors() {
				return fmt.Errorf("decoding arguments for target %s: %w", node.ID, diags)
			}
		}
	}

	runCtx := ctx
	if e.opts.TargetTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, e.opts.TargetTimeout)
		defer cancel()
	}

	start := time.Now()
	err := runner.Run(runCtx, node.Target, input)
	if e.opts.Metrics != nil {
		e.opts.Metrics.TargetDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return err
	}

	logger.Info("✅ Finished target")
	return nil
}

// buildEvalContext exposes invocation- and target-scoped variables to
// argument expressions, e.g. `"${invocation.id}"` or `"${target.name}"`.
func (e *Executor) buildEvalContext(node *graph.Node) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"invocation": cty.ObjectVal(map[string]cty.Value{
				"id":   cty.StringVal(e.opts.RunID),
				"root": cty.StringVal(e.opts.Root),
			}),
			"target": cty.ObjectVal(map[string]cty.Value{
				"name":    cty.StringVal(node.Target.Name),
				"path":    cty.StringVal(node.Target.Address.Path),
				"address": cty.StringVal(node.ID),
			}),
		},
	}
}
