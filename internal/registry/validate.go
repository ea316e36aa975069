package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/ctxlog"
)

// Validate performs a strict parity check between the loaded model and the
// registered Go code: every kind used by a target must have a runner, and a
// target may only carry an arguments block if its runner declares an input
// struct. Failures here are configuration/code mismatches and are fatal.
func (r *Registry) Validate(ctx context.Context, model *config.Model) error {
	logger := ctxlog.FromContext(ctx)
	var errs []string

	for _, t := range model.Targets {
		runner, ok := r.Runners[t.Kind]
		if !ok {
			errs = append(errs, fmt.Sprintf("target '%s': no runner registered for kind '%s'", t.ID(), t.Kind))
			continue
		}
		if t.Arguments != nil && runner.NewInput == nil {
			errs = append(errs, fmt.Sprintf("target '%s': kind '%s' takes no arguments, but an arguments block was declared", t.ID(), t.Kind))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "runner_count", len(r.Runners))
	return nil
}
