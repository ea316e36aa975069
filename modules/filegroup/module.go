// Package filegroup implements the aggregate target kind. A filegroup does
// no work of its own; it exists to fan in a set of dependencies under one
// address, so that depending on the group means depending on all of them.
package filegroup

import (
	"context"

	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/registry"
)

// Module registers the filegroup kind.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.RegisterRunner(&registry.Runner{
		Kind:        "filegroup",
		Description: "Aggregates a set of dependencies under a single address.",
		Run:         run,
	})
}

func run(ctx context.Context, target *config.Target, _ any) error {
	ctxlog.FromContext(ctx).Debug("Filegroup target satisfied.", "target", target.ID())
	return nil
}
