package registry

import (
	"context"
	"fmt"

	"github.com/vk/buildgrid/internal/config"
)

// Module is the interface that all target-kind modules implement to be
// registered with an application instance.
type Module interface {
	Register(r *Registry)
}

// Runner binds a target kind to the Go code that executes it.
type Runner struct {
	// Kind is the label users write in `target "<kind>" "<name>"` blocks.
	Kind string
	// Description is a one-line summary surfaced in logs.
	Description string
	// NewInput returns a pointer to a fresh, hcl-tagged struct that the
	// executor decodes the target's arguments into. Nil means the kind
	// takes no arguments.
	NewInput func() any
	// Run executes one target. input is the decoded struct from NewInput,
	// or nil for argument-less kinds.
	Run func(ctx context.Context, target *config.Target, input any) error
}

// Registry holds the runners registered for a single application instance.
type Registry struct {
	Runners map[string]*Runner
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		Runners: make(map[string]*Runner),
	}
}

// RegisterRunner adds a runner to the registry. Registering two runners for
// one kind is a programmer error and panics.
func (r *Registry) RegisterRunner(runner *Runner) {
	if runner.Kind == "" || runner.Run == nil {
		panic(fmt.Sprintf("registry: runner %+v is missing kind or run function", runner))
	}
	if _, exists := r.Runners[runner.Kind]; exists {
		panic(fmt.Sprintf("registry: duplicate runner registration for kind '%s'", runner.Kind))
	}
	r.Runners[runner.Kind] = runner
}

// Runner looks up the runner for a target kind.
func (r *Registry) Runner(kind string) (*Runner, bool) {
	runner, ok := r.Runners[kind]
	return runner, ok
}
