package config

import (
	"github.com/hashicorp/hcl/v2"

	"github.com/vk/buildgrid/internal/address"
)

// Model is the unified, format-agnostic representation of every target
// declaration discovered under the load roots. It carries raw dependency
// reference strings; resolution to actual targets is deferred to the graph
// builder, after all build files have been merged.
type Model struct {
	Targets []*Target
}

// Target is the format-agnostic representation of a single `target` block.
// Targets are created once at load time and are immutable thereafter.
type Target struct {
	// Kind selects the registered Go handler that executes this target.
	Kind string
	// Name is the target's local name within its build file.
	Name string
	// Address is the canonical identifier assigned by the loader.
	Address address.Address
	// Dependencies holds the raw reference strings exactly as declared.
	Dependencies []string
	// Arguments is the undecoded body of the target's `arguments` block,
	// or nil if the block is absent. Decoding happens at execution time
	// against the handler's input struct.
	Arguments hcl.Body
	// Seq is the target's declaration sequence number across the whole
	// load, used as the deterministic tie-breaker during scheduling.
	Seq int
}

// ID returns the canonical string form of the target's address.
func (t *Target) ID() string {
	return t.Address.String()
}
