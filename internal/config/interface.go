package config

import "context"

// Loader is the interface for a format-specific build-file loader.
type Loader interface {
	// Load discovers build files under the given roots, translates every
	// target declaration into the format-agnostic model, and returns it.
	// Load never resolves dependency references; targets may freely refer
	// to targets declared in files it has not seen yet.
	Load(ctx context.Context, roots ...string) (*Model, error)
}
