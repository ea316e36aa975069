// Package config defines the format-agnostic model of a build configuration
// and the Loader interface that format-specific adapters implement. The rest
// of the engine (graph, scheduler, executor) depends only on this package,
// never on a concrete syntax.
package config
