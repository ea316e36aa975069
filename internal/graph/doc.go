// Package graph builds and validates the in-memory dependency graph for one
// build invocation. Construction is a three-pass process: create a node per
// declared target (rejecting duplicate addresses), resolve raw dependency
// references into directed edges (rejecting dangling references), and verify
// acyclicity. The resulting arena is immutable; only per-node execution
// state mutates during a run.
package graph
