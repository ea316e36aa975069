// Package executor runs a validated dependency graph with a pool of
// concurrent workers. Root nodes are seeded into a ready channel; each
// completed node decrements its dependents' counting barriers and enqueues
// any that reach zero. A failing node cancels the run and transitively skips
// its dependents, and the reported error names the root cause rather than
// the skip symptoms.
package executor
