// Package scheduler turns a validated dependency graph into a deterministic
// execution order. It answers "what runs next" and nothing else; how a node
// runs, and with how much parallelism, is the executor's concern.
package scheduler
