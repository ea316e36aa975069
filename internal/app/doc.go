// Package app wires the application together: it owns the logger, the
// loaded configuration model, the kind registry and the metrics, and drives
// the load → validate → build graph → schedule/execute lifecycle.
package app
