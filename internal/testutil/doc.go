// Package testutil provides shared helpers for tests: a temp-dir harness
// that writes build files and runs the app over them, thread-safe log and
// execution-order capture, and stub kind modules.
package testutil
