// Package registry maps target kinds to the Go runners that execute them.
// The declarative side of a kind lives in build files; the imperative side is
// registered here by modules at startup, and a validation pass guarantees the
// two agree before any target runs.
package registry
