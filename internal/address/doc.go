// Package address defines the canonical identifier for build targets. An
// address pairs the directory of the declaring build file with the target's
// local name, serialized as `path:name`. It is the key type for the graph
// arena and the grammar of every `dependencies` reference.
package address
