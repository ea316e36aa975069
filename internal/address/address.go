package address

import "strings"

// Address is the structured representation of a unique target identifier.
// It is composed of the directory path of the declaring build file, relative
// to the load root, and the target's local name within that file.
type Address struct {
	Path string
	Name string
}

// New creates an Address from an already-validated path and name.
func New(path, name string) Address {
	return Address{Path: path, Name: name}
}

// String serializes the Address into its canonical form, `path:name`.
// Root-level targets (empty path) render as `:name`.
func (a Address) String() string {
	var sb strings.Builder
	sb.WriteString(a.Path)
	sb.WriteRune(':')
	sb.WriteString(a.Name)
	return sb.String()
}

// Equal reports whether two addresses identify the same target.
func (a Address) Equal(other Address) bool {
	return a.Path == other.Path && a.Name == other.Name
}
