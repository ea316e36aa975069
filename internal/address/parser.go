package address

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRegex validates a target's local name.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_][a-zA-Z0-9_.-]*$`)

// pathSegmentRegex validates a single directory segment of an address path.
var pathSegmentRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// isValidPathSegment rejects undesirable but technically matching segments.
func isValidPathSegment(segment string) bool {
	if segment == "." || segment == ".." {
		return false
	}
	return pathSegmentRegex.MatchString(segment)
}

// Parse creates an Address by parsing its canonical string representation.
// Accepted forms are `path/to/dir:name`, `:name`, and the shorthand `name`
// for a root-level target.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("target address cannot be empty")
	}

	path, name := "", raw
	if idx := strings.IndexRune(raw, ':'); idx >= 0 {
		if strings.ContainsRune(raw[idx+1:], ':') {
			return Address{}, fmt.Errorf("invalid target address %q: multiple ':' separators", raw)
		}
		path, name = raw[:idx], raw[idx+1:]
	}

	if name == "" {
		return Address{}, fmt.Errorf("invalid target address %q: missing target name", raw)
	}
	if !nameRegex.MatchString(name) {
		return Address{}, fmt.Errorf("invalid target address %q: malformed name %q", raw, name)
	}

	if path != "" {
		for _, segment := range strings.Split(path, "/") {
			if segment == "" {
				return Address{}, fmt.Errorf("invalid target address %q: path contains empty segment", raw)
			}
			if !isValidPathSegment(segment) {
				return Address{}, fmt.Errorf("invalid target address %q: malformed path segment %q", raw, segment)
			}
		}
	}

	return Address{Path: path, Name: name}, nil
}
