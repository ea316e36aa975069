package graph

import "fmt"

// DuplicateTargetError reports two target declarations sharing one canonical
// address. It is fatal at graph-construction time.
type DuplicateTargetError struct {
	Address string
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("duplicate target declaration for '%s'", e.Address)
}

// UnresolvedDependencyError reports a dependency reference with no matching
// target after all build files have been loaded.
type UnresolvedDependencyError struct {
	Target    string
	Reference string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("target '%s' depends on non-existent target '%s'", e.Target, e.Reference)
}

// CyclicDependencyError reports a dependency cycle discovered during graph
// validation. Node names a target on the cycle.
type CyclicDependencyError struct {
	Node string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle detected involving '%s'", e.Node)
}
