package hclloader

import "github.com/hashicorp/hcl/v2"

// argumentsBlock represents the content of the `arguments` block within a
// target. The body is kept undecoded; the executor decodes it against the
// handler's input struct.
type argumentsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

// targetBlock represents a `target` block from a build file.
type targetBlock struct {
	Kind         string          `hcl:"kind,label"`
	Name         string          `hcl:"name,label"`
	Dependencies []string        `hcl:"dependencies,optional"`
	Arguments    *argumentsBlock `hcl:"arguments,block"`
}

// fileRoot is the top-level structure decoded from any build file.
type fileRoot struct {
	Targets []*targetBlock `hcl:"target,block"`
	Remain  hcl.Body       `hcl:",remain"`
}
