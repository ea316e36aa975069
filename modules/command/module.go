// Package command implements the target kind that executes an external
// program, capturing its output for the build log.
package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/registry"
)

// Module registers the command kind.
type Module struct{}

// Register implements registry.Module.
func (Module) Register(r *registry.Registry) {
	r.RegisterRunner(&registry.Runner{
		Kind:        "command",
		Description: "Executes an external command.",
		NewInput:    func() any { return new(Input) },
		Run:         run,
	})
}

// Input is the decoded arguments block of a command target.
type Input struct {
	Command string            `hcl:"command"`
	Args    []string          `hcl:"args,optional"`
	Dir     string            `hcl:"dir,optional"`
	Env     map[string]string `hcl:"env,optional"`
}

func run(ctx context.Context, target *config.Target, input any) error {
	in := input.(*Input)
	logger := ctxlog.FromContext(ctx).With("target", target.ID())

	if in.Command == "" {
		return fmt.Errorf("command cannot be empty")
	}

	cmd := exec.CommandContext(ctx, in.Command, in.Args...)
	cmd.Dir = in.Dir
	cmd.Env = append(os.Environ(), flattenEnv(in.Env)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("Running command.", "command", in.Command, "args", in.Args, "dir", in.Dir)
	err := cmd.Run()

	if stdout.Len() > 0 {
		logger.Info("Command stdout.", "output", strings.TrimRight(stdout.String(), "\n"))
	}
	if stderr.Len() > 0 {
		logger.Warn("Command stderr.", "output", strings.TrimRight(stderr.String(), "\n"))
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("command '%s' interrupted: %w", in.Command, ctxErr)
		}
		return fmt.Errorf("command '%s' failed: %w", in.Command, err)
	}
	return nil
}

// flattenEnv converts the env map into sorted KEY=VALUE pairs so the child
// environment is deterministic.
func flattenEnv(env map[string]string) []string {
	pairs := make([]string, 0, len(env))
	for k, v := range env {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return pairs
}
