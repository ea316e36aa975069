package hclloader

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/buildgrid/internal/address"
	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/fsutil"
)

// Extension is the file suffix that marks a build file.
const Extension = ".build.hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL build-file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load discovers and parses every build file under the given roots, merging
// all target declarations into a single model. Declaration order (file walk
// order, then block order within a file) is recorded on each target as its
// sequence number.
func (l *Loader) Load(ctx context.Context, roots ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "root_count", len(roots))

	model := &config.Model{}
	parser := hclparse.NewParser()
	seq := 0

	for _, root := range roots {
		files, err := fsutil.FindFilesByExtension(root, Extension)
		if err != nil {
			return nil, fmt.Errorf("discovering build files under %s: %w", root, err)
		}
		logger.Debug("Discovered build files.", "root", root, "count", len(files))

		for _, file := range files {
			hclFile, diags := parser.ParseHCLFile(file)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse build file %s: %w", file, diags)
			}

			var fr fileRoot
			if diags := gohcl.DecodeBody(hclFile.Body, nil, &fr); diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode build file %s: %w", file, diags)
			}

			dirPath, err := relativeDir(root, file)
			if err != nil {
				return nil, err
			}

			for _, block := range fr.Targets {
				target, err := l.translateTarget(block, dirPath, seq)
				if err != nil {
					return nil, fmt.Errorf("in build file %s: %w", file, err)
				}
				model.Targets = append(model.Targets, target)
				seq++
			}
		}
	}

	logger.Debug("HCL loader finished.", "target_count", len(model.Targets))
	return model, nil
}

// relativeDir computes a build file's directory relative to its load root,
// which becomes the path component of every address the file declares.
func relativeDir(root, file string) (string, error) {
	rel, err := filepath.Rel(root, filepath.Dir(file))
	if err != nil {
		return "", fmt.Errorf("resolving build file path %s: %w", file, err)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// translateTarget converts a decoded HCL block into the agnostic model.
func (l *Loader) translateTarget(block *targetBlock, dirPath string, seq int) (*config.Target, error) {
	if block.Kind == "" {
		return nil, fmt.Errorf("target %q: kind label cannot be empty", block.Name)
	}

	// Re-parse the local name through the address grammar so that malformed
	// names are rejected at load time, not at resolution time.
	addr, err := address.Parse(dirPath + ":" + block.Name)
	if err != nil {
		return nil, err
	}

	target := &config.Target{
		Kind:         block.Kind,
		Name:         block.Name,
		Address:      addr,
		Dependencies: block.Dependencies,
		Seq:          seq,
	}
	if block.Arguments != nil {
		target.Arguments = block.Arguments.Body
	}
	return target, nil
}
