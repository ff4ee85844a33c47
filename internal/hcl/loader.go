package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/staticpipe/internal/config"
	"github.com/specialistvlad/staticpipe/internal/ctxlog"
	"github.com/specialistvlad/staticpipe/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL description loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found at paths and merges their blocks, in file
// order, into one model. A path may name a file or a directory; a missing
// path is an error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	if len(paths) == 0 {
		return nil, fmt.Errorf("no description path given")
	}

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered HCL files.", "files", files)

	model := &config.Model{}
	parser := hclparse.NewParser()

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, b := range root.Inputs {
			in, err := l.translateInput(ctx, b)
			if err != nil {
				return nil, err
			}
			model.Inputs = append(model.Inputs, in)
		}
		for _, b := range root.Steps {
			s, err := l.translateStep(b)
			if err != nil {
				return nil, err
			}
			model.Steps = append(model.Steps, s)
		}
		for _, b := range root.Outputs {
			model.Outputs = append(model.Outputs, l.translateOutput(b))
		}
		logger.Debug("Loaded HCL file.", "file", file)
	}

	logger.Debug("HCL loading complete.", "inputs", len(model.Inputs), "steps", len(model.Steps), "outputs", len(model.Outputs))
	return model, nil
}

// findAllHCLFiles expands every path and returns the .hcl files found, each
// once, in path order.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var all []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if _, dup := seen[f]; dup {
				continue
			}
			seen[f] = struct{}{}
			all = append(all, f)
		}
	}
	return all, nil
}
