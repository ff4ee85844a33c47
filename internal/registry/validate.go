package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/staticpipe/internal/ctxlog"
	"github.com/specialistvlad/staticpipe/internal/nodeid"
)

// Validate checks that every registered kind is usable from a description:
// a valid name, a Declare function, unique argument names and at least one
// output.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, kind := range r.Kinds() {
		if err := nodeid.ValidateName(kind.Name); err != nil {
			errs = append(errs, fmt.Sprintf("kind '%s': %v", kind.Name, err))
		}
		if kind.Declare == nil {
			errs = append(errs, fmt.Sprintf("kind '%s': no Declare function", kind.Name))
		}
		if len(kind.Outputs) == 0 {
			errs = append(errs, fmt.Sprintf("kind '%s': declares no outputs", kind.Name))
		}

		seen := make(map[string]struct{}, len(kind.Arguments))
		for _, arg := range kind.Arguments {
			if _, dup := seen[arg.Name]; dup {
				errs = append(errs, fmt.Sprintf("kind '%s': argument '%s' declared twice", kind.Name, arg.Name))
			}
			seen[arg.Name] = struct{}{}
			if arg.Name == reservedOptionsBlock {
				errs = append(errs, fmt.Sprintf("kind '%s': argument name '%s' is reserved for the options block", kind.Name, arg.Name))
			}
		}
		if len(kind.Arguments) == 0 {
			logger.Warn("Step kind takes no arguments; its nodes cannot consume any column.", "kind", kind.Name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validated.", "kinds", len(r.kinds))
	return nil
}
