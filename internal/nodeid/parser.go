package nodeid

import (
	"fmt"
	"regexp"
)

// nameRegex matches a bare segment name.
var nameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateName checks that name can be used as a single segment.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("segment name cannot be empty")
	}
	if !nameRegex.MatchString(name) || name == "-" {
		return fmt.Errorf("invalid segment name: %q", name)
	}
	return nil
}
