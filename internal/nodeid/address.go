package nodeid

import (
	"fmt"
	"strings"
)

// String serializes the Address into its canonical path string representation.
func (a *Address) String() string {
	if a == nil {
		return ""
	}

	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(segment.Name)
		if segment.HasIndex() {
			sb.WriteString(fmt.Sprintf("[%d]", segment.Index))
		}
	}

	return sb.String()
}

// Root returns the name of the first segment, or "" for an empty address.
func (a *Address) Root() string {
	if a == nil || len(a.Path) == 0 {
		return ""
	}
	return a.Path[0].Name
}

// Len returns the number of segments.
func (a *Address) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Path)
}

// Prefix returns a new address holding the first n segments. It panics if n
// exceeds the address length.
func (a *Address) Prefix(n int) *Address {
	return New(a.Path[:n]...)
}
