package nodeid

// PathSegment represents a single component of an address path, e.g., `name[index]`.
type PathSegment struct {
	Name  string
	Index int // -1 indicates no index is present.
}

// NewPathSegment creates a new path segment without an index.
func NewPathSegment(name string) PathSegment {
	return PathSegment{Name: name, Index: -1}
}

// NewPathSegmentWithIndex creates a new path segment that includes an index.
func NewPathSegmentWithIndex(name string, index int) PathSegment {
	return PathSegment{Name: name, Index: index}
}

// HasIndex returns true if the path segment has an explicit index.
func (ps PathSegment) HasIndex() bool {
	return ps.Index != -1
}

// Address is the structured representation of an identifier.
type Address struct {
	Path []PathSegment
}

// New builds an address from the given segments.
func New(segments ...PathSegment) *Address {
	path := make([]PathSegment, len(segments))
	copy(path, segments)
	return &Address{Path: path}
}

// Indexed builds the single-segment address `name[index]` used for nodes
// allocated in an arena.
func Indexed(name string, index int) *Address {
	return New(NewPathSegmentWithIndex(name, index))
}

// Named builds an unindexed address from plain names, e.g. Named("step", "ffm", "ctr").
func Named(names ...string) *Address {
	segments := make([]PathSegment, len(names))
	for i, n := range names {
		segments[i] = NewPathSegment(n)
	}
	return &Address{Path: segments}
}
