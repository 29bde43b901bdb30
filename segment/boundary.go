package segment

import "github.com/phonolab/phonoseg/feature"

// BoundaryFeature is the marker feature every Boundary carries, fixed to
// true. It does not need to be registered: boundaries answer for it
// directly.
const BoundaryFeature = "BOUNDARY"

// Boundary is the immutable sentinel segment marking the edge of a word or
// domain. It carries exactly one feature and ignores all mutation, so one
// instance may be reused across many applications.
type Boundary struct{}

// NewBoundary returns a boundary sentinel.
func NewBoundary() *Boundary {
	return &Boundary{}
}

// Get returns true for the marker feature and nil for everything else.
func (*Boundary) Get(name string) feature.Value {
	if name == BoundaryFeature {
		return true
	}

	return nil
}

// GetRef returns nil: the marker is not backed by an aliasable cell.
func (*Boundary) GetRef(string) *Cell { return nil }

// Set is a no-op.
func (*Boundary) Set(string, interface{}) error { return nil }

// Delink is a no-op.
func (*Boundary) Delink(...string) {}

// Clear is a no-op.
func (*Boundary) Clear() {}

// AllValues returns exactly the marker binding.
func (*Boundary) AllValues() map[string]feature.Value {
	return map[string]feature.Value{BoundaryFeature: true}
}

// IsBoundary reports true.
func (*Boundary) IsBoundary() bool { return true }
