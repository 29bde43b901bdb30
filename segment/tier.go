// Package segment: the Tier pseudo-segment.
//
// A Tier has no storage of its own — its identity is the ordered list of
// member segments it wraps. Every operation is broadcast to all members and
// the results are unified. Tiers are created transiently per rule
// application and never persisted.
package segment

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/phonolab/phonoseg/feature"
)

// TierMarker is the single synthetic feature a Tier reports from AllValues,
// so downstream cleanup never treats a tier view as empty.
const TierMarker = "TIER"

// Tier is a read/write façade over an ordered, non-empty run of segments.
type Tier struct {
	members []Segment
}

// NewTier wraps the given members. Zero members is an error; a single member
// still yields a (trivial) tier.
func NewTier(members ...Segment) (*Tier, error) {
	if len(members) == 0 {
		return nil, ErrEmptyTier
	}
	t := &Tier{members: make([]Segment, len(members))}
	copy(t.members, members)

	return t, nil
}

// Members returns the underlying run, in order. The slice is a copy; the
// segments are the live ones.
func (t *Tier) Members() []Segment {
	out := make([]Segment, len(t.members))
	copy(out, t.members)

	return out
}

// Get returns the single agreed-upon value across all members, or nil when
// any two members disagree (loose equality after unwrapping nil).
func (t *Tier) Get(name string) feature.Value {
	v := t.members[0].Get(name)
	for _, m := range t.members[1:] {
		if !reflect.DeepEqual(v, m.Get(name)) {
			return nil
		}
	}

	return v
}

// GetRef returns the one cell every member binds for name, or nil when the
// members are not all bound to the same cell.
func (t *Tier) GetRef(name string) *Cell {
	c := t.members[0].GetRef(name)
	for _, m := range t.members[1:] {
		if m.GetRef(name) != c {
			return nil
		}
	}

	return c
}

// Set broadcasts the write to every member with the same argument. All
// members are attempted; failures are joined.
func (t *Tier) Set(name string, v interface{}) error {
	var errs []error
	for _, m := range t.members {
		if err := m.Set(name, v); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("segment: tier set %q: %w", name, errors.Join(errs...))
	}

	return nil
}

// Delink broadcasts to every member.
func (t *Tier) Delink(names ...string) {
	for _, m := range t.members {
		m.Delink(names...)
	}
}

// Clear broadcasts to every member.
func (t *Tier) Clear() {
	for _, m := range t.members {
		m.Clear()
	}
}

// AllValues is fixed to the single TierMarker entry: a tier represents a
// non-empty run regardless of what its members currently hold.
func (t *Tier) AllValues() map[string]feature.Value {
	return map[string]feature.Value{TierMarker: true}
}

// IsBoundary reports false: tiers wrap real segments.
func (t *Tier) IsBoundary() bool { return false }
