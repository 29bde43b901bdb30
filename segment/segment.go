// Package segment: the Segment interface and the Bundle implementation.
//
// A Bundle's identity is its own binding map; two bundles are never "equal",
// only their cells can be shared. Node features are synthesized on read from
// the defined descendants and are never stored.
package segment

import (
	"fmt"

	"github.com/phonolab/phonoseg/feature"
)

// Segment is the unit the rule engine walks over. It is implemented by
// *Bundle (ordinary segments), *Tier (pseudo-segments over a run of members)
// and *Boundary (immutable edge sentinels).
type Segment interface {
	// Get returns the value bound for the named feature, or nil if the
	// feature is unknown or unset. Node features read as the aggregate of
	// their defined descendants.
	Get(name string) feature.Value

	// GetRef returns the cell currently bound for a terminal feature, or
	// nil when the feature is unknown, unbound, or a node.
	GetRef(name string) *Cell

	// Set writes a value. A raw value is coerced via the registry and
	// written into the currently bound cell (preserving sharing); a *Cell
	// argument rebinds the feature to that cell instead.
	Set(name string, v interface{}) error

	// Delink removes this segment's own bindings for the named features
	// without touching cell contents or other segments sharing them.
	Delink(names ...string)

	// Clear removes all bindings.
	Clear()

	// AllValues enumerates the explicitly bound features and their values.
	// Features never touched are absent from the map.
	AllValues() map[string]feature.Value

	// IsBoundary reports whether this segment is an edge sentinel.
	IsBoundary() bool
}

// Bundle is an ordinary segment: a mapping from feature name to value cell,
// validated and coerced against a feature.Registry.
type Bundle struct {
	reg   *feature.Registry
	cells map[string]*Cell
}

// New creates an empty Bundle backed by reg.
// Complexity: O(1).
func New(reg *feature.Registry) *Bundle {
	return &Bundle{
		reg:   reg,
		cells: make(map[string]*Cell),
	}
}

// Registry returns the feature registry this bundle validates against.
func (b *Bundle) Registry() *feature.Registry {
	return b.reg
}

// Get returns the value for name, or nil. Unknown features fail silently.
// Node features aggregate their defined children recursively; an empty
// aggregate reads as nil.
// Complexity: O(1) for terminals, O(subtree) for nodes.
func (b *Bundle) Get(name string) feature.Value {
	f, ok := b.reg.Get(name)
	if !ok {
		return nil
	}
	if f.Type == feature.Node {
		return b.nodeValue(f)
	}
	c, ok := b.cells[name]
	if !ok {
		return nil
	}

	return c.Value()
}

// GetRef returns the aliasable cell handle bound for a terminal feature.
// Unknown, unbound and node features yield nil; GetRef never creates a
// binding as a side effect.
// Complexity: O(1).
func (b *Bundle) GetRef(name string) *Cell {
	f, ok := b.reg.Get(name)
	if !ok || f.Type == feature.Node {
		return nil
	}

	return b.cells[name]
}

// Set writes a value for name.
//
// Three shapes are accepted:
//   - a *Cell rebinds this bundle's feature to that cell, establishing or
//     breaking sharing without mutating the pointee (ErrNodeBinding for
//     node features);
//   - a raw value for a terminal feature is coerced via the registry's
//     NumberForm and written into the currently bound cell in place, so
//     every alias observes it (a fresh cell is bound if none exists yet);
//   - a raw value for a node feature must be a map and is recursed per
//     child.
//
// Unknown features are an error, unlike Get's silent nil.
func (b *Bundle) Set(name string, v interface{}) error {
	f, ok := b.reg.Get(name)
	if !ok {
		return fmt.Errorf("segment: set %q: %w", name, feature.ErrUnknownFeature)
	}

	// Rebind by reference.
	if cell, isRef := v.(*Cell); isRef {
		if f.Type == feature.Node {
			return fmt.Errorf("segment: set %q: %w", name, ErrNodeBinding)
		}
		b.cells[name] = cell

		return nil
	}

	// Node features recurse per child; they own no cell.
	if f.Type == feature.Node {
		if v == nil {
			return nil
		}
		m, isMap := v.(map[string]feature.Value)
		if !isMap {
			return fmt.Errorf("segment: set %q: %w", name, feature.ErrBadValue)
		}
		for _, child := range f.Children {
			cv, present := m[child]
			if !present {
				continue
			}
			if err := b.Set(child, cv); err != nil {
				return err
			}
		}

		return nil
	}

	// Terminal write by value: coerce, then mutate the current cell in
	// place so aliases stay intact.
	canon, err := b.reg.NumberForm(name, v)
	if err != nil {
		return fmt.Errorf("segment: set %q: %w", name, err)
	}
	if c, bound := b.cells[name]; bound {
		c.SetValue(canon)
	} else {
		b.cells[name] = NewCell(canon)
	}

	return nil
}

// Delink removes this bundle's own bindings for the named features. Cell
// contents and other segments sharing those cells are unaffected. Delinking
// a node feature delinks its whole subtree.
// Complexity: O(len(names) · subtree).
func (b *Bundle) Delink(names ...string) {
	for _, name := range names {
		f, ok := b.reg.Get(name)
		if !ok {
			continue
		}
		if f.Type == feature.Node {
			b.Delink(f.Children...)
			continue
		}
		delete(b.cells, name)
	}
}

// Clear removes all bindings. A cleared segment is dropped from the word by
// the engine's cleanup pass.
// Complexity: O(1).
func (b *Bundle) Clear() {
	b.cells = make(map[string]*Cell)
}

// AllValues returns a snapshot of the explicitly bound features and their
// current values. Features never touched are absent; a bound cell holding
// nil is reported with a nil value.
// Complexity: O(bindings).
func (b *Bundle) AllValues() map[string]feature.Value {
	out := make(map[string]feature.Value, len(b.cells))
	for name, c := range b.cells {
		out[name] = c.Value()
	}

	return out
}

// IsBoundary reports false: bundles are never sentinels.
func (b *Bundle) IsBoundary() bool { return false }

// Bindings returns a copy of the live feature→cell binding map. It exists
// for the engine's snapshot/restore machinery; the cells themselves are the
// live ones, not copies.
func (b *Bundle) Bindings() map[string]*Cell {
	out := make(map[string]*Cell, len(b.cells))
	for name, c := range b.cells {
		out[name] = c
	}

	return out
}

// SetBindings replaces the binding map wholesale. The engine's rollback uses
// this to restore a snapshot; ordinary callers should use Set and Delink.
func (b *Bundle) SetBindings(m map[string]*Cell) {
	b.cells = make(map[string]*Cell, len(m))
	for name, c := range m {
		b.cells[name] = c
	}
}

// nodeValue synthesizes the aggregate for a node feature: every child with
// a defined value contributes an entry. An empty aggregate is nil.
func (b *Bundle) nodeValue(f feature.Feature) feature.Value {
	var out map[string]feature.Value
	for _, child := range f.Children {
		v := b.Get(child)
		if v == nil {
			continue
		}
		if out == nil {
			out = make(map[string]feature.Value)
		}
		out[child] = v
	}
	if out == nil {
		return nil
	}

	return out
}
