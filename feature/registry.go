// Package feature: Registry method implementations.
//
// This file provides the mutation and query surface of the Registry:
// Add/Drop, existence and hierarchy lookups, and the NumberForm/TextForm
// coercion pair used by segments when values are written and displayed.
package feature

import (
	"fmt"
	"sort"
	"strings"
)

// Add registers or replaces a feature.
//
// Validation:
//   - the name must be non-empty (ErrEmptyName);
//   - the type must be one of the four known types (ErrUnknownType);
//   - children may only be supplied for Node features (ErrNotNode);
//   - every child must already be registered (ErrUnknownFeature).
//
// Re-adding an existing name replaces its definition; children named by the
// new definition are reparented under it, and children of a replaced node
// that are no longer listed become parentless.
// Complexity: O(len(children)).
func (r *Registry) Add(f Feature) error {
	if f.Name == "" {
		return ErrEmptyName
	}
	if f.Type < Privative || f.Type > Node {
		return fmt.Errorf("feature: add %q: %w", f.Name, ErrUnknownType)
	}
	if len(f.Children) > 0 && f.Type != Node {
		return fmt.Errorf("feature: add %q: %w", f.Name, ErrNotNode)
	}
	for _, c := range f.Children {
		if _, ok := r.feats[c]; !ok {
			return fmt.Errorf("feature: add %q: child %q: %w", f.Name, c, ErrUnknownFeature)
		}
	}

	// Detach children of a previous definition under the same name.
	if old, ok := r.feats[f.Name]; ok {
		for _, c := range old.Children {
			if r.parent[c] == f.Name {
				delete(r.parent, c)
			}
		}
	}

	// Store a private copy of the children slice.
	stored := Feature{Name: f.Name, Type: f.Type}
	if len(f.Children) > 0 {
		stored.Children = append([]string(nil), f.Children...)
	}
	r.feats[f.Name] = stored

	// Reparent listed children, detaching them from any previous parent.
	for _, c := range stored.Children {
		if prev, ok := r.parent[c]; ok && prev != f.Name {
			r.removeChild(prev, c)
		}
		r.parent[c] = f.Name
	}

	return nil
}

// Drop removes the named features from the registry.
// Unknown names are ignored. Children of a dropped node remain registered
// but become parentless.
// Complexity: O(len(names) · degree).
func (r *Registry) Drop(names ...string) {
	for _, name := range names {
		f, ok := r.feats[name]
		if !ok {
			continue
		}
		// Detach from our parent's child list.
		if p, ok := r.parent[name]; ok {
			r.removeChild(p, name)
			delete(r.parent, name)
		}
		// Orphan our own children.
		for _, c := range f.Children {
			if r.parent[c] == name {
				delete(r.parent, c)
			}
		}
		delete(r.feats, name)
	}
}

// Exists reports whether a feature with the given name is registered.
// Complexity: O(1).
func (r *Registry) Exists(name string) bool {
	_, ok := r.feats[name]
	return ok
}

// Get returns the Feature record for name.
// Complexity: O(1).
func (r *Registry) Get(name string) (Feature, bool) {
	f, ok := r.feats[name]
	return f, ok
}

// Names returns all registered feature names, sorted for determinism.
// Complexity: O(n·log n).
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.feats))
	for name := range r.feats {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// ChildrenOf returns the direct children of a node feature, in declaration
// order. Terminal or unknown features yield nil.
// Complexity: O(degree).
func (r *Registry) ChildrenOf(name string) []string {
	f, ok := r.feats[name]
	if !ok || len(f.Children) == 0 {
		return nil
	}

	return append([]string(nil), f.Children...)
}

// ParentOf returns the parent node of a feature, if it has one.
// Complexity: O(1).
func (r *Registry) ParentOf(name string) (string, bool) {
	p, ok := r.parent[name]
	return p, ok
}

// Terminals returns the terminal (non-node) descendants of name in a stable
// depth-first order. A terminal feature yields itself. Unknown names yield
// nil.
// Complexity: O(subtree size).
func (r *Registry) Terminals(name string) []string {
	f, ok := r.feats[name]
	if !ok {
		return nil
	}
	if f.Type != Node {
		return []string{name}
	}
	var out []string
	for _, c := range f.Children {
		out = append(out, r.Terminals(c)...)
	}

	return out
}

// NumberForm coerces a raw value into the canonical form for the named
// feature.
//
// Coercion rules:
//   - Privative: truthy → true; falsy, "*" or nil → nil (undefined).
//   - Binary: true/"+"/non-zero → true; false/"-"/zero → false; nil/"*" → nil.
//   - Scalar: nil passes through; numbers normalize to float64; anything
//     else is kept as-is.
//   - Node: raw must be a map[string]Value; each entry naming a child is
//     coerced recursively, entries for non-children are rejected.
//
// Returns ErrUnknownFeature for unregistered names and ErrBadValue when the
// raw value cannot be interpreted.
func (r *Registry) NumberForm(name string, raw interface{}) (Value, error) {
	f, ok := r.feats[name]
	if !ok {
		return nil, fmt.Errorf("feature: number form %q: %w", name, ErrUnknownFeature)
	}

	switch f.Type {
	case Privative:
		return coercePrivative(name, raw)
	case Binary:
		return coerceBinary(name, raw)
	case Scalar:
		return coerceScalar(raw), nil
	case Node:
		return r.coerceNode(f, raw)
	default:
		return nil, fmt.Errorf("feature: number form %q: %w", name, ErrUnknownType)
	}
}

// TextForm renders a canonical value as the conventional display string.
//
//   - Privative: the feature name when present, "*" when undefined.
//   - Binary: "+", "-" or "*".
//   - Scalar: fmt.Sprint of the value, "*" when undefined.
//   - Node: a bracketed list of child TextForms, children sorted by name.
func (r *Registry) TextForm(name string, v Value) (string, error) {
	f, ok := r.feats[name]
	if !ok {
		return "", fmt.Errorf("feature: text form %q: %w", name, ErrUnknownFeature)
	}
	if v == nil {
		return "*", nil
	}

	switch f.Type {
	case Privative:
		return name, nil
	case Binary:
		if b, ok := v.(bool); ok && !b {
			return "-", nil
		}

		return "+", nil
	case Scalar:
		return fmt.Sprint(v), nil
	case Node:
		m, ok := v.(map[string]Value)
		if !ok {
			return "", fmt.Errorf("feature: text form %q: %w", name, ErrBadValue)
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			tf, err := r.TextForm(k, m[k])
			if err != nil {
				return "", err
			}
			parts = append(parts, k+"="+tf)
		}

		return "[" + strings.Join(parts, " ") + "]", nil
	default:
		return "", fmt.Errorf("feature: text form %q: %w", name, ErrUnknownType)
	}
}

// removeChild drops child from the stored child list of parent.
func (r *Registry) removeChild(parent, child string) {
	p, ok := r.feats[parent]
	if !ok {
		return
	}
	kept := p.Children[:0]
	for _, c := range p.Children {
		if c != child {
			kept = append(kept, c)
		}
	}
	p.Children = kept
	r.feats[parent] = p
}

// coercePrivative maps raw truthiness onto true/nil.
func coercePrivative(name string, raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		if v {
			return true, nil
		}

		return nil, nil
	case string:
		switch strings.TrimSpace(v) {
		case "", "*", "0", "-":
			return nil, nil
		default:
			return true, nil
		}
	default:
		n, ok := asFloat(raw)
		if !ok {
			return nil, fmt.Errorf("feature: number form %q: %w", name, ErrBadValue)
		}
		if n == 0 {
			return nil, nil
		}

		return true, nil
	}
}

// coerceBinary maps raw plus/minus synonyms onto true/false/nil.
func coerceBinary(name string, raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case bool:
		return v, nil
	case string:
		switch strings.TrimSpace(v) {
		case "*", "":
			return nil, nil
		case "+", "1":
			return true, nil
		case "-", "0":
			return false, nil
		default:
			return nil, fmt.Errorf("feature: number form %q: %w", name, ErrBadValue)
		}
	default:
		n, ok := asFloat(raw)
		if !ok {
			return nil, fmt.Errorf("feature: number form %q: %w", name, ErrBadValue)
		}

		return n != 0, nil
	}
}

// coerceScalar normalizes numbers to float64 and passes everything else
// through untouched.
func coerceScalar(raw interface{}) Value {
	if raw == nil {
		return nil
	}
	if n, ok := asFloat(raw); ok {
		return n
	}

	return raw
}

// coerceNode coerces a nested map per child, recursively.
func (r *Registry) coerceNode(f Feature, raw interface{}) (Value, error) {
	if raw == nil {
		return nil, nil
	}
	m, ok := raw.(map[string]Value)
	if !ok {
		return nil, fmt.Errorf("feature: number form %q: %w", f.Name, ErrBadValue)
	}
	isChild := make(map[string]bool, len(f.Children))
	for _, c := range f.Children {
		isChild[c] = true
	}
	out := make(map[string]Value, len(m))
	for k, v := range m {
		if !isChild[k] {
			return nil, fmt.Errorf("feature: number form %q: %q is not a child: %w", f.Name, k, ErrBadValue)
		}
		cv, err := r.NumberForm(k, v)
		if err != nil {
			return nil, err
		}
		out[k] = cv
	}

	return out, nil
}

// asFloat converts any Go numeric type to float64.
func asFloat(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
