// Package feature: core types for the feature hierarchy.
//
// This file declares the Type enum, the canonical Value alias, the Feature
// record, the Registry container and its constructors.
package feature

import (
	"fmt"
	"strings"
)

// Type classifies how a feature's values behave.
type Type int

const (
	// Privative features are either present (true) or absent (nil).
	Privative Type = iota

	// Binary features are plus (true), minus (false) or unset (nil).
	Binary

	// Scalar features hold arbitrary values; numbers normalize to float64.
	Scalar

	// Node features aggregate their children and never store values directly.
	Node
)

// String returns the lowercase textual name of the type.
func (t Type) String() string {
	switch t {
	case Privative:
		return "privative"
	case Binary:
		return "binary"
	case Scalar:
		return "scalar"
	case Node:
		return "node"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType converts a textual type name (case-insensitive) into a Type.
// Returns ErrUnknownType for anything outside the four known names.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "privative":
		return Privative, nil
	case "binary":
		return Binary, nil
	case "scalar":
		return Scalar, nil
	case "node":
		return Node, nil
	default:
		return 0, fmt.Errorf("feature: parse type %q: %w", s, ErrUnknownType)
	}
}

// Value is the canonical representation of a feature value.
//
// Terminal features hold true/false/nil (privative, binary), or any scalar
// (numbers normalized to float64). Node features read as map[string]Value
// aggregates and are never stored. nil always means "undefined".
type Value = interface{}

// Feature describes one entry of the hierarchy.
//
// Children is meaningful only when Type == Node; for terminal features it
// must be empty.
type Feature struct {
	// Name uniquely identifies this feature within its Registry.
	Name string

	// Type controls value coercion and node aggregation.
	Type Type

	// Children lists the direct child feature names (Node only).
	Children []string
}

// Registry is the in-memory feature hierarchy.
//
// It maintains the name→Feature map plus parent backlinks so parent/child
// queries are O(1). A Registry is not safe for concurrent mutation.
type Registry struct {
	feats  map[string]Feature
	parent map[string]string // child name → parent node name
}

// New creates an empty Registry.
// Complexity: O(1).
func New() *Registry {
	return &Registry{
		feats:  make(map[string]Feature),
		parent: make(map[string]string),
	}
}
