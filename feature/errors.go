package feature

import "errors"

// Sentinel errors for registry operations. Callers should branch with
// errors.Is; context is attached at the call site via %w wrapping.
var (
	// ErrEmptyName indicates a feature with an empty name was supplied.
	ErrEmptyName = errors.New("feature: feature name is empty")

	// ErrUnknownType indicates a Type value outside the known enum.
	ErrUnknownType = errors.New("feature: unknown feature type")

	// ErrUnknownFeature indicates an operation referenced an unregistered feature.
	ErrUnknownFeature = errors.New("feature: unknown feature")

	// ErrNotNode indicates children were supplied for a terminal feature.
	ErrNotNode = errors.New("feature: children are only allowed on node features")

	// ErrBadValue indicates a raw value that cannot be coerced to the feature's type.
	ErrBadValue = errors.New("feature: value cannot be coerced to feature type")
)
