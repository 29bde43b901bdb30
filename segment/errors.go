package segment

import "errors"

var (
	// ErrEmptyTier indicates a Tier was constructed with no members.
	ErrEmptyTier = errors.New("segment: tier requires at least one member")

	// ErrNodeBinding indicates a cell-level operation on a node feature,
	// which has no cell of its own.
	ErrNodeBinding = errors.New("segment: node features have no cell of their own")
)
