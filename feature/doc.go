// Package feature defines the typed, hierarchical feature registry that
// phonoseg segments are built against.
//
// A feature is a named property with one of four types:
//
//   - Privative — present or absent; canonical values are true and nil.
//   - Binary    — plus, minus, or unset; canonical values are true, false, nil.
//     Textual synonyms "+", "-" and "*" are accepted on input.
//   - Scalar    — any value; numbers are normalized to float64.
//   - Node      — a grouping feature whose "value" is always the aggregate of
//     its defined descendants. Nodes never store a value of their own.
//
// The Registry keeps the name→Feature map together with parent backlinks, so
// both ChildrenOf and ParentOf are O(1) lookups. Value coercion between the
// textual and canonical numeric representations is provided by NumberForm and
// TextForm.
//
// Feature sets can be built programmatically with Add, or declaratively from
// a YAML document via LoadYAML. Default returns a registry preloaded with a
// conventional phonological hierarchy (ROOT, Place, Labial, Coronal, Dorsal,
// Laryngeal and their terminals).
//
// Errors:
//
//	ErrEmptyName      - feature name is the empty string.
//	ErrUnknownType    - feature type is not one of the four known types.
//	ErrUnknownFeature - operation referenced a feature that is not registered.
//	ErrNotNode        - children were supplied for a non-node feature.
//	ErrBadValue       - a raw value cannot be coerced to the feature's type.
package feature
