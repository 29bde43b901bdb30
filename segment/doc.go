// Package segment provides the data model the phonoseg rule engine operates
// on: aliasable value cells, feature bundles, tier views and boundary
// sentinels.
//
// The one idea everything here rests on is the Cell. A Cell is a single unit
// of storage for one feature value, and two segments may bind the same Cell
// for the same feature. Writing *by value* mutates the cell in place, so the
// change is visible through every segment sharing it; writing *by reference*
// (passing a *Cell to Set) rebinds which cell a segment's feature points to,
// changing sharing without touching the pointee. This aliasing is not an
// implementation accident — "do these two segments share a cell for feature
// X" is the membership test tiers and domains are built from.
//
// Three Segment implementations exist:
//
//   - Bundle   — an ordinary segment: a feature-name→Cell binding map backed
//     by a feature.Registry for coercion and node aggregation.
//   - Tier     — a pseudo-segment: a read/write façade over an ordered run
//     of member segments. Writes broadcast to every member; reads return the
//     agreed value, or nil when members disagree.
//   - Boundary — an immutable sentinel that is always "at the edge". It
//     carries exactly one marker feature and ignores all mutation.
//
// Node features never own a cell: their value is always synthesized from the
// defined descendants at read time, and reads of an empty aggregate yield
// nil.
//
// Errors:
//
//	ErrEmptyTier   - a Tier was constructed with zero members.
//	ErrNodeBinding - a cell operation was attempted on a node feature.
package segment
