// Package rules implements the phonoseg rewrite engine: ordered rules walked
// across a word of segments by a rotating cursor, with deferred structural
// mutation and optional transactional rollback.
//
// # The window
//
// The engine never hands callbacks an index into the word. Instead it builds
// a cyclic window per domain — the domain's segments with a Boundary sentinel
// on each side — and keeps the "current" segment at offset 0. Callbacks read
// neighbors with fixed relative offsets: At(-1) is always the segment to the
// left, At(1) the one to the right, regardless of where in the word the
// cursor currently is and regardless of direction. A rightward rule starts at
// the first real segment and advances right; a leftward rule starts at the
// last and advances left. The walk ends exactly when offset 0 is a boundary,
// so a boundary is never the focused segment — though callbacks may inspect
// boundaries at nonzero offsets.
//
// # Structural mutation is deferred
//
// A do-callback mutates feature values directly, but it cannot splice the
// word. The only structural channels are:
//
//   - Window.InsertLeft / Window.InsertRight — stage a newly built segment
//     to be placed beside an existing one (one staged segment per side);
//   - Segment.Clear — a segment reduced to no defined features is dropped.
//
// Staged insertions and cleared segments are materialized by a cleanup pass:
// for each segment in original order, emit its staged left insert, itself if
// any feature is still defined, then its staged right insert. Cleanup runs
// once at the end of an application — or eagerly inside the transactional
// region, see below.
//
// # Domains, tiers, filters
//
// A rule may restrict what the cursor walks:
//
//   - Domain: the word is partitioned into contiguous runs whose members
//     share the very same value cell for the domain feature (reference
//     identity, not structural equality); each run is walked independently.
//   - Tier: segments where the tier feature is undefined are skipped, and
//     adjacent survivors sharing one cell collapse into a single
//     pseudo-segment (segment.Tier), addressed as one unit.
//   - Filter: an arbitrary predicate over the centered window; failing
//     positions are removed before the walk (boundaries always pass).
//
// # Transactional application
//
// When a rule carries a Result post-condition, each matching position runs
// inside a transaction: the window's segments are snapshotted (pure value
// copies of bindings and cell contents), Do runs, staged mutations are
// materialized, and Result is evaluated on the cleaned window. A false
// Result rolls everything back — bindings, cell values, staged insertions,
// the working sequence — leaving the word bit-for-bit as before that
// position, and the application counter untouched.
//
// # Scheduling
//
// RuleSet holds named rules plus an order (a sequence of groups) and a
// persist list. ApplyAll runs persist, group 1, persist, group 2, …,
// persist, accumulating per-rule application counts.
//
// Errors:
//
//	ErrBadDirection - direction string is neither "rightward" nor "leftward".
//	ErrEmptyRuleName - a rule was registered under the empty name.
//	ErrUnknownRule  - apply/change referenced an unregistered rule.
//	ErrNilSegment   - the word contains a nil entry.
//	ErrBadSegment   - the word contains an unrecognized segment type.
package rules
