// Package phonoseg models phonological segments as bundles of typed,
// hierarchically related features and applies ordered rewrite rules over
// sequences of such segments.
//
// 🚀 What is phonoseg?
//
//	A pure-Go, in-memory library that brings together:
//		• Feature trees: privative, binary, scalar and node features with
//		  parent/child structure and value coercion
//		• Segments: feature bundles whose values live in aliasable cells,
//		  so two segments can literally share one value
//		• Tiers & domains: views of a word restricted to a feature, with
//		  contiguous same-cell runs collapsed into pseudo-segments
//		• Rules: predicate + action pairs walked across a word by a
//		  rotating cursor, with deferred insertion/deletion and optional
//		  transactional rollback
//		• Rule sets: named collections with ordering and persistent rules,
//		  applied as whole derivations
//
// ✨ Why choose phonoseg?
//
//   - Deterministic – single-threaded, synchronous rule application with
//     well-defined cleanup semantics
//   - Explicit aliasing – sharing a value cell is the membership test for
//     tiers and domains, not an implementation accident
//   - Pure Go – no cgo, no hidden deps
//
// Everything is organized under three subpackages:
//
//	feature/ — the typed feature hierarchy, coercion and YAML loading
//	segment/ — value cells, feature bundles, tiers and boundary sentinels
//	rules/   — the rewrite engine: windows, domains, cleanup, scheduling
//
// Quick sketch of a derivation:
//
//	word:  [b] [a] [n] [d]
//	rule:  "final devoicing", rightward
//	where: next position is a word boundary
//	do:    set voice to "-" on the focused segment
//
// Dive into the examples/ directory for runnable scenarios.
//
//	go get github.com/phonolab/phonoseg
package phonoseg
