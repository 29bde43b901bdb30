// Package rules: domain partitioning.
//
// Domains group a flat word into contiguous runs whose members share the
// very same value cell for a chosen feature. Identity is reference identity
// of *segment.Cell, not structural equality of values: two independent cells
// holding equal values are different domains. For node features — which own
// no cell — two segments belong together when every defined descendant
// terminal is bound to the identical cell on both, with at least one bound.
package rules

import (
	"github.com/phonolab/phonoseg/feature"
	"github.com/phonolab/phonoseg/segment"
)

// partition splits segs into contiguous groups sharing a cell for
// domainFeat. An empty feature name yields the whole input as one group;
// empty input yields no groups. Segments where the feature is unbound form
// singleton groups — there is nothing for them to share.
// Complexity: O(n) for terminals, O(n·subtree) for node features.
func partition(reg *feature.Registry, domainFeat string, segs []segment.Segment) [][]segment.Segment {
	if len(segs) == 0 {
		return nil
	}
	if domainFeat == "" {
		return [][]segment.Segment{segs}
	}

	var groups [][]segment.Segment
	start := 0
	for i := 1; i <= len(segs); i++ {
		if i < len(segs) && sameCell(reg, domainFeat, segs[i-1], segs[i]) {
			continue
		}
		groups = append(groups, segs[start:i])
		start = i
	}

	return groups
}

// sameCell reports whether a and b share their value cell for feat.
func sameCell(reg *feature.Registry, feat string, a, b segment.Segment) bool {
	f, ok := reg.Get(feat)
	if !ok {
		return false
	}
	if f.Type != feature.Node {
		ra, rb := a.GetRef(feat), b.GetRef(feat)

		return ra != nil && ra == rb
	}

	// Node features: compare the identity of every descendant terminal's
	// cell; sharing requires at least one bound terminal.
	bound := false
	for _, term := range reg.Terminals(feat) {
		ra, rb := a.GetRef(term), b.GetRef(term)
		if ra != rb {
			return false
		}
		if ra != nil {
			bound = true
		}
	}

	return bound
}
