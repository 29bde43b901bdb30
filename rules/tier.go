// Package rules: tier filtering.
package rules

import (
	"github.com/phonolab/phonoseg/feature"
	"github.com/phonolab/phonoseg/segment"
)

// tierView restricts one domain to the segments where tierFeat is defined
// and coalesces adjacent same-cell runs into pseudo-segments. Every
// resulting group becomes a segment.Tier, even groups of one. An empty
// feature name is the identity.
// Complexity: O(n · partition cost).
func tierView(reg *feature.Registry, tierFeat string, segs []segment.Segment) []segment.Segment {
	if tierFeat == "" {
		return segs
	}

	kept := make([]segment.Segment, 0, len(segs))
	for _, s := range segs {
		if s.Get(tierFeat) != nil {
			kept = append(kept, s)
		}
	}

	out := make([]segment.Segment, 0, len(kept))
	for _, group := range partition(reg, tierFeat, kept) {
		tier, err := segment.NewTier(group...)
		if err != nil {
			continue // unreachable: partition never yields empty groups
		}
		out = append(out, tier)
	}

	return out
}
