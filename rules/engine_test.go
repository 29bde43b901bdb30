package rules_test

import (
	"testing"

	"github.com/phonolab/phonoseg/feature"
	"github.com/phonolab/phonoseg/rules"
	"github.com/phonolab/phonoseg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSet is a require-wrapped RuleSet constructor.
func newSet(t testing.TB, reg *feature.Registry) *rules.RuleSet {
	t.Helper()
	rs, err := rules.NewRuleSet(reg)
	require.NoError(t, err)

	return rs
}

// TestApply_DirectionalSymmetry: deleting the final-position segment
// rightward mirrors deleting the initial-position segment leftward.
func TestApply_DirectionalSymmetry(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)

	require.NoError(t, rs.Add("drop-final", rules.Spec{
		Where: func(w *rules.Window) bool { return w.At(1).IsBoundary() },
		Do:    func(w *rules.Window) { w.Focus().Clear() },
	}))
	require.NoError(t, rs.Add("drop-initial", rules.Spec{
		Direction: "leftward",
		Where:     func(w *rules.Window) bool { return w.At(-1).IsBoundary() },
		Do:        func(w *rules.Window) { w.Focus().Clear() },
	}))

	band := func() []segment.Segment {
		return word(seg(t, reg, "b", nil), seg(t, reg, "a", nil), seg(t, reg, "n", nil), seg(t, reg, "d", nil))
	}

	out, n, err := rs.Apply("drop-final", band())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"b", "a", "n"}, syms(out))

	out, n, err = rs.Apply("drop-initial", band())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"a", "n", "d"}, syms(out))
}

// TestApply_InsertionOrdering: an insert-left lands between the neighbors,
// preserving relative order.
func TestApply_InsertionOrdering(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)

	require.NoError(t, rs.Add("epenthesize", rules.Spec{
		Where: func(w *rules.Window) bool { return w.Focus().Get("sym") == "y" },
		Do: func(w *rules.Window) {
			w.InsertLeft(0, seg(t, reg, "NEW", nil))
		},
	}))

	out, n, err := rs.Apply("epenthesize", word(seg(t, reg, "x", nil), seg(t, reg, "y", nil), seg(t, reg, "z", nil)))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"x", "NEW", "y", "z"}, syms(out))
}

// TestApply_InsertRight mirrors the ordering check on the other side.
func TestApply_InsertRight(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)

	require.NoError(t, rs.Add("suffix", rules.Spec{
		Where: func(w *rules.Window) bool { return w.At(1).IsBoundary() },
		Do:    func(w *rules.Window) { w.InsertRight(0, seg(t, reg, "NEW", nil)) },
	}))

	out, _, err := rs.Apply("suffix", word(seg(t, reg, "x", nil), seg(t, reg, "y", nil)))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "NEW"}, syms(out))
}

// TestApply_BoundariesNeverFocused: the walk never presents a boundary at
// offset 0, while boundaries remain visible at nonzero offsets.
func TestApply_BoundariesNeverFocused(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)

	var focused []string
	sawEdge := false
	require.NoError(t, rs.Add("observe", rules.Spec{
		Where: func(w *rules.Window) bool {
			require.False(t, w.Focus().IsBoundary(), "offset 0 must never be a boundary")
			if w.At(-1).IsBoundary() || w.At(1).IsBoundary() {
				sawEdge = true
			}
			focused = append(focused, w.Focus().Get("sym").(string))

			return false
		},
	}))

	_, n, err := rs.Apply("observe", word(seg(t, reg, "a", nil), seg(t, reg, "b", nil)))
	require.NoError(t, err)
	assert.Zero(t, n, "a false Where must not count as an application")
	assert.Equal(t, []string{"a", "b"}, focused, "rightward visits in word order")
	assert.True(t, sawEdge, "boundaries are visible at nonzero offsets")
}

// TestApply_LeftwardVisitsReversed confirms the mirror walk order.
func TestApply_LeftwardVisitsReversed(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)

	var focused []string
	require.NoError(t, rs.Add("observe", rules.Spec{
		Direction: "Leftward",
		Where: func(w *rules.Window) bool {
			focused = append(focused, w.Focus().Get("sym").(string))
			return false
		},
	}))

	_, _, err := rs.Apply("observe", word(seg(t, reg, "a", nil), seg(t, reg, "b", nil), seg(t, reg, "c", nil)))
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, focused)
}

// TestApply_EmptyWord is a no-op returning zero and empty.
func TestApply_EmptyWord(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)
	require.NoError(t, rs.Add("anything", rules.Spec{
		Do: func(w *rules.Window) { w.Focus().Clear() },
	}))

	out, n, err := rs.Apply("anything", nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, out)
}

// TestApply_IdempotentDelink: clearing an already-absent feature leaves
// every segment's AllValues untouched.
func TestApply_IdempotentDelink(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)
	require.NoError(t, rs.Add("denasalize", rules.Spec{
		Do: func(w *rules.Window) { w.Focus().Delink("nasal") },
	}))

	w := word(seg(t, reg, "a", map[string]interface{}{"voice": "+"}), seg(t, reg, "b", nil))
	before := snapshotWord(w)

	out, n, err := rs.Apply("denasalize", w)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "the rule still applies at every position")
	assert.Equal(t, before, snapshotWord(out), "re-clearing an absent feature changes nothing")
}

// TestApply_Domains: each shared-cell run is walked independently, so a
// "last in domain" rule fires once per domain.
func TestApply_Domains(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)

	s0 := seg(t, reg, "p", map[string]interface{}{"voice": "-"})
	s1 := seg(t, reg, "t", nil)
	require.NoError(t, s1.Set("voice", s0.GetRef("voice"))) // s0,s1 one domain
	s2 := seg(t, reg, "k", map[string]interface{}{"voice": "-"})

	require.NoError(t, rs.Add("mark-domain-final", rules.Spec{
		Domain: "voice",
		Where:  func(w *rules.Window) bool { return w.At(1).IsBoundary() },
		Do: func(w *rules.Window) {
			require.NoError(t, w.Focus().Set("nasal", true))
		},
	}))

	out, n, err := rs.Apply("mark-domain-final", word(s0, s1, s2))
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one domain-final position per domain")
	assert.Nil(t, out[0].Get("nasal"))
	assert.Equal(t, true, out[1].Get("nasal"), "s1 ends the first domain")
	assert.Equal(t, true, out[2].Get("nasal"), "s2 ends the second domain")
}

// TestApply_TierWalk: with a tier configured, the cursor walks
// pseudo-segments over the defined run and writes broadcast to members.
func TestApply_TierWalk(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)

	v1 := seg(t, reg, "i", map[string]interface{}{"vocoid": true})
	c1 := seg(t, reg, "t", nil)
	v2 := seg(t, reg, "u", map[string]interface{}{"vocoid": true})

	var visited int
	require.NoError(t, rs.Add("raise-last-vowel", rules.Spec{
		Tier: "vocoid",
		Where: func(w *rules.Window) bool {
			visited++
			return w.At(1).IsBoundary()
		},
		Do: func(w *rules.Window) {
			require.NoError(t, w.Focus().Set("high", "+"))
		},
	}))

	out, n, err := rs.Apply("raise-last-vowel", word(v1, c1, v2))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, visited, "the consonant is invisible on the vocoid tier")
	assert.Equal(t, []string{"i", "t", "u"}, syms(out), "tiering never reorders the word")
	assert.Nil(t, v1.Get("high"))
	assert.Equal(t, true, v2.Get("high"), "the tier write reaches the member bundle")
}

// TestApply_TierCoalescedUnit: a shared-cell run is one pseudo-segment, so
// the walk sees one position and writes reach every member.
func TestApply_TierCoalescedUnit(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)

	v1 := seg(t, reg, "a", map[string]interface{}{"vocoid": true})
	v2 := seg(t, reg, "a", nil)
	require.NoError(t, v2.Set("vocoid", v1.GetRef("vocoid")))

	var visited int
	require.NoError(t, rs.Add("nasalize-vowels", rules.Spec{
		Tier: "vocoid",
		Where: func(w *rules.Window) bool {
			visited++
			return true
		},
		Do: func(w *rules.Window) {
			require.NoError(t, w.Focus().Set("nasal", true))
		},
	}))

	_, n, err := rs.Apply("nasalize-vowels", word(v1, v2))
	require.NoError(t, err)
	assert.Equal(t, 1, visited, "the coalesced run is a single position")
	assert.Equal(t, 1, n)
	assert.Equal(t, true, v1.Get("nasal"))
	assert.Equal(t, true, v2.Get("nasal"))
}

// TestApply_TierInsertion: insertions staged on a pseudo-segment anchor at
// its edge members in the flat word.
func TestApply_TierInsertion(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)

	v1 := seg(t, reg, "a", map[string]interface{}{"vocoid": true})
	v2 := seg(t, reg, "o", nil)
	require.NoError(t, v2.Set("vocoid", v1.GetRef("vocoid")))
	c := seg(t, reg, "t", nil)

	require.NoError(t, rs.Add("onset", rules.Spec{
		Tier: "vocoid",
		Do:   func(w *rules.Window) { w.InsertLeft(0, seg(t, reg, "G", nil)) },
	}))

	out, _, err := rs.Apply("onset", word(v1, v2, c))
	require.NoError(t, err)
	assert.Equal(t, []string{"G", "a", "o", "t"}, syms(out),
		"an insert-left on a tier lands before its first member")
}

// TestApply_Filter: positions failing the filter predicate disappear from
// the walk, and the window collapses around them.
func TestApply_Filter(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)

	a := seg(t, reg, "a", map[string]interface{}{"voice": "+"})
	b := seg(t, reg, "b", nil)
	c := seg(t, reg, "c", map[string]interface{}{"voice": "-"})

	var pairs [][2]string
	require.NoError(t, rs.Add("voiced-neighbors", rules.Spec{
		Filter: func(w *rules.Window) bool { return w.Focus().Get("voice") != nil },
		Where: func(w *rules.Window) bool {
			right := "#"
			if !w.At(1).IsBoundary() {
				right = w.At(1).Get("sym").(string)
			}
			pairs = append(pairs, [2]string{w.Focus().Get("sym").(string), right})

			return false
		},
	}))

	out, _, err := rs.Apply("voiced-neighbors", word(a, b, c))
	require.NoError(t, err)
	assert.Equal(t, [][2]string{{"a", "c"}, {"c", "#"}}, pairs,
		"the filtered-out segment is invisible; a's right neighbor is c")
	assert.Equal(t, []string{"a", "b", "c"}, syms(out), "filtering is a view, not a deletion")
}

// TestApply_WordErrors covers malformed-word rejection with no mutation.
func TestApply_WordErrors(t *testing.T) {
	reg := testRegistry(t)
	rs := newSet(t, reg)
	require.NoError(t, rs.Add("noop", rules.Spec{}))

	_, _, err := rs.Apply("noop", []segment.Segment{nil})
	assert.ErrorIs(t, err, rules.ErrNilSegment)

	_, _, err = rs.Apply("noop", []segment.Segment{badSegment{}})
	assert.ErrorIs(t, err, rules.ErrBadSegment)

	_, _, err = rs.Apply("missing", nil)
	assert.ErrorIs(t, err, rules.ErrUnknownRule)
}

// badSegment is an out-of-package Segment implementation the engine must
// refuse: it cannot participate in snapshots or cleanup bookkeeping.
type badSegment struct{}

func (badSegment) Get(string) feature.Value            { return nil }
func (badSegment) GetRef(string) *segment.Cell         { return nil }
func (badSegment) Set(string, interface{}) error       { return nil }
func (badSegment) Delink(...string)                    {}
func (badSegment) Clear()                              {}
func (badSegment) AllValues() map[string]feature.Value { return nil }
func (badSegment) IsBoundary() bool                    { return false }
