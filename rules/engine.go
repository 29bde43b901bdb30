// Package rules: the rule-application state machine.
//
// applyOne drives one rule across one word: partition into domains, build a
// tiered/filtered window per domain, walk it in the rule's direction, run
// the Where/Do/Result cycle at each position, then materialize deferred
// structural changes in a final cleanup pass over the whole word.
package rules

import (
	"github.com/phonolab/phonoseg/feature"
	"github.com/phonolab/phonoseg/segment"
)

// slot holds the two deferred-insertion positions one word segment may
// carry during a single application: one new segment to its left, one to
// its right.
type slot struct {
	left  segment.Segment
	right segment.Segment
}

// application is the per-Apply state: the evolving word, the staged
// insertion slots keyed by segment identity, and the match counter. It is
// created for one applyOne call and discarded afterwards — nothing here
// outlives the application or leaks into a global table.
type application struct {
	reg   *feature.Registry
	rule  *Rule
	word  []segment.Segment
	slots map[segment.Segment]*slot
	count int
}

// slotFor returns (creating on demand) the slot pair for a segment.
func (a *application) slotFor(s segment.Segment) *slot {
	sl, ok := a.slots[s]
	if !ok {
		sl = &slot{}
		a.slots[s] = sl
	}

	return sl
}

// applyOne applies r to word and returns the (possibly different-length)
// output word together with the number of positions at which the rule
// committed. The input slice is not modified; the segments it holds are
// mutated in place by Do callbacks, as the aliasing model requires.
func applyOne(reg *feature.Registry, r *Rule, word []segment.Segment) ([]segment.Segment, int, error) {
	if err := validateWord(word); err != nil {
		return nil, 0, err
	}
	if len(word) == 0 {
		return []segment.Segment{}, 0, nil
	}

	a := &application{
		reg:   reg,
		rule:  r,
		word:  append([]segment.Segment(nil), word...),
		slots: make(map[segment.Segment]*slot),
	}

	for _, dom := range partition(reg, r.domain, word) {
		a.walkDomain(r, dom)
	}

	return a.cleanup(), a.count, nil
}

// walkDomain runs the cursor loop over one domain.
func (a *application) walkDomain(r *Rule, dom []segment.Segment) {
	work := tierView(a.reg, r.tier, dom)

	ring := make([]segment.Segment, 0, len(work)+2)
	ring = append(ring, segment.NewBoundary())
	ring = append(ring, work...)
	ring = append(ring, segment.NewBoundary())

	w := &Window{ring: ring, app: a}
	if r.filter != nil {
		w.applyFilter(r.filter)
	}

	// Starting position: rightward focuses the first real segment,
	// leftward the last. With no real segments the focus lands on a
	// boundary immediately and the loop never runs.
	if r.dir == Leftward {
		w.head = len(w.ring) - 2
	} else {
		w.head = 1
	}

	for !w.Focus().IsBoundary() {
		if r.where == nil || r.where(w) {
			a.execute(r, w)
		}
		w.advance(r.dir)
	}
}

// execute runs the Do action at the current position, transactionally when
// the rule carries a Result post-condition.
func (a *application) execute(r *Rule, w *Window) {
	if r.result == nil {
		if r.do != nil {
			r.do(w)
		}
		a.count++

		return
	}

	// Transactional region: snapshot, act, materialize eagerly so Result
	// sees the cleaned window, then commit or restore exactly.
	snap := takeSnapshot(a, w)
	if r.do != nil {
		r.do(w)
	}
	a.materialize(w)
	if r.result(w) {
		a.count++
	} else {
		snap.restore(a, w)
	}
}

// materialize applies the staged insertions and drops cleared segments from
// the window's ring, splicing insertions into the evolving word as well so
// the final cleanup and later iterations agree on what the word contains.
// Consumed slots are removed. The focus is re-aimed at the same segment, or
// at whatever now occupies its old cyclic position when it was dropped.
func (a *application) materialize(w *Window) {
	focus := w.ring[w.head]
	newRing := make([]segment.Segment, 0, len(w.ring))
	newHead := -1

	for _, s := range w.ring {
		if s.IsBoundary() {
			if s == focus {
				newHead = len(newRing)
			}
			newRing = append(newRing, s)
			continue
		}

		leftAnchor, rightAnchor := anchors(s)
		if sl, ok := a.slots[leftAnchor]; ok && sl.left != nil {
			newRing = append(newRing, sl.left)
			a.spliceWord(leftAnchor, sl.left, true)
			sl.left = nil
		}
		if s == focus {
			newHead = len(newRing)
		}
		if defined(s) {
			newRing = append(newRing, s)
		}
		if sl, ok := a.slots[rightAnchor]; ok && sl.right != nil {
			newRing = append(newRing, sl.right)
			a.spliceWord(rightAnchor, sl.right, false)
			sl.right = nil
		}
	}

	if newHead >= len(newRing) {
		newHead = 0
	}
	w.ring = newRing
	w.head = newHead
}

// cleanup materializes whatever is still staged, in original word order:
// for each segment, its left insert (if any), itself if at least one
// feature is still defined, then its right insert. Segments reduced to no
// defined features — via Clear — are dropped here.
func (a *application) cleanup() []segment.Segment {
	out := make([]segment.Segment, 0, len(a.word))
	for _, s := range a.word {
		sl := a.slots[s]
		if sl != nil && sl.left != nil {
			out = append(out, sl.left)
		}
		if defined(s) {
			out = append(out, s)
		}
		if sl != nil && sl.right != nil {
			out = append(out, sl.right)
		}
	}

	return out
}

// spliceWord inserts seg into the evolving word beside anchor. Anchors are
// always word-level bundles (see anchors); an anchor missing from the word
// means it was inserted and already consumed, which cannot stage again, so
// the miss is ignored.
func (a *application) spliceWord(anchor, seg segment.Segment, before bool) {
	for i, s := range a.word {
		if s != anchor {
			continue
		}
		at := i
		if !before {
			at = i + 1
		}
		a.word = append(a.word, nil)
		copy(a.word[at+1:], a.word[at:])
		a.word[at] = seg

		return
	}
}

// defined reports whether a segment still carries at least one defined
// feature. Tiers and boundaries report fixed markers and are never dropped.
func defined(s segment.Segment) bool {
	for _, v := range s.AllValues() {
		if v != nil {
			return true
		}
	}

	return false
}

// validateWord rejects words containing nil entries or unrecognized segment
// implementations before anything is mutated.
func validateWord(word []segment.Segment) error {
	for _, s := range word {
		switch s.(type) {
		case *segment.Bundle, *segment.Tier, *segment.Boundary:
		case nil:
			return ErrNilSegment
		default:
			return ErrBadSegment
		}
	}

	return nil
}
