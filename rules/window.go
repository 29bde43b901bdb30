// Package rules: the cyclic cursor window.
//
// The window realizes the fixed-offset addressing callbacks rely on: the
// focused segment is always At(0), its left neighbor At(-1), its right
// neighbor At(1), wrapping cyclically. Rotation is represented by a head
// index into an otherwise stable ring, which keeps focus identity trivial
// when the ring is rebuilt after a materialization.
package rules

import "github.com/phonolab/phonoseg/segment"

// Window is the rotated view of one domain handed to Where/Do/Filter/Result
// callbacks. The focused segment sits at offset 0; offsets wrap cyclically,
// so negative offsets address segments to the left.
type Window struct {
	ring []segment.Segment // [boundary, working segments…, boundary]
	head int               // ring index of the focused segment
	app  *application
}

// Len returns the number of ring positions, boundary sentinels included.
func (w *Window) Len() int { return len(w.ring) }

// At returns the segment at the given offset relative to the focus.
// Offsets wrap: At(-1) is the left neighbor even when the focus is the
// first real segment (it is then the leading boundary).
func (w *Window) At(offset int) segment.Segment {
	n := len(w.ring)
	i := (w.head + offset) % n
	if i < 0 {
		i += n
	}

	return w.ring[i]
}

// Focus returns the currently focused segment, At(0).
func (w *Window) Focus() segment.Segment { return w.ring[w.head] }

// Rule returns the rule currently being applied, so callbacks can introspect
// its direction or tier mid-execution.
func (w *Window) Rule() *Rule { return w.app.rule }

// InsertLeft stages seg to be spliced immediately to the left of the segment
// at the given offset. One staged segment per side: a second InsertLeft on
// the same position replaces the first. Staging onto a boundary is ignored.
func (w *Window) InsertLeft(offset int, seg segment.Segment) {
	target := w.At(offset)
	if target.IsBoundary() {
		return
	}
	anchor, _ := anchors(target)
	w.app.slotFor(anchor).left = seg
}

// InsertRight stages seg to be spliced immediately to the right of the
// segment at the given offset, under the same single-slot contract.
func (w *Window) InsertRight(offset int, seg segment.Segment) {
	target := w.At(offset)
	if target.IsBoundary() {
		return
	}
	_, anchor := anchors(target)
	w.app.slotFor(anchor).right = seg
}

// advance rotates the window one position in the walk direction.
func (w *Window) advance(dir Direction) {
	n := len(w.ring)
	if dir == Leftward {
		w.head--
		if w.head < 0 {
			w.head += n
		}

		return
	}
	w.head++
	if w.head >= n {
		w.head -= n
	}
}

// applyFilter removes non-boundary positions whose centered window fails the
// predicate. All positions are evaluated against the original ring before
// anything is removed, so the filter sees the same neighborhood no matter
// which positions it rejects.
func (w *Window) applyFilter(filter Predicate) {
	keep := make([]bool, len(w.ring))
	for i, s := range w.ring {
		if s.IsBoundary() {
			keep[i] = true
			continue
		}
		probe := &Window{ring: w.ring, head: i, app: w.app}
		keep[i] = filter(probe)
	}
	kept := make([]segment.Segment, 0, len(w.ring))
	for i, s := range w.ring {
		if keep[i] {
			kept = append(kept, s)
		}
	}
	w.ring = kept
}

// anchors resolves a window segment to the word-level bundles its staged
// insertions attach to: a tier anchors left insertions at its first member
// and right insertions at its last, everything else anchors at itself.
func anchors(s segment.Segment) (left, right segment.Segment) {
	if t, ok := s.(*segment.Tier); ok {
		members := t.Members()

		return members[0], members[len(members)-1]
	}

	return s, s
}
