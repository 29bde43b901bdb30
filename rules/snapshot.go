// Package rules: transactional snapshot and restore.
//
// The rollback strategy is pure value copies, so restoration is infallible
// by construction: for every bundle reachable from the window we copy the
// feature→cell binding map and the current contents of every bound cell.
// Restoring puts both back verbatim, sharing relationships included,
// together with the staged slots, the working ring, and the evolving word.
package rules

import (
	"github.com/phonolab/phonoseg/feature"
	"github.com/phonolab/phonoseg/segment"
)

// snapshot captures everything a Do/materialize pair may legitimately touch
// at one position: segment bindings, cell contents, staged slots, the ring,
// and the evolving word.
type snapshot struct {
	ring  []segment.Segment
	head  int
	word  []segment.Segment
	binds map[*segment.Bundle]map[string]*segment.Cell
	cells map[*segment.Cell]feature.Value
	slots map[segment.Segment]slot
}

// takeSnapshot records the pre-Do state of the window and its application.
// Well-behaved rule bodies touch only segments reachable through the window;
// segments outside it sharing a cell with one inside are still restored
// correctly, because the shared cell's content is part of the snapshot.
func takeSnapshot(a *application, w *Window) *snapshot {
	snap := &snapshot{
		ring:  append([]segment.Segment(nil), w.ring...),
		head:  w.head,
		word:  append([]segment.Segment(nil), a.word...),
		binds: make(map[*segment.Bundle]map[string]*segment.Cell),
		cells: make(map[*segment.Cell]feature.Value),
		slots: make(map[segment.Segment]slot, len(a.slots)),
	}

	for _, s := range w.ring {
		snap.record(s)
	}
	for anchor, sl := range a.slots {
		snap.slots[anchor] = *sl
		// Staged segments are window-reachable state too: a Do may mutate
		// a segment staged by the same rule earlier.
		if sl.left != nil {
			snap.record(sl.left)
		}
		if sl.right != nil {
			snap.record(sl.right)
		}
	}

	return snap
}

// record captures one segment's bindings and cell contents; tiers expand to
// their members, boundaries carry nothing to capture.
func (s *snapshot) record(seg segment.Segment) {
	switch v := seg.(type) {
	case *segment.Bundle:
		if _, done := s.binds[v]; done {
			return
		}
		binds := v.Bindings()
		s.binds[v] = binds
		for _, c := range binds {
			if _, done := s.cells[c]; !done {
				s.cells[c] = c.Value()
			}
		}
	case *segment.Tier:
		for _, m := range v.Members() {
			s.record(m)
		}
	}
}

// restore puts the application and window back exactly as captured: binding
// maps, cell contents, staged slots, ring, head and word. The application
// counter is left alone; restore only runs for positions that did not
// commit.
func (s *snapshot) restore(a *application, w *Window) {
	for b, binds := range s.binds {
		b.SetBindings(binds)
	}
	for c, v := range s.cells {
		c.SetValue(v)
	}

	a.slots = make(map[segment.Segment]*slot, len(s.slots))
	for anchor, sl := range s.slots {
		copied := sl
		a.slots[anchor] = &copied
	}

	a.word = append([]segment.Segment(nil), s.word...)
	w.ring = append([]segment.Segment(nil), s.ring...)
	w.head = s.head
}
