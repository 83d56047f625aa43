package cursor

// CursorSet manages multiple selections in the order they were added.
// The first selection is considered the "primary" selection.
//
// When merge-overlapping is enabled, the set is normalized with
// MergeOverlapping after every change, so it never holds two selections
// the editor would have merged.
type CursorSet struct {
	selections       []Selection
	lastAdded        int
	mergeOverlapping bool
}

// NewCursorSet creates a cursor set with a single selection.
func NewCursorSet(initial Selection) *CursorSet {
	return &CursorSet{
		selections: []Selection{initial},
	}
}

// NewCursorSetFromSlice creates a cursor set from a slice of selections.
// The last selection of the slice is treated as the last added one.
func NewCursorSetFromSlice(selections []Selection, mergeOverlapping bool) *CursorSet {
	cs := &CursorSet{mergeOverlapping: mergeOverlapping}
	cs.SetAll(selections)
	return cs
}

// Primary returns the primary (first) selection.
func (cs *CursorSet) Primary() Selection {
	if len(cs.selections) == 0 {
		return Selection{}
	}
	return cs.selections[0]
}

// All returns a copy of all selections.
// The returned slice is safe to modify without affecting the CursorSet.
func (cs *CursorSet) All() []Selection {
	result := make([]Selection, len(cs.selections))
	copy(result, cs.selections)
	return result
}

// Count returns the number of cursors/selections.
func (cs *CursorSet) Count() int {
	return len(cs.selections)
}

// Get returns the selection at the given index.
// Returns an empty selection if index is out of range.
func (cs *CursorSet) Get(index int) Selection {
	if index < 0 || index >= len(cs.selections) {
		return Selection{}
	}
	return cs.selections[index]
}

// LastAdded returns the index of the most recently added selection,
// or -1 for an empty set.
func (cs *CursorSet) LastAdded() int {
	if len(cs.selections) == 0 {
		return -1
	}
	return cs.lastAdded
}

// MergeOverlapping reports whether the set merges overlapping selections.
func (cs *CursorSet) MergeOverlapping() bool {
	return cs.mergeOverlapping
}

// SetMergeOverlapping enables or disables merging. Enabling it normalizes
// the current selections immediately.
func (cs *CursorSet) SetMergeOverlapping(enabled bool) {
	cs.mergeOverlapping = enabled
	cs.normalize()
}

// Add appends a selection and makes it the last added one.
func (cs *CursorSet) Add(sel Selection) {
	cs.selections = append(cs.selections, sel)
	cs.lastAdded = len(cs.selections) - 1
	cs.normalize()
}

// SetAll replaces all selections. An empty slice leaves the set empty.
func (cs *CursorSet) SetAll(sels []Selection) {
	cs.selections = make([]Selection, len(sels))
	copy(cs.selections, sels)
	cs.lastAdded = len(sels) - 1
	cs.normalize()
}

func (cs *CursorSet) normalize() {
	if !cs.mergeOverlapping || len(cs.selections) <= 1 {
		return
	}
	cs.selections, cs.lastAdded = MergeOverlapping(cs.selections, cs.lastAdded)
}
