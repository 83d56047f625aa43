package cursor

import "sort"

// Indexed pairs a selection with its index in the caller's selection list.
// Index never changes once assigned; it is the key used to restore
// caller order after sorting or filtering.
type Indexed struct {
	Index int
	Selection
}

// Sort orders selections by the position named by ref.
// Ties are broken by the complement position, then by caller index,
// so the result is deterministic for any input. The input is not modified.
func Sort(sels []Selection, ref RefPoint) []Indexed {
	indexed := Index(sels)
	sortIndexed(indexed, ref)
	return indexed
}

// Index pairs every selection with its position in sels.
func Index(sels []Selection) []Indexed {
	indexed := make([]Indexed, len(sels))
	for i, sel := range sels {
		indexed[i] = Indexed{Index: i, Selection: sel}
	}
	return indexed
}

// SortIndexed orders already indexed selections the same way Sort does,
// keeping their existing indices. The input is not modified.
func SortIndexed(sels []Indexed, ref RefPoint) []Indexed {
	sorted := make([]Indexed, len(sels))
	copy(sorted, sels)
	sortIndexed(sorted, ref)
	return sorted
}

func sortIndexed(sels []Indexed, ref RefPoint) {
	comp := ref.Complement()
	sort.Slice(sels, func(i, j int) bool {
		a, b := sels[i], sels[j]
		if c := a.Point(ref).Compare(b.Point(ref)); c != 0 {
			return c < 0
		}
		if c := a.Point(comp).Compare(b.Point(comp)); c != 0 {
			return c < 0
		}
		return a.Index < b.Index
	})
}

// Indices returns the caller index of every entry of sels, in order.
func Indices(sels []Indexed) []int {
	result := make([]int, len(sels))
	for i, sel := range sels {
		result[i] = sel.Index
	}
	return result
}
