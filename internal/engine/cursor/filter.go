package cursor

import "sort"

// FilterOverlapping drops selections that overlap a neighbour, the way an
// editor resolves overlapping selections before running a command.
//
// Selections are ordered by end position and walked from the last pair
// down. When the later selection starts strictly before the earlier one
// ends, the one declared later by the caller is removed and the walk
// continues with the next lower pair. Survivors are returned in caller
// order and keep their caller indices.
func FilterOverlapping(sels []Selection) []Indexed {
	sorted := Sort(sels, RefEnd)

	for i := len(sorted) - 2; i >= 0; i-- {
		prev, curr := i+1, i
		if !sorted[prev].Start().Before(sorted[curr].End()) {
			continue
		}
		remove := curr
		if sorted[prev].Index > sorted[curr].Index {
			remove = prev
		}
		sorted = append(sorted[:remove], sorted[remove+1:]...)
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})
	return sorted
}
