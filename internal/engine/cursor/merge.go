package cursor

import "sort"

// MergeOverlapping normalizes a selection list with the editor's
// merge-overlapping policy and returns the surviving selections in caller
// order together with the updated index of the last added selection.
//
// Selections are visited ordered by start, then end. Two neighbours merge
// when the next one starts before the current one ends, or at its end when
// either of them is empty. The selection declared first keeps its slot and
// grows to the union of both ranges. Its direction is kept unless the
// absorbed selection is the last added one, in which case the absorbed
// direction wins and the survivor becomes the last added selection.
//
// lastAdded may be out of range, in which case no selection is treated as
// last added.
func MergeOverlapping(sels []Selection, lastAdded int) ([]Selection, int) {
	result := make([]Selection, len(sels))
	copy(result, sels)
	if len(result) < 2 {
		return result, lastAdded
	}

	type entry struct {
		index int
		sel   Selection
	}
	sorted := make([]entry, len(result))
	for i, sel := range result {
		sorted[i] = entry{index: i, sel: sel}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].sel, sorted[j].sel
		if c := a.Start().Compare(b.Start()); c != 0 {
			return c < 0
		}
		return a.End().Before(b.End())
	})

	for i := 0; i < len(sorted)-1; i++ {
		current, next := sorted[i], sorted[i+1]

		var merge bool
		if current.sel.IsEmpty() || next.sel.IsEmpty() {
			merge = next.sel.Start().BeforeOrEqual(current.sel.End())
		} else {
			merge = next.sel.Start().Before(current.sel.End())
		}
		if !merge {
			continue
		}

		winner, loser := i, i+1
		if next.index < current.index {
			winner, loser = i+1, i
		}
		winnerIndex := sorted[winner].index
		loserIndex := sorted[loser].index
		winnerSel := sorted[winner].sel
		loserSel := sorted[loser].sel

		if !loserSel.Equals(winnerSel) {
			union := loserSel.Range().Union(winnerSel.Range())
			direction := winnerSel
			if loserIndex == lastAdded {
				direction = loserSel
				lastAdded = winnerIndex
			}
			merged := direction.WithRange(union)
			sorted[winner].sel = merged
			result[winnerIndex] = merged
		}

		for k := range sorted {
			if sorted[k].index > loserIndex {
				sorted[k].index--
			}
		}
		result = append(result[:loserIndex], result[loserIndex+1:]...)
		sorted = append(sorted[:loser], sorted[loser+1:]...)
		if lastAdded >= loserIndex {
			lastAdded--
		}
		i--
	}

	return result, lastAdded
}
