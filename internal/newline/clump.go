package newline

import (
	"fmt"
	"sort"

	"github.com/dshills/noindent/internal/engine/buffer"
	"github.com/dshills/noindent/internal/engine/cursor"
)

// Clump is a span of destructively affected text. Owner is the sorted
// position of the selection that receives the relocated text.
type Clump struct {
	Range buffer.Range
	Owner int
}

// String returns a compact representation of the clump.
func (c Clump) String() string {
	return fmt.Sprintf("%s@%d", c.Range, c.Owner)
}

// clumpMerger coalesces destructive selections into clumps.
type clumpMerger struct {
	sorted []cursor.Indexed
	merge  bool
	clumps []Clump
}

func newClumpMerger(sorted []cursor.Indexed, merge bool) *clumpMerger {
	return &clumpMerger{sorted: sorted, merge: merge}
}

// add feeds the selection at sorted position pos.
func (m *clumpMerger) add(pos int) {
	candidate := Clump{Range: m.sorted[pos].Range(), Owner: pos}
	if !m.merge {
		m.clumps = append(m.clumps, candidate)
		return
	}

	// Collect intersecting clumps before touching the set.
	var consumed []int
	for i, c := range m.clumps {
		if c.Range.Intersects(candidate.Range) {
			consumed = append(consumed, i)
		}
	}
	if len(consumed) == 0 {
		m.clumps = append(m.clumps, candidate)
		return
	}

	for _, i := range consumed {
		candidate = m.resolve(candidate, m.clumps[i])
	}

	kept := make([]Clump, 0, len(m.clumps)-len(consumed)+1)
	next := 0
	for i, c := range m.clumps {
		if next < len(consumed) && consumed[next] == i {
			next++
			continue
		}
		kept = append(kept, c)
	}
	m.clumps = append(kept, candidate)
}

// resolve folds an existing clump into the candidate. The later end wins
// the range end and ownership. Equal ranges, or an earlier start with an
// equal end, hand ownership to the selection the caller declared first.
func (m *clumpMerger) resolve(candidate, existing Clump) Clump {
	endCmp := existing.Range.End.Compare(candidate.Range.End)
	startCmp := existing.Range.Start.Compare(candidate.Range.Start)
	declaredFirst := m.sorted[existing.Owner].Index < m.sorted[candidate.Owner].Index

	switch {
	case endCmp > 0:
		candidate.Range.End = existing.Range.End
		candidate.Owner = existing.Owner
	case endCmp == 0 && startCmp == 0 && declaredFirst:
		candidate.Owner = existing.Owner
	}

	if startCmp < 0 {
		candidate.Range.Start = existing.Range.Start
		if endCmp == 0 && declaredFirst {
			candidate.Owner = existing.Owner
		}
	}
	return candidate
}

// ordered returns the clumps sorted by position.
func (m *clumpMerger) ordered() []Clump {
	result := make([]Clump, len(m.clumps))
	copy(result, m.clumps)
	sort.SliceStable(result, func(i, j int) bool {
		if c := result[i].Range.Start.Compare(result[j].Range.Start); c != 0 {
			return c < 0
		}
		return result[i].Range.End.Before(result[j].Range.End)
	})
	return result
}
