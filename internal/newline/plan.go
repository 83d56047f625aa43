package newline

import (
	"fmt"

	"github.com/dshills/noindent/internal/engine/buffer"
	"github.com/dshills/noindent/internal/engine/cursor"
)

// Source is the read-only, line-indexed view of the text the planner
// works on. Characters are UTF-16 code units.
type Source interface {
	LineCount() int
	LineEndCharacter(line int) int
	LineBreakEndPosition(line int) buffer.Position
	TextInRange(r buffer.Range) string
}

// Result is a planned batch. All slices indexed by slot are aligned with
// the selections that took part, in caller order; without filtering that
// is the caller's full selection list.
type Result struct {
	// Selections holds the caret planned for each slot.
	Selections []cursor.Selection

	// Inserts holds the insertion planned for each slot.
	Inserts []buffer.Edit

	// Deletes holds the single-line deletions of destructive runs.
	Deletes []buffer.Edit

	// Sources maps each slot to the caller index of its selection.
	Sources []int

	// Clumps holds the destructive clumps in position order. Owners are
	// sorted positions.
	Clumps []Clump
}

// Len returns the number of slots.
func (r *Result) Len() int {
	return len(r.Selections)
}

// Edits returns the deletions followed by the insertions in slot order.
// Every edit is expressed against the unmodified source and the batch
// must be applied as one transform.
func (r *Result) Edits() []buffer.Edit {
	edits := make([]buffer.Edit, 0, len(r.Deletes)+len(r.Inserts))
	edits = append(edits, r.Deletes...)
	edits = append(edits, r.Inserts...)
	return edits
}

// Plan computes the edits and carets for inserting an unindented newline
// at every selection of sels.
//
// Selections are ordered by the reference point. Each selection gets a
// caret at column 0 of the new line, shifted by the newlines inserted for
// the selections ordered before it. Destructive runs delete every clump and
// move the text between the clump and the next clump (or the line end) to
// the new line of the clump owner. Unless flags.Invert is set, results of
// selections sharing a reference line are reversed within that line.
//
// An empty selection list yields an empty result. A selection referencing
// a line outside src fails with *InvalidLineError, a character outside its
// line with *InvalidCharacterError.
func Plan(src Source, sels []cursor.Selection, flags Flags) (*Result, error) {
	if err := validate(src, sels); err != nil {
		return nil, err
	}

	var indexed []cursor.Indexed
	if flags.filtering() {
		indexed = cursor.FilterOverlapping(sels)
	} else {
		indexed = cursor.Index(sels)
	}
	sorted := cursor.SortIndexed(indexed, flags.RefPoint)
	n := len(sorted)

	carets := make([]cursor.Selection, n)
	inserts := make([]buffer.Edit, n)
	delta := NewLineDelta()
	merger := newClumpMerger(sorted, flags.mergesClumps())

	for i, sel := range sorted {
		if flags.Destructive && !sel.IsSingleLine() {
			delta.Record(sel.Start().Line, sel.End().Line)
		}

		refLine := sel.Point(flags.RefPoint).Line
		line := refLine + i + flags.postfixOffset()
		if flags.Destructive {
			line -= delta.Correction(refLine)
		}

		carets[i] = cursor.NewCursorSelection(buffer.NewPosition(line, 0))
		inserts[i] = buffer.NewInsert(insertPosition(src, refLine, flags.Postfix), "\n")

		if flags.Destructive {
			merger.add(i)
		}
	}

	var deletes []buffer.Edit
	clumps := merger.ordered()
	for k, c := range clumps {
		relocated, err := relocationRange(src, clumps, k)
		if err != nil {
			return nil, err
		}
		text := src.TextInRange(relocated)
		if !relocated.IsEmpty() {
			deletes = appendDeletes(deletes, src, relocated)
		}

		ownerLine := sorted[c.Owner].Point(flags.RefPoint).Line
		if flags.Postfix {
			text = "\n" + text
		} else {
			text += "\n"
		}
		inserts[c.Owner] = buffer.NewInsert(insertPosition(src, ownerLine, flags.Postfix), text)

		if !c.Range.IsEmpty() {
			deletes = appendDeletes(deletes, src, c.Range)
		}
	}

	if !flags.Invert {
		invertLines(sorted, flags.RefPoint, carets, inserts)
	}

	result := &Result{
		Selections: make([]cursor.Selection, n),
		Inserts:    make([]buffer.Edit, n),
		Deletes:    deletes,
		Sources:    make([]int, n),
		Clumps:     clumps,
	}

	slots := slotsByIndex(indexed)
	for i, sel := range sorted {
		slot := slots[sel.Index]
		result.Selections[slot] = carets[i]
		result.Inserts[slot] = inserts[i]
		result.Sources[slot] = sel.Index
	}
	return result, nil
}

// validate checks that every selection lies on lines of src.
func validate(src Source, sels []cursor.Selection) error {
	lineCount := src.LineCount()
	for i, sel := range sels {
		for _, pos := range []buffer.Position{sel.Anchor, sel.Active} {
			if pos.Line < 0 || pos.Line >= lineCount {
				return &InvalidLineError{Index: i, Line: pos.Line, LineCount: lineCount}
			}
			if end := src.LineEndCharacter(pos.Line); pos.Character < 0 || pos.Character > end {
				return &InvalidCharacterError{Index: i, Position: pos, LineEnd: end}
			}
		}
	}
	return nil
}

// insertPosition returns where the new line of refLine is inserted.
func insertPosition(src Source, refLine int, postfix bool) buffer.Position {
	if postfix {
		return buffer.NewPosition(refLine, src.LineEndCharacter(refLine))
	}
	return buffer.NewPosition(refLine, 0)
}

// relocationRange returns the text that follows clump k on its last line:
// up to the start of the next clump when that clump begins on the same
// line, otherwise up to the line end.
func relocationRange(src Source, clumps []Clump, k int) (buffer.Range, error) {
	end := clumps[k].Range.End
	stop := src.LineEndCharacter(end.Line)
	if k+1 < len(clumps) && clumps[k+1].Range.Start.Line == end.Line {
		stop = clumps[k+1].Range.Start.Character
	}

	r := buffer.LineRange(end.Line, end.Character, stop)
	if stop < end.Character {
		return r, fmt.Errorf("%w: %s after clump %s", ErrDegenerateRange, r, clumps[k])
	}
	return r, nil
}

func appendDeletes(deletes []buffer.Edit, src Source, r buffer.Range) []buffer.Edit {
	for _, piece := range SplitByLine(src, r) {
		if piece.IsEmpty() {
			continue
		}
		deletes = append(deletes, buffer.NewDelete(piece))
	}
	return deletes
}

// invertLines reverses carets and inserts within every run of consecutive
// sorted selections that share a reference line.
func invertLines(sorted []cursor.Indexed, ref cursor.RefPoint, carets []cursor.Selection, inserts []buffer.Edit) {
	start := 0
	for i := range sorted {
		line := sorted[i].Point(ref).Line
		if i+1 < len(sorted) && sorted[i+1].Point(ref).Line == line {
			continue
		}
		for lo, hi := start, i; lo < hi; lo, hi = lo+1, hi-1 {
			carets[lo], carets[hi] = carets[hi], carets[lo]
			inserts[lo], inserts[hi] = inserts[hi], inserts[lo]
		}
		start = i + 1
	}
}

// slotsByIndex maps each caller index to its slot in indexed.
func slotsByIndex(indexed []cursor.Indexed) map[int]int {
	slots := make(map[int]int, len(indexed))
	for slot, sel := range indexed {
		slots[sel.Index] = slot
	}
	return slots
}
