package buffer

import (
	"cmp"
	"fmt"
	"slices"
)

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   Range  // The range to replace
	NewText string // The replacement text
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(pos Position, text string) Edit {
	return Edit{
		Range:   Range{Start: pos, End: pos},
		NewText: text,
	}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(r Range) Edit {
	return Edit{Range: r}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%s, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// IsInsert returns true if this is a pure insertion (empty range).
func (e Edit) IsInsert() bool {
	return e.Range.IsEmpty() && e.NewText != ""
}

// IsDelete returns true if this is a pure deletion (empty replacement).
func (e Edit) IsDelete() bool {
	return !e.Range.IsEmpty() && e.NewText == ""
}

// orderEdits returns the submission indices of edits in application order:
// by end position, then start position, then submission order. Inserts at
// the same position therefore land in the order they were submitted.
func orderEdits(edits []Edit) []int {
	order := make([]int, len(edits))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		ea, eb := edits[a].Range, edits[b].Range
		if c := ea.End.Compare(eb.End); c != 0 {
			return c
		}
		if c := ea.Start.Compare(eb.Start); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return order
}
