package cursor

import (
	"fmt"

	"github.com/dshills/noindent/internal/engine/buffer"
)

// Position is an alias for buffer.Position for convenience.
type Position = buffer.Position

// Range is an alias for buffer.Range for convenience.
type Range = buffer.Range

// Selection represents a range of selected text.
// Anchor is where the selection started; Active is the current cursor position.
// When Anchor == Active, this represents a cursor with no selection.
// Selection is an immutable value type.
type Selection struct {
	Anchor Position // Where selection started
	Active Position // Current cursor position (where typing occurs)
}

// NewSelection creates a selection from anchor to active.
func NewSelection(anchor, active Position) Selection {
	return Selection{Anchor: anchor, Active: active}
}

// NewSelectionAt creates a selection from line/character pairs,
// anchor first.
func NewSelectionAt(anchorLine, anchorChar, activeLine, activeChar int) Selection {
	return Selection{
		Anchor: buffer.NewPosition(anchorLine, anchorChar),
		Active: buffer.NewPosition(activeLine, activeChar),
	}
}

// NewCursorSelection creates a selection representing just a cursor (no extent).
func NewCursorSelection(pos Position) Selection {
	return Selection{Anchor: pos, Active: pos}
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Position {
	return buffer.MinPosition(s.Anchor, s.Active)
}

// End returns the upper bound of the selection.
func (s Selection) End() Position {
	return buffer.MaxPosition(s.Anchor, s.Active)
}

// Range returns the selection as a range (always Start <= End).
func (s Selection) Range() Range {
	return Range{Start: s.Start(), End: s.End()}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Active
}

// IsSingleLine returns true if the selection starts and ends on the same line.
func (s Selection) IsSingleLine() bool {
	return s.Anchor.Line == s.Active.Line
}

// IsReversed returns true if the active position comes before the anchor.
func (s Selection) IsReversed() bool {
	return s.Active.Before(s.Anchor)
}

// Point returns the position of the selection named by ref.
func (s Selection) Point(ref RefPoint) Position {
	switch ref {
	case RefActive:
		return s.Active
	case RefAnchor:
		return s.Anchor
	case RefStart:
		return s.Start()
	default:
		return s.End()
	}
}

// Intersects returns true if the selection ranges touch or overlap.
func (s Selection) Intersects(other Selection) bool {
	return s.Range().Intersects(other.Range())
}

// WithRange returns a selection covering r that keeps the direction of s.
func (s Selection) WithRange(r Range) Selection {
	if s.IsReversed() {
		return Selection{Anchor: r.End, Active: r.Start}
	}
	return Selection{Anchor: r.Start, Active: r.End}
}

// Equals returns true if two selections have the same anchor and active position.
func (s Selection) Equals(other Selection) bool {
	return s.Anchor == other.Anchor && s.Active == other.Active
}

// SameRange returns true if two selections cover the same range,
// regardless of direction.
func (s Selection) SameRange(other Selection) bool {
	return s.Start() == other.Start() && s.End() == other.End()
}

// String returns the selection in the ({line,char},{line,char}) notation,
// anchor first.
func (s Selection) String() string {
	return fmt.Sprintf("({%d,%d},{%d,%d})", s.Anchor.Line, s.Anchor.Character, s.Active.Line, s.Active.Character)
}
