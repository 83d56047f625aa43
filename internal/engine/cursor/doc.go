// Package cursor provides selection management for the newline engine.
//
// The cursor package handles:
//
//   - Text selections with the anchor/active model via Selection type
//   - Reference points (active, anchor, start, end) and their complements
//   - Deterministic ordering of selections by a reference point
//   - Overlap filtering and the editor's merge-overlapping normalization
//   - Multi-cursor support with CursorSet
//
// Selection Model:
//
// Selections use an anchor/active model where:
//   - Anchor: The position where the selection started
//   - Active: The current cursor position (where typing would occur)
//
// When Anchor == Active, the selection represents just a cursor with no
// selected text. Start and End are the lower and upper of the two.
//
// Ordering:
//
// Sort orders selections by a reference point, then by its complement,
// then by the index the caller gave the selection. Every sorted entry
// carries that index, so results can be mapped back to caller order.
//
// Basic usage:
//
//	sels := []cursor.Selection{
//	    cursor.NewSelectionAt(1, 6, 1, 5),
//	    cursor.NewSelectionAt(0, 2, 0, 4),
//	}
//	sorted := cursor.Sort(sels, cursor.RefEnd)
//	// sorted[0].Index == 1
//
// Thread Safety:
//
// Selection and RefPoint are immutable value types and safe for
// concurrent use. CursorSet is not thread-safe and should be protected
// by external synchronization if accessed concurrently.
package cursor
