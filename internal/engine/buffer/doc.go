// Package buffer provides a thread-safe, line-indexed text buffer for the
// newline engine.
//
// The buffer package provides:
//
//   - Position and Range types addressing text by line and UTF-16 character
//   - Immutable snapshots that can be read concurrently
//   - Edits expressed against one snapshot and applied as a single transform
//   - Line ending normalization
//   - Revision tracking for optimistic commits
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("alpha\nbeta")
//
//	// Insert a line above "beta" and delete "al" in one transform
//	err := buf.ApplyEdits([]buffer.Edit{
//	    buffer.NewInsert(buffer.NewPosition(1, 0), "\n"),
//	    buffer.NewDelete(buffer.LineRange(0, 0, 2)),
//	})
//
// Edit Ordering:
//
// All edits of one batch use the coordinates of the unmodified buffer.
// They are applied ordered by end position, then start position, then
// submission order, so several inserts at one position keep the order in
// which they were submitted. Touching edits are allowed; overlapping edits
// fail with ErrEditsOverlap and leave the buffer untouched.
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Snapshot returns an immutable view;
// Swap installs a new snapshot only if no other write happened since the
// expected revision.
package buffer
