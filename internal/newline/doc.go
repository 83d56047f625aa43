// Package newline plans the insertion of unindented newlines at every
// selection of a multi-cursor editor.
//
// Plan turns a selection list into one batch of edits plus the caret each
// selection ends up with. The pipeline is:
//
//   - Order selections by a reference point (see cursor.Sort)
//   - Optionally drop overlapping selections (destructive runs only)
//   - Coalesce destructive selections into non-overlapping clumps, each
//     owned by one selection
//   - Track lines removed by multi-line destructive selections
//   - Compute carets, insertions and single-line deletions
//   - Reverse the results of selections sharing a line, unless inverted
//   - Map everything back to caller order
//
// Every edit of a Result is expressed against the unmodified source and the
// batch must be applied as one transform, e.g. with buffer.Buffer.ApplyEdits
// or an engine transaction.
//
// Basic usage:
//
//	snap := buf.Snapshot()
//	result, err := newline.Plan(snap, sels, newline.Flags{
//	    RefPoint:    cursor.RefEnd,
//	    Destructive: true,
//	})
//	if err != nil {
//	    return err
//	}
//	err = buf.ApplyEdits(result.Edits())
//
// Plan is pure: it never modifies its inputs and is safe for concurrent use
// as long as the source is.
package newline
