// Package engine provides the editing surface the newline commands run
// against.
//
// The engine package serves as the main facade, combining buffer
// management, selection handling and transactional commits into a
// unified, thread-safe API.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - buffer: line-indexed text with immutable snapshots and atomic edit batches
//   - cursor: selections, ordering and the merge-overlapping policy
//
// # Thread Safety
//
// All Engine operations are thread-safe. The engine uses a read-write mutex
// to allow concurrent reads while serializing commits.
//
// # Transactions
//
// Edits are collected in a Transaction and committed as one unit:
//
//	e := engine.New(engine.WithContent("alpha\nbeta"))
//
//	tx := e.Begin()
//	tx.Insert(engine.Position{Line: 1}, "\n")
//	tx.SetSelections([]engine.Selection{
//	    cursor.NewCursorSelection(engine.Position{Line: 1}),
//	})
//
//	res, err := e.Commit(ctx, tx)
//
// All edits of a transaction use the coordinates of the snapshot taken by
// Begin. Commit fails, leaving text and selections untouched, when the
// context is done, the buffer changed after Begin, edits overlap, or a new
// selection lies outside the edited text.
//
// # Multi-Cursor Support
//
// With WithMergeOverlapping(true) the engine merges overlapping selections
// the way the editor does, keeping the first declared selection of every
// merged group.
package engine
