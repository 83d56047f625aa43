package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/noindent/internal/engine/buffer"
	"github.com/dshills/noindent/internal/newline"
)

// Transaction collects edits against one buffer snapshot. All edits use
// the coordinates of that snapshot and are committed together or not at
// all. A Transaction is not safe for concurrent use.
type Transaction struct {
	id         uuid.UUID
	snap       *buffer.Snapshot
	selections []Selection
	edits      []Edit
	carets     []Selection
	hasCarets  bool
	done       bool
}

// CommitResult describes a committed transaction.
type CommitResult struct {
	ID         uuid.UUID
	Revision   RevisionID
	EditCount  int
	Selections []Selection
}

// Begin starts a transaction on the current buffer state.
func (e *Engine) Begin() *Transaction {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return &Transaction{
		id:         uuid.New(),
		snap:       e.buf.Snapshot(),
		selections: e.cursors.All(),
	}
}

// ID returns the transaction identifier.
func (tx *Transaction) ID() uuid.UUID {
	return tx.id
}

// Snapshot returns the buffer state the transaction is based on.
func (tx *Transaction) Snapshot() *buffer.Snapshot {
	return tx.snap
}

// Selections returns the selections captured when the transaction began.
func (tx *Transaction) Selections() []Selection {
	result := make([]Selection, len(tx.selections))
	copy(result, tx.selections)
	return result
}

// Replace queues edits. Edits keep their submission order, which decides
// the order of insertions at the same position.
func (tx *Transaction) Replace(edits ...Edit) {
	tx.edits = append(tx.edits, edits...)
}

// Insert queues an insertion.
func (tx *Transaction) Insert(pos Position, text string) {
	tx.Replace(buffer.NewInsert(pos, text))
}

// Delete queues a deletion.
func (tx *Transaction) Delete(r Range) {
	tx.Replace(buffer.NewDelete(r))
}

// SetSelections sets the selections installed on commit. The positions
// refer to the buffer after the edits.
func (tx *Transaction) SetSelections(sels []Selection) {
	tx.carets = make([]Selection, len(sels))
	copy(tx.carets, sels)
	tx.hasCarets = true
}

// Edits returns the queued edits.
func (tx *Transaction) Edits() []Edit {
	result := make([]Edit, len(tx.edits))
	copy(result, tx.edits)
	return result
}

// Commit applies a transaction atomically. Either every edit and the new
// selections become visible, or the engine is left exactly as it was.
//
// Commit fails when ctx is done, when the buffer changed after Begin
// (ErrStaleTransaction), when edits overlap or reference invalid ranges,
// or when a new selection lies outside the edited buffer.
func (e *Engine) Commit(ctx context.Context, tx *Transaction) (*CommitResult, error) {
	if tx.done {
		return nil, ErrTransactionDone
	}
	tx.done = true

	log := e.logger.With(zap.String("tx", tx.id.String()))

	if err := ctx.Err(); err != nil {
		log.Debug("transaction discarded", zap.Error(err))
		return nil, fmt.Errorf("commit %s: %w", tx.id, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return nil, ErrReadOnly
	}
	if e.buf.RevisionID() != tx.snap.RevisionID() {
		log.Debug("transaction stale",
			zap.Uint64("base", uint64(tx.snap.RevisionID())),
			zap.Uint64("current", uint64(e.buf.RevisionID())))
		return nil, fmt.Errorf("commit %s: %w", tx.id, ErrStaleTransaction)
	}

	next, err := tx.snap.Apply(tx.edits)
	if err != nil {
		log.Debug("transaction rejected", zap.Error(err))
		return nil, fmt.Errorf("commit %s: %w", tx.id, err)
	}

	if tx.hasCarets {
		if err := validateCarets(next, tx.carets); err != nil {
			log.Debug("transaction rejected", zap.Error(err))
			return nil, fmt.Errorf("commit %s: %w", tx.id, err)
		}
	}

	if err := e.buf.Swap(tx.snap.RevisionID(), next); err != nil {
		return nil, fmt.Errorf("commit %s: %w", tx.id, err)
	}
	if tx.hasCarets {
		e.cursors.SetAll(tx.carets)
	}

	log.Debug("transaction committed",
		zap.Int("edits", len(tx.edits)),
		zap.Int("selections", e.cursors.Count()),
		zap.Uint64("revision", uint64(next.RevisionID())))

	return &CommitResult{
		ID:         tx.id,
		Revision:   next.RevisionID(),
		EditCount:  len(tx.edits),
		Selections: e.cursors.All(),
	}, nil
}

// Rollback discards a transaction. Rolling back a finished transaction
// is a no-op.
func (e *Engine) Rollback(tx *Transaction) {
	if tx.done {
		return
	}
	tx.done = true
	e.logger.Debug("transaction rolled back", zap.String("tx", tx.id.String()))
}

// validateCarets checks that every caret lies inside snap.
func validateCarets(snap *buffer.Snapshot, carets []Selection) error {
	lineCount := snap.LineCount()
	for _, sel := range carets {
		for _, p := range []Position{sel.Anchor, sel.Active} {
			if p.Line < 0 || p.Line >= lineCount {
				return &newline.InvalidLineError{Index: -1, Line: p.Line, LineCount: lineCount}
			}
			if !snap.ValidPosition(p) {
				return fmt.Errorf("%w: caret %s", buffer.ErrRangeInvalid, p)
			}
		}
	}
	return nil
}
