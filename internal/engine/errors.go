package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrReadOnly indicates an operation was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrStaleTransaction indicates the buffer changed after the transaction began.
	ErrStaleTransaction = errors.New("transaction is stale")

	// ErrTransactionDone indicates the transaction was already committed or rolled back.
	ErrTransactionDone = errors.New("transaction already finished")
)
