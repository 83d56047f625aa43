package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/noindent/internal/engine"
	"github.com/dshills/noindent/internal/newline"
)

// Status indicates the outcome of a command run.
type Status uint8

const (
	// StatusOK indicates the edits were committed.
	StatusOK Status = iota
	// StatusNoOp indicates the command had nothing to do.
	StatusNoOp
	// StatusDisabled indicates the command is disabled by its settings.
	StatusDisabled
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Outcome describes a finished command run.
type Outcome struct {
	Command    Name
	Status     Status
	Flags      newline.Flags
	TxID       uuid.UUID
	Edits      int
	Inserts    int // edits that only insert text
	Deletes    int // edits that only remove text
	Clumps     int
	Dropped    int // selections removed by filtering
	Selections []engine.Selection
}

// Runner executes newline commands against an engine.
type Runner struct {
	settings SettingsProvider
	logger   *zap.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the runner logger.
func WithLogger(logger *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a runner reading command settings from settings.
// A nil provider uses the defaults.
func NewRunner(settings SettingsProvider, opts ...RunnerOption) *Runner {
	if settings == nil {
		settings = StaticSettings{}
	}
	r := &Runner{
		settings: settings,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("command")
	return r
}

// Run plans command n for the engine's current selections and commits
// the result in one transaction. A disabled command or an engine without
// selections leaves the engine untouched.
func (r *Runner) Run(ctx context.Context, eng *engine.Engine, n Name) (*Outcome, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, string(n))
	}

	settings := r.settings.CommandSettings(n)
	flags := Flags(n, settings, eng.MergeOverlapping())
	outcome := &Outcome{Command: n, Flags: flags}
	log := r.logger.With(zap.String("command", n.ID()))

	if !settings.Enable {
		log.Debug("command disabled")
		outcome.Status = StatusDisabled
		outcome.Selections = eng.Selections()
		return outcome, nil
	}

	tx := eng.Begin()
	outcome.TxID = tx.ID()
	sels := tx.Selections()
	if len(sels) == 0 {
		eng.Rollback(tx)
		log.Debug("no selections")
		outcome.Status = StatusNoOp
		return outcome, nil
	}

	result, err := newline.Plan(tx.Snapshot(), sels, flags)
	if err != nil {
		eng.Rollback(tx)
		return nil, fmt.Errorf("%s: %w", n.ID(), err)
	}

	edits := result.Edits()
	tx.Replace(edits...)
	tx.SetSelections(result.Selections)
	inserts, deletes := countEdits(edits)

	log.Debug("planned",
		zap.Stringer("flags", flags),
		zap.Int("selections", len(sels)),
		zap.Int("clumps", len(result.Clumps)),
		zap.Int("inserts", inserts),
		zap.Int("deletes", deletes))

	committed, err := eng.Commit(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", n.ID(), err)
	}

	outcome.Status = StatusOK
	outcome.Edits = committed.EditCount
	outcome.Inserts = inserts
	outcome.Deletes = deletes
	outcome.Clumps = len(result.Clumps)
	outcome.Dropped = len(sels) - result.Len()
	outcome.Selections = committed.Selections
	return outcome, nil
}

// countEdits splits edits into pure insertions and pure deletions.
func countEdits(edits []engine.Edit) (inserts, deletes int) {
	for _, e := range edits {
		switch {
		case e.IsInsert():
			inserts++
		case e.IsDelete():
			deletes++
		}
	}
	return inserts, deletes
}
