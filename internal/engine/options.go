package engine

import (
	"go.uber.org/zap"

	"github.com/dshills/noindent/internal/engine/buffer"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithLineEnding sets the line ending style for the engine.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding = ending
		e.detectLineEnding = false
	}
}

// WithDetectedLineEnding picks the line ending style from the initial content.
func WithDetectedLineEnding() Option {
	return func(e *Engine) {
		e.detectLineEnding = true
	}
}

// WithMergeOverlapping makes the engine merge overlapping selections the
// way the editor does when multiCursorMergeOverlapping is enabled.
func WithMergeOverlapping(enabled bool) Option {
	return func(e *Engine) {
		e.mergeOverlapping = enabled
	}
}

// WithSelections sets the initial selections.
func WithSelections(sels ...Selection) Option {
	return func(e *Engine) {
		e.initSelections = append([]Selection(nil), sels...)
	}
}

// WithLogger sets the logger used for transaction events.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithReadOnly creates a read-only engine.
// Commits will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
