package newline

import (
	"errors"
	"fmt"

	"github.com/dshills/noindent/internal/engine/buffer"
)

// Errors returned by the planner.
var (
	// ErrInvalidLine indicates a selection or caret references a line
	// outside the buffer.
	ErrInvalidLine = errors.New("invalid line")

	// ErrInvalidCharacter indicates a selection references a character
	// outside its line.
	ErrInvalidCharacter = errors.New("invalid character")

	// ErrDegenerateRange indicates a computed deletion range has negative
	// length. It signals overlapping clumps and is never expected for
	// selections normalized by the editor.
	ErrDegenerateRange = errors.New("degenerate range")
)

// InvalidLineError reports a line outside [0, LineCount).
type InvalidLineError struct {
	Index     int // Caller index of the offending selection, -1 for a caret
	Line      int
	LineCount int
}

// Error implements the error interface.
func (e *InvalidLineError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("caret line %d out of range [0, %d)", e.Line, e.LineCount)
	}
	return fmt.Sprintf("selection %d: line %d out of range [0, %d)", e.Index, e.Line, e.LineCount)
}

// Unwrap returns ErrInvalidLine.
func (e *InvalidLineError) Unwrap() error {
	return ErrInvalidLine
}

// InvalidCharacterError reports a character outside [0, LineEnd] on a
// valid line.
type InvalidCharacterError struct {
	Index    int // Caller index of the offending selection
	Position buffer.Position
	LineEnd  int
}

// Error implements the error interface.
func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("selection %d: character %d out of range [0, %d] on line %d",
		e.Index, e.Position.Character, e.LineEnd, e.Position.Line)
}

// Unwrap returns ErrInvalidCharacter.
func (e *InvalidCharacterError) Unwrap() error {
	return ErrInvalidCharacter
}
