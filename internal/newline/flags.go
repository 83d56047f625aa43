package newline

import (
	"fmt"

	"github.com/dshills/noindent/internal/engine/cursor"
)

// Flags configures one planning run. It is passed by value and does not
// change during the run.
type Flags struct {
	// RefPoint is the selection position used to order and place selections.
	RefPoint cursor.RefPoint

	// Invert keeps the sorted assignment of same-line results instead of
	// reversing it.
	Invert bool

	// Destructive deletes each selection and relocates the rest of its line.
	Destructive bool

	// Postfix places the new line below the reference line instead of above.
	Postfix bool

	// Filter drops overlapping selections before planning. Only honored
	// for destructive runs.
	Filter bool

	// MergeOverlapping mirrors the editor setting. When set, the editor has
	// already merged overlapping selections and no clump merging happens.
	MergeOverlapping bool
}

// filtering reports whether overlapping selections are filtered.
func (f Flags) filtering() bool {
	return f.Destructive && f.Filter
}

// mergesClumps reports whether destructive selections are coalesced.
func (f Flags) mergesClumps() bool {
	return f.Destructive && !f.MergeOverlapping && !f.Filter
}

func (f Flags) postfixOffset() int {
	if f.Postfix {
		return 1
	}
	return 0
}

// String returns a compact description used in logs.
func (f Flags) String() string {
	return fmt.Sprintf("ref=%s invert=%t destructive=%t postfix=%t filter=%t merge=%t",
		f.RefPoint, f.Invert, f.Destructive, f.Postfix, f.Filter, f.MergeOverlapping)
}
