package buffer

import "fmt"

// Range represents a span between two positions.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Position // Inclusive start position
	End   Position // Exclusive end position
}

// NewRange creates a new Range from start and end positions.
// The positions are not reordered; use IsValid to check them.
func NewRange(start, end Position) Range {
	return Range{Start: start, End: end}
}

// LineRange creates a range on a single line.
func LineRange(line, startChar, endChar int) Range {
	return Range{
		Start: Position{Line: line, Character: startChar},
		End:   Position{Line: line, Character: endChar},
	}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s:%s)", r.Start.String(), r.End.String())
}

// IsEmpty returns true if start equals end.
func (r Range) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// IsValid returns true if start <= end.
func (r Range) IsValid() bool {
	return r.Start.Compare(r.End) <= 0
}

// IsSingleLine returns true if the range spans only one line.
func (r Range) IsSingleLine() bool {
	return r.Start.Line == r.End.Line
}

// Contains returns true if the given position is within the range.
func (r Range) Contains(p Position) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// Intersects returns true if the ranges share at least one position when
// both are treated as closed intervals. Touching ranges intersect.
func (r Range) Intersects(other Range) bool {
	start := MaxPosition(r.Start, other.Start)
	end := MinPosition(r.End, other.End)
	return start.BeforeOrEqual(end)
}

// Overlaps returns true if the ranges share a non-empty span.
func (r Range) Overlaps(other Range) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Union returns the smallest range that contains both ranges.
func (r Range) Union(other Range) Range {
	return Range{
		Start: MinPosition(r.Start, other.Start),
		End:   MaxPosition(r.End, other.End),
	}
}
