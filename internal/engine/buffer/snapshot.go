package buffer

import (
	"fmt"
	"strings"
)

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
//
// Lines are stored without their terminators; the line ending style is
// applied when text leaves the snapshot.
type Snapshot struct {
	lines      []string
	revisionID RevisionID
	lineEnding LineEnding
}

// newSnapshot splits LF-normalized text into a snapshot.
func newSnapshot(text string, le LineEnding) *Snapshot {
	return &Snapshot{
		lines:      strings.Split(text, "\n"),
		revisionID: NewRevisionID(),
		lineEnding: le,
	}
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return strings.Join(s.lines, s.lineEnding.Sequence())
}

// Len returns the total byte length of the snapshot content.
func (s *Snapshot) Len() int {
	return len(s.Text())
}

// IsEmpty returns true if the snapshot holds no text.
func (s *Snapshot) IsEmpty() bool {
	return len(s.lines) == 1 && s.lines[0] == ""
}

// LineCount returns the number of lines. An empty snapshot has one line.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// LineText returns the text of a specific line (without newline).
// Returns an empty string if the line is out of range.
func (s *Snapshot) LineText(line int) string {
	if line < 0 || line >= len(s.lines) {
		return ""
	}
	return s.lines[line]
}

// LineEndCharacter returns the character of the end of a line, excluding
// the line break. Returns 0 if the line is out of range.
func (s *Snapshot) LineEndCharacter(line int) int {
	return utf16ColumnFromString(s.LineText(line))
}

// LineBreakEndPosition returns the position just past the line break of
// the given line. For the last line this is the line end itself.
func (s *Snapshot) LineBreakEndPosition(line int) Position {
	if line < len(s.lines)-1 {
		return Position{Line: line + 1}
	}
	return Position{Line: line, Character: s.LineEndCharacter(line)}
}

// TextInRange returns the text covered by r using the snapshot's line
// ending style. Positions are clamped to the snapshot.
func (s *Snapshot) TextInRange(r Range) string {
	start, end := s.clamp(r.Start), s.clamp(r.End)
	if !start.Before(end) {
		return ""
	}
	if start.Line == end.Line {
		line := s.lines[start.Line]
		return line[s.byteColumn(start):s.byteColumn(end)]
	}

	var sb strings.Builder
	sb.WriteString(s.lines[start.Line][s.byteColumn(start):])
	for line := start.Line + 1; line < end.Line; line++ {
		sb.WriteString(s.lineEnding.Sequence())
		sb.WriteString(s.lines[line])
	}
	sb.WriteString(s.lineEnding.Sequence())
	sb.WriteString(s.lines[end.Line][:s.byteColumn(end)])
	return sb.String()
}

// RevisionID returns the revision this snapshot was taken at.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// ValidPosition returns true if p addresses a character inside the snapshot.
func (s *Snapshot) ValidPosition(p Position) bool {
	if p.Line < 0 || p.Line >= len(s.lines) || p.Character < 0 {
		return false
	}
	return p.Character <= s.LineEndCharacter(p.Line)
}

// Apply applies edits as one transform and returns the resulting snapshot.
// Every edit is expressed in the coordinates of s; s itself is unchanged.
// Edits may be provided in any order. Touching edits are allowed,
// overlapping ones are rejected with ErrEditsOverlap.
func (s *Snapshot) Apply(edits []Edit) (*Snapshot, error) {
	for _, edit := range edits {
		if !edit.Range.IsValid() || !s.ValidPosition(edit.Range.Start) || !s.ValidPosition(edit.Range.End) {
			return nil, fmt.Errorf("%w: %s", ErrRangeInvalid, edit)
		}
	}

	order := orderEdits(edits)
	for i := 1; i < len(order); i++ {
		prev, cur := edits[order[i-1]], edits[order[i]]
		if prev.Range.End.After(cur.Range.Start) {
			return nil, fmt.Errorf("%w: %s and %s", ErrEditsOverlap, prev, cur)
		}
	}

	text := strings.Join(s.lines, "\n")
	starts := s.lineStarts()

	var sb strings.Builder
	sb.Grow(len(text))
	cursor := 0
	for _, idx := range order {
		edit := edits[idx]
		start := starts[edit.Range.Start.Line] + s.byteColumn(edit.Range.Start)
		end := starts[edit.Range.End.Line] + s.byteColumn(edit.Range.End)
		sb.WriteString(text[cursor:start])
		sb.WriteString(normalizeLineEndings(edit.NewText))
		cursor = end
	}
	sb.WriteString(text[cursor:])

	return newSnapshot(sb.String(), s.lineEnding), nil
}

// lineStarts returns the byte offset of each line in the LF-joined text.
func (s *Snapshot) lineStarts() []int {
	starts := make([]int, len(s.lines))
	offset := 0
	for i, line := range s.lines {
		starts[i] = offset
		offset += len(line) + 1
	}
	return starts
}

// byteColumn converts the UTF-16 character of p into a byte offset within its line.
func (s *Snapshot) byteColumn(p Position) int {
	return byteOffsetFromUTF16Column(s.lines[p.Line], p.Character)
}

// clamp restricts p to the snapshot's extent.
func (s *Snapshot) clamp(p Position) Position {
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= len(s.lines) {
		last := len(s.lines) - 1
		return Position{Line: last, Character: s.LineEndCharacter(last)}
	}
	if p.Character < 0 {
		p.Character = 0
	}
	if end := s.LineEndCharacter(p.Line); p.Character > end {
		p.Character = end
	}
	return p
}
