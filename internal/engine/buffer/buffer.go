package buffer

import (
	"errors"
	"io"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrRangeInvalid     = errors.New("invalid range")
	ErrEditsOverlap     = errors.New("edits overlap")
	ErrRevisionMismatch = errors.New("buffer revision mismatch")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer holds line-indexed text and publishes immutable snapshots of it.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	snap       *Snapshot
	lineEnding LineEnding
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{lineEnding: LineEndingLF}

	for _, opt := range opts {
		opt(b)
	}

	b.snap = newSnapshot("", b.lineEnding)
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.snap = newSnapshot(normalizeLineEndings(s), b.lineEnding)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read all content first so CRLF sequences are never split across reads
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts all line endings to LF, the internal form.
// Mixed input therefore leaves the buffer with the single LineEnding of
// the buffer, as an editor does when it opens such a file.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return b.Snapshot().Text()
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return b.Snapshot().LineCount()
}

// LineText returns the text of a specific line (without newline).
func (b *Buffer) LineText(line int) string {
	return b.Snapshot().LineText(line)
}

// LineEndCharacter returns the character at the end of a line.
func (b *Buffer) LineEndCharacter(line int) int {
	return b.Snapshot().LineEndCharacter(line)
}

// LineBreakEndPosition returns the position just past the line break of a line.
func (b *Buffer) LineBreakEndPosition(line int) Position {
	return b.Snapshot().LineBreakEndPosition(line)
}

// TextInRange returns the text covered by r.
func (b *Buffer) TextInRange(r Range) string {
	return b.Snapshot().TextInRange(r)
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Snapshot().IsEmpty()
}

// Write Operations

// ApplyEdits applies multiple edits atomically. All ranges are expressed
// against the current content; on error the buffer is left untouched.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := b.snap.Apply(edits)
	if err != nil {
		return err
	}
	b.snap = next
	return nil
}

// Swap replaces the buffer content with next if the buffer is still at
// revision expected. It returns ErrRevisionMismatch otherwise.
func (b *Buffer) Swap(expected RevisionID, next *Snapshot) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.snap.revisionID != expected {
		return ErrRevisionMismatch
	}
	b.snap = next
	return nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	return b.Snapshot().RevisionID()
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap // Snapshots are immutable, safe to share
}
