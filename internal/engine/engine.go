package engine

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/noindent/internal/engine/buffer"
	"github.com/dshills/noindent/internal/engine/cursor"
)

// Re-export commonly used types for convenience.
type (
	// Position is a line/character position in the buffer.
	Position = buffer.Position

	// Range represents a range between two positions.
	Range = buffer.Range

	// Edit represents an edit operation.
	Edit = buffer.Edit

	// Selection represents a cursor selection.
	Selection = cursor.Selection

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Engine is the editing surface the newline commands run against.
// It combines a buffer, a selection set and transactional commits into a
// thread-safe API.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	// Core components
	buf     *buffer.Buffer
	cursors *cursor.CursorSet
	logger  *zap.Logger

	// Configuration
	lineEnding       buffer.LineEnding
	detectLineEnding bool
	mergeOverlapping bool
	readOnly         bool

	// Initialization
	initContent    string
	initSelections []Selection
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(e.initContent, e.bufferOptions(e.initContent)...)
	e.initCursors()
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	e := newEngine(opts)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	e.buf = buffer.NewBufferFromString(string(data), e.bufferOptions(string(data))...)
	e.initCursors()
	return e, nil
}

func newEngine(opts []Option) *Engine {
	e := &Engine{
		lineEnding: buffer.LineEndingLF,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("engine")
	return e
}

func (e *Engine) bufferOptions(content string) []buffer.Option {
	if e.detectLineEnding {
		return []buffer.Option{buffer.WithDetectedLineEnding(content)}
	}
	return []buffer.Option{buffer.WithLineEnding(e.lineEnding)}
}

func (e *Engine) initCursors() {
	sels := e.initSelections
	if len(sels) == 0 {
		sels = []Selection{cursor.NewCursorSelection(buffer.NewPosition(0, 0))}
	}
	e.cursors = cursor.NewCursorSetFromSlice(sels, e.mergeOverlapping)
	e.initSelections = nil
}

// ============================================================================
// Read Operations
// ============================================================================

// Text returns the full buffer content.
func (e *Engine) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Text()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineCount()
}

// LineText returns the text of a specific line (without line ending).
func (e *Engine) LineText(line int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineText(line)
}

// IsEmpty returns true if the buffer has no content.
func (e *Engine) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.IsEmpty()
}

// Snapshot returns an immutable view of the current buffer.
func (e *Engine) Snapshot() *buffer.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.Snapshot()
}

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.RevisionID()
}

// LineEnding returns the line ending style.
func (e *Engine) LineEnding() LineEnding {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.buf.LineEnding()
}

// IsReadOnly returns true if the engine is read-only.
func (e *Engine) IsReadOnly() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.readOnly
}

// ============================================================================
// Selections
// ============================================================================

// Selections returns a copy of the current selections in the order they
// were added.
func (e *Engine) Selections() []Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.All()
}

// SetSelections replaces all selections. When merge-overlapping is enabled
// the selections are normalized first; the last selection of sels counts as
// the last added one.
func (e *Engine) SetSelections(sels []Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.SetAll(sels)
}

// AddSelection adds a selection and makes it the last added one.
func (e *Engine) AddSelection(sel Selection) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.Add(sel)
}

// PrimarySelection returns the primary selection.
func (e *Engine) PrimarySelection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Primary()
}

// SelectionCount returns the number of selections.
func (e *Engine) SelectionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.Count()
}

// MergeOverlapping reports whether overlapping selections are merged.
func (e *Engine) MergeOverlapping() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursors.MergeOverlapping()
}

// SetMergeOverlapping enables or disables merging of overlapping selections.
func (e *Engine) SetMergeOverlapping(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursors.SetMergeOverlapping(enabled)
}

// ============================================================================
// Content
// ============================================================================

// SetContent replaces the whole buffer content and resets the selections
// to a cursor at the start of the buffer.
func (e *Engine) SetContent(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}

	e.buf = buffer.NewBufferFromString(content, buffer.WithLineEnding(e.buf.LineEnding()))
	e.cursors.SetAll([]Selection{cursor.NewCursorSelection(buffer.NewPosition(0, 0))})
	return nil
}
