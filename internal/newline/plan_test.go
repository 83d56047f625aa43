package newline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/noindent/internal/engine/buffer"
	"github.com/dshills/noindent/internal/engine/cursor"
)

const fixtureText = "test = {\n    qwerty\n    asdfgh\n    zxcvbn\n}"

func fixtureSelections() []cursor.Selection {
	return []cursor.Selection{
		cursor.NewSelectionAt(1, 6, 1, 5),
		cursor.NewSelectionAt(0, 2, 0, 4),
		cursor.NewSelectionAt(1, 5, 1, 6),
		cursor.NewSelectionAt(3, 6, 2, 8),
		cursor.NewSelectionAt(1, 5, 1, 9),
		cursor.NewSelectionAt(3, 9, 3, 10),
		cursor.NewSelectionAt(1, 8, 1, 8),
		cursor.NewSelectionAt(1, 4, 1, 5),
		cursor.NewSelectionAt(2, 5, 3, 8),
		cursor.NewSelectionAt(2, 5, 3, 8),
		cursor.NewSelectionAt(1, 9, 2, 6),
		cursor.NewSelectionAt(1, 6, 1, 5),
	}
}

// planAndApply plans against text and applies the batch to a fresh buffer.
func planAndApply(t *testing.T, text string, sels []cursor.Selection, flags Flags) (*Result, string) {
	t.Helper()

	buf := buffer.NewBufferFromString(text)
	result, err := Plan(buf.Snapshot(), sels, flags)
	require.NoError(t, err)
	require.NoError(t, buf.ApplyEdits(result.Edits()))
	return result, buf.Text()
}

func caretLines(sels []cursor.Selection) []int {
	lines := make([]int, len(sels))
	for i, sel := range sels {
		lines[i] = sel.Active.Line
	}
	return lines
}

func TestPlanBeforeFixture(t *testing.T) {
	result, text := planAndApply(t, fixtureText, fixtureSelections(), Flags{RefPoint: cursor.RefEnd})

	require.Equal(t, 12, result.Len())
	assert.Empty(t, result.Deletes)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, result.Sources)
	assert.Equal(t, []int{6, 0, 5, 14, 2, 11, 3, 7, 13, 12, 9, 4}, caretLines(result.Selections))

	for i, ins := range result.Inserts {
		assert.Equal(t, "\n", ins.NewText, "insert %d", i)
		assert.Equal(t, 0, ins.Range.Start.Character, "insert %d", i)
	}

	assert.Equal(t, "\ntest = {\n\n\n\n\n\n\n    qwerty\n\n    asdfgh\n\n\n\n\n    zxcvbn\n}", text)
	assert.Equal(t, strings.Count(fixtureText, "\n")+12, strings.Count(text, "\n"))
}

func TestPlanAfterFixture(t *testing.T) {
	result, text := planAndApply(t, fixtureText, fixtureSelections(), Flags{RefPoint: cursor.RefEnd, Postfix: true})

	assert.Equal(t, []int{7, 1, 6, 15, 3, 12, 4, 8, 14, 13, 10, 5}, caretLines(result.Selections))
	assert.Equal(t, buffer.NewPosition(1, 10), result.Inserts[0].Range.Start)
	assert.Equal(t, "test = {\n\n    qwerty\n\n\n\n\n\n\n    asdfgh\n\n    zxcvbn\n\n\n\n\n}", text)
}

func TestPlanNonDestructiveRoundTrip(t *testing.T) {
	for _, postfix := range []bool{false, true} {
		for _, ref := range cursor.RefPoints {
			for _, invert := range []bool{false, true} {
				flags := Flags{RefPoint: ref, Postfix: postfix, Invert: invert}
				t.Run(flags.String(), func(t *testing.T) {
					result, text := planAndApply(t, fixtureText, fixtureSelections(), flags)

					inserted := make(map[int]bool)
					for _, sel := range result.Selections {
						inserted[sel.Active.Line] = true
					}
					require.Len(t, inserted, 12, "every caret should sit on its own new line")

					var kept []string
					for i, line := range strings.Split(text, "\n") {
						if inserted[i] {
							assert.Empty(t, line, "caret line %d should be empty", i)
							continue
						}
						kept = append(kept, line)
					}
					assert.Equal(t, fixtureText, strings.Join(kept, "\n"))
				})
			}
		}
	}
}

func TestPlanUpSingleSelection(t *testing.T) {
	sels := []cursor.Selection{cursor.NewSelectionAt(0, 3, 0, 4)}
	result, text := planAndApply(t, "abc def", sels, Flags{RefPoint: cursor.RefEnd, Destructive: true})

	assert.Equal(t, "def\nabc", text)
	assert.Equal(t, []cursor.Selection{cursor.NewCursorSelection(buffer.NewPosition(0, 0))}, result.Selections)
	assert.Equal(t, buffer.NewInsert(buffer.NewPosition(0, 0), "def\n"), result.Inserts[0])
	assert.Equal(t, []buffer.Edit{
		buffer.NewDelete(buffer.LineRange(0, 4, 7)),
		buffer.NewDelete(buffer.LineRange(0, 3, 4)),
	}, result.Deletes)
}

func TestPlanDownSingleSelection(t *testing.T) {
	sels := []cursor.Selection{cursor.NewSelectionAt(0, 3, 0, 4)}
	result, text := planAndApply(t, "abc def", sels, Flags{RefPoint: cursor.RefEnd, Destructive: true, Postfix: true})

	assert.Equal(t, "abc\ndef", text)
	assert.Equal(t, 1, result.Selections[0].Active.Line)
	assert.Equal(t, buffer.NewInsert(buffer.NewPosition(0, 7), "\ndef"), result.Inserts[0])
}

func TestPlanDownCursorAtLineEnd(t *testing.T) {
	sels := []cursor.Selection{cursor.NewCursorSelection(buffer.NewPosition(0, 3))}
	result, text := planAndApply(t, "abc\nxyz", sels, Flags{RefPoint: cursor.RefActive, Destructive: true, Postfix: true})

	assert.Equal(t, "abc\n\nxyz", text)
	assert.Empty(t, result.Deletes)
	assert.Equal(t, 1, result.Selections[0].Active.Line)
}

func TestPlanUpFixtureMergedClumps(t *testing.T) {
	result, text := planAndApply(t, fixtureText, fixtureSelections(), Flags{RefPoint: cursor.RefEnd, Destructive: true})

	assert.Equal(t, []Clump{
		{Range: buffer.LineRange(0, 2, 4), Owner: 0},
		{Range: buffer.NewRange(buffer.NewPosition(1, 4), buffer.NewPosition(3, 8)), Owner: 9},
		{Range: buffer.LineRange(3, 9, 10), Owner: 11},
	}, result.Clumps)
	assert.Equal(t, []int{6, 0, 5, 12, 2, 9, 3, 7, 11, 10, 8, 4}, caretLines(result.Selections))
	assert.Equal(t, " = {\n", result.Inserts[1].NewText)
	assert.Equal(t, "b\n", result.Inserts[9].NewText)
	assert.Equal(t, " = {\nte\n\n\n\n\n\n\n    \n\n\n\nb\n\n}", text)
}

func TestPlanUpEditorMergedSelections(t *testing.T) {
	sels, _ := cursor.MergeOverlapping(fixtureSelections(), 11)
	flags := Flags{RefPoint: cursor.RefEnd, Destructive: true, MergeOverlapping: true}
	result, text := planAndApply(t, fixtureText, sels, flags)

	require.Len(t, result.Clumps, 5)
	for i := 1; i < len(result.Clumps); i++ {
		prev, cur := result.Clumps[i-1].Range, result.Clumps[i].Range
		assert.False(t, prev.Overlaps(cur), "clumps %s and %s overlap", prev, cur)
	}
	assert.Equal(t, []int{2, 0, 5, 4, 3}, caretLines(result.Selections))
	assert.Equal(t, " = {\nte\n\n\n    \nb\n\n}", text)
}

func TestPlanDownEditorMergedSelections(t *testing.T) {
	sels, _ := cursor.MergeOverlapping(fixtureSelections(), 11)
	flags := Flags{RefPoint: cursor.RefEnd, Destructive: true, Postfix: true, MergeOverlapping: true}
	result, text := planAndApply(t, fixtureText, sels, flags)

	assert.Equal(t, []int{3, 1, 6, 5, 4}, caretLines(result.Selections))
	assert.Equal(t, "te\n = {\n    \n\n\n\nb\n}", text)
}

func TestPlanUpFiltered(t *testing.T) {
	flags := Flags{RefPoint: cursor.RefEnd, Destructive: true, Filter: true}
	result, text := planAndApply(t, fixtureText, fixtureSelections(), flags)

	assert.Equal(t, []int{0, 1, 3, 5, 7, 10}, result.Sources)
	assert.Equal(t, []int{2, 0, 6, 5, 3, 4}, caretLines(result.Selections))
	assert.Len(t, result.Clumps, 6)
	assert.Equal(t, " = {\nte\n\nert\n    df\n\ncvb\n\n}", text)
}

func TestPlanFilterIgnoredWhenNotDestructive(t *testing.T) {
	result, err := Plan(buffer.NewBufferFromString(fixtureText).Snapshot(), fixtureSelections(),
		Flags{RefPoint: cursor.RefEnd, Filter: true})
	require.NoError(t, err)
	assert.Equal(t, 12, result.Len())
}

func TestPlanInvert(t *testing.T) {
	sels := []cursor.Selection{
		cursor.NewCursorSelection(buffer.NewPosition(0, 1)),
		cursor.NewCursorSelection(buffer.NewPosition(0, 2)),
		cursor.NewCursorSelection(buffer.NewPosition(1, 0)),
	}
	src := buffer.NewBufferFromString("abc\ndef").Snapshot()

	normal, err := Plan(src, sels, Flags{RefPoint: cursor.RefActive})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 3}, caretLines(normal.Selections))

	inverted, err := Plan(src, sels, Flags{RefPoint: cursor.RefActive, Invert: true})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, caretLines(inverted.Selections))
}

func TestPlanInvertFirstLineGroup(t *testing.T) {
	// Two touching selections on the first line merge into one clump owned
	// by the later end. The first line group is reversed like any other.
	sels := []cursor.Selection{
		cursor.NewSelectionAt(0, 1, 0, 2),
		cursor.NewSelectionAt(0, 0, 0, 1),
		cursor.NewSelectionAt(1, 1, 1, 2),
	}
	result, text := planAndApply(t, "abc\ndef", sels, Flags{RefPoint: cursor.RefEnd, Destructive: true})

	require.Len(t, result.Clumps, 2)
	assert.Equal(t, buffer.LineRange(0, 0, 2), result.Clumps[0].Range)
	assert.Equal(t, []int{0, 1, 3}, caretLines(result.Selections))
	assert.Equal(t, "\n", result.Inserts[0].NewText)
	assert.Equal(t, "c\n", result.Inserts[1].NewText)
	assert.Equal(t, "f\n", result.Inserts[2].NewText)
	assert.Equal(t, "\nc\n\nf\nd", text)
}

func TestPlanEmptySelections(t *testing.T) {
	result, err := Plan(buffer.NewBufferFromString("abc").Snapshot(), nil, Flags{Destructive: true})
	require.NoError(t, err)
	assert.Zero(t, result.Len())
	assert.Empty(t, result.Edits())
}

func TestPlanEmptyDocument(t *testing.T) {
	sels := []cursor.Selection{cursor.NewCursorSelection(buffer.NewPosition(0, 0))}

	for _, flags := range []Flags{
		{RefPoint: cursor.RefEnd},
		{RefPoint: cursor.RefEnd, Postfix: true},
		{RefPoint: cursor.RefEnd, Destructive: true},
		{RefPoint: cursor.RefEnd, Destructive: true, Postfix: true},
	} {
		_, text := planAndApply(t, "", sels, flags)
		assert.Equal(t, "\n", text, flags.String())
	}
}

func TestPlanInvalidLine(t *testing.T) {
	sels := []cursor.Selection{
		cursor.NewCursorSelection(buffer.NewPosition(0, 0)),
		cursor.NewSelectionAt(0, 0, 2, 0),
	}

	_, err := Plan(buffer.NewBufferFromString("a\nb").Snapshot(), sels, Flags{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLine)

	var lineErr *InvalidLineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, 1, lineErr.Index)
	assert.Equal(t, 2, lineErr.Line)
	assert.Equal(t, 2, lineErr.LineCount)
}

func TestPlanInvalidCharacter(t *testing.T) {
	src := buffer.NewBufferFromString("abc\ndef").Snapshot()

	tests := []struct {
		name  string
		sel   cursor.Selection
		flags Flags
		pos   buffer.Position
	}{
		{"past line end up", cursor.NewSelectionAt(0, 9, 0, 9), Flags{RefPoint: cursor.RefEnd, Destructive: true}, buffer.NewPosition(0, 9)},
		{"past line end before", cursor.NewSelectionAt(1, 1, 1, 4), Flags{RefPoint: cursor.RefEnd}, buffer.NewPosition(1, 4)},
		{"negative anchor", cursor.NewSelectionAt(0, -2, 0, 1), Flags{RefPoint: cursor.RefEnd, Destructive: true}, buffer.NewPosition(0, -2)},
		{"negative cursor", cursor.NewSelectionAt(1, -1, 1, -1), Flags{RefPoint: cursor.RefActive, Postfix: true}, buffer.NewPosition(1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sels := []cursor.Selection{cursor.NewSelectionAt(0, 0, 0, 0), tt.sel}

			_, err := Plan(src, sels, tt.flags)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCharacter)
			assert.NotErrorIs(t, err, ErrDegenerateRange)

			var charErr *InvalidCharacterError
			require.ErrorAs(t, err, &charErr)
			assert.Equal(t, 1, charErr.Index)
			assert.Equal(t, tt.pos, charErr.Position)
			assert.Equal(t, 3, charErr.LineEnd)
		})
	}
}

func TestPlanCharacterAtLineEnd(t *testing.T) {
	_, text := planAndApply(t, "abc\ndef", []cursor.Selection{cursor.NewSelectionAt(0, 3, 0, 3)},
		Flags{RefPoint: cursor.RefEnd, Destructive: true})
	assert.Equal(t, "\nabc\ndef", text)
}

func TestPlanDegenerateRange(t *testing.T) {
	// Claiming the editor merged selections that still overlap leaves two
	// clumps whose relocation range runs backwards.
	sels := []cursor.Selection{
		cursor.NewSelectionAt(0, 0, 0, 4),
		cursor.NewSelectionAt(0, 2, 0, 3),
	}
	flags := Flags{RefPoint: cursor.RefEnd, Destructive: true, MergeOverlapping: true}

	_, err := Plan(buffer.NewBufferFromString("abcdef").Snapshot(), sels, flags)
	assert.ErrorIs(t, err, ErrDegenerateRange)
}

func TestPlanDoesNotModifyInput(t *testing.T) {
	sels := fixtureSelections()
	_, err := Plan(buffer.NewBufferFromString(fixtureText).Snapshot(), sels, Flags{Destructive: true})
	require.NoError(t, err)
	assert.Equal(t, fixtureSelections(), sels)
}
