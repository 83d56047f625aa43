package cursor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/noindent/internal/engine/buffer"
)

// fixtureSelections mixes cursors, reversed, duplicate, nested and
// multi-line selections over a five line buffer.
func fixtureSelections() []Selection {
	return []Selection{
		NewSelectionAt(1, 6, 1, 5),
		NewSelectionAt(0, 2, 0, 4),
		NewSelectionAt(1, 5, 1, 6),
		NewSelectionAt(3, 6, 2, 8),
		NewSelectionAt(1, 5, 1, 9),
		NewSelectionAt(3, 9, 3, 10),
		NewSelectionAt(1, 8, 1, 8),
		NewSelectionAt(1, 4, 1, 5),
		NewSelectionAt(2, 5, 3, 8),
		NewSelectionAt(2, 5, 3, 8),
		NewSelectionAt(1, 9, 2, 6),
		NewSelectionAt(1, 6, 1, 5),
	}
}

func TestSelectionAccessors(t *testing.T) {
	sel := NewSelectionAt(3, 6, 2, 8)

	if sel.Start() != buffer.NewPosition(2, 8) {
		t.Errorf("expected start (2:8), got %s", sel.Start())
	}
	if sel.End() != buffer.NewPosition(3, 6) {
		t.Errorf("expected end (3:6), got %s", sel.End())
	}
	if !sel.IsReversed() {
		t.Error("selection should be reversed")
	}
	if sel.IsSingleLine() {
		t.Error("selection should span lines")
	}
	if sel.IsEmpty() {
		t.Error("selection should not be empty")
	}
	if got := sel.String(); got != "({3,6},{2,8})" {
		t.Errorf("unexpected String() %q", got)
	}
}

func TestSelectionPoint(t *testing.T) {
	sel := NewSelectionAt(1, 6, 1, 5)

	tests := []struct {
		ref  RefPoint
		want Position
	}{
		{RefActive, buffer.NewPosition(1, 5)},
		{RefAnchor, buffer.NewPosition(1, 6)},
		{RefStart, buffer.NewPosition(1, 5)},
		{RefEnd, buffer.NewPosition(1, 6)},
	}

	for _, tt := range tests {
		if got := sel.Point(tt.ref); got != tt.want {
			t.Errorf("Point(%s) = %s, want %s", tt.ref, got, tt.want)
		}
	}
}

func TestSelectionWithRangeKeepsDirection(t *testing.T) {
	r := buffer.NewRange(buffer.NewPosition(1, 0), buffer.NewPosition(2, 0))

	forward := NewSelectionAt(1, 1, 1, 2).WithRange(r)
	if forward.Anchor != r.Start || forward.Active != r.End {
		t.Errorf("forward selection lost direction: %s", forward)
	}

	backward := NewSelectionAt(1, 2, 1, 1).WithRange(r)
	if backward.Anchor != r.End || backward.Active != r.Start {
		t.Errorf("backward selection lost direction: %s", backward)
	}
}

func TestRefPointComplement(t *testing.T) {
	tests := []struct {
		ref  RefPoint
		want RefPoint
	}{
		{RefActive, RefAnchor},
		{RefAnchor, RefActive},
		{RefStart, RefEnd},
		{RefEnd, RefStart},
	}

	for _, tt := range tests {
		if got := tt.ref.Complement(); got != tt.want {
			t.Errorf("%s.Complement() = %s, want %s", tt.ref, got, tt.want)
		}
		if got := tt.ref.Complement().Complement(); got != tt.ref {
			t.Errorf("double complement of %s = %s", tt.ref, got)
		}
	}
}

func TestParseRefPoint(t *testing.T) {
	for _, ref := range RefPoints {
		got, err := ParseRefPoint(ref.String())
		if err != nil {
			t.Fatalf("ParseRefPoint(%q): %v", ref.String(), err)
		}
		if got != ref {
			t.Errorf("ParseRefPoint(%q) = %s", ref.String(), got)
		}
	}

	if got, err := ParseRefPoint(" Active "); err != nil || got != RefActive {
		t.Errorf("expected case-insensitive parse, got %s, %v", got, err)
	}

	if _, err := ParseRefPoint("middle"); !errors.Is(err, ErrUnknownRefPoint) {
		t.Errorf("expected ErrUnknownRefPoint, got %v", err)
	}
}

func TestRefPointText(t *testing.T) {
	var ref RefPoint
	if err := ref.UnmarshalText([]byte("anchor")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref != RefAnchor {
		t.Errorf("expected anchor, got %s", ref)
	}

	text, err := RefStart.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(text) != "start" {
		t.Errorf("expected start, got %s", text)
	}

	if err := ref.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("expected error for unknown reference point")
	}
}

func TestSort(t *testing.T) {
	sels := fixtureSelections()

	tests := []struct {
		ref  RefPoint
		want []int
	}{
		{RefEnd, []int{1, 7, 0, 2, 11, 6, 4, 10, 3, 8, 9, 5}},
		{RefStart, []int{1, 7, 0, 2, 11, 4, 6, 10, 8, 9, 3, 5}},
		{RefActive, []int{1, 7, 0, 11, 2, 6, 4, 10, 3, 8, 9, 5}},
		{RefAnchor, []int{1, 7, 2, 4, 0, 11, 6, 10, 8, 9, 3, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.ref.String(), func(t *testing.T) {
			got := Indices(Sort(sels, tt.ref))
			if !cmp.Equal(got, tt.want) {
				t.Errorf("Sort(%s) = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestSortIsIdempotent(t *testing.T) {
	sels := fixtureSelections()

	for _, ref := range RefPoints {
		first := Sort(sels, ref)
		second := SortIndexed(first, ref)
		if !cmp.Equal(Indices(first), Indices(second)) {
			t.Errorf("resorting by %s changed order: %v vs %v", ref, Indices(first), Indices(second))
		}
	}
}

func TestSortDoesNotModifyInput(t *testing.T) {
	sels := fixtureSelections()
	Sort(sels, RefStart)

	for i, sel := range fixtureSelections() {
		if !sels[i].Equals(sel) {
			t.Errorf("input %d changed: %s", i, sels[i])
		}
	}
}

func TestSortEmpty(t *testing.T) {
	if got := Sort(nil, RefEnd); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestFilterOverlapping(t *testing.T) {
	got := FilterOverlapping(fixtureSelections())

	wantIdx := []int{0, 1, 3, 5, 7, 10}
	wantSel := []Selection{
		NewSelectionAt(1, 6, 1, 5),
		NewSelectionAt(0, 2, 0, 4),
		NewSelectionAt(3, 6, 2, 8),
		NewSelectionAt(3, 9, 3, 10),
		NewSelectionAt(1, 4, 1, 5),
		NewSelectionAt(1, 9, 2, 6),
	}

	if !cmp.Equal(Indices(got), wantIdx) {
		t.Fatalf("expected indices %v, got %v", wantIdx, Indices(got))
	}
	for i, sel := range got {
		if !sel.Selection.Equals(wantSel[i]) {
			t.Errorf("survivor %d: expected %s, got %s", i, wantSel[i], sel.Selection)
		}
	}
}

func TestFilterOverlappingKeepsTouching(t *testing.T) {
	sels := []Selection{
		NewSelectionAt(0, 0, 0, 2),
		NewSelectionAt(0, 2, 0, 4),
		NewCursorSelection(buffer.NewPosition(0, 4)),
	}

	if got := FilterOverlapping(sels); len(got) != 3 {
		t.Errorf("touching selections should survive, got %v", Indices(got))
	}
}

func TestFilterOverlappingDropsLaterDeclared(t *testing.T) {
	sels := []Selection{
		NewSelectionAt(0, 3, 0, 6),
		NewSelectionAt(0, 0, 0, 4),
	}

	got := FilterOverlapping(sels)
	if len(got) != 1 || got[0].Index != 0 {
		t.Errorf("expected only the first selection, got %v", Indices(got))
	}
}

func TestMergeOverlapping(t *testing.T) {
	sels := fixtureSelections()
	got, lastAdded := MergeOverlapping(sels, len(sels)-1)

	want := []Selection{
		NewSelectionAt(1, 9, 1, 5),
		NewSelectionAt(0, 2, 0, 4),
		NewSelectionAt(1, 9, 3, 8),
		NewSelectionAt(3, 9, 3, 10),
		NewSelectionAt(1, 4, 1, 5),
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged selections mismatch (-want +got):\n%s", diff)
	}
	if lastAdded != 2 {
		t.Errorf("expected last added index 2, got %d", lastAdded)
	}
}

func TestMergeOverlappingTouchingCursor(t *testing.T) {
	sels := []Selection{
		NewSelectionAt(0, 0, 0, 2),
		NewCursorSelection(buffer.NewPosition(0, 2)),
		NewSelectionAt(0, 2, 0, 4),
	}

	got, _ := MergeOverlapping(sels, -1)

	// The cursor touches the first selection and is absorbed; the two
	// non-empty selections only touch and stay apart.
	if len(got) != 2 {
		t.Fatalf("expected 2 selections, got %v", got)
	}
	if !got[0].Equals(NewSelectionAt(0, 0, 0, 2)) || !got[1].Equals(NewSelectionAt(0, 2, 0, 4)) {
		t.Errorf("unexpected result %v", got)
	}
}

func TestMergeOverlappingLastAddedDirection(t *testing.T) {
	sels := []Selection{
		NewSelectionAt(0, 0, 0, 3),
		NewSelectionAt(0, 5, 0, 2),
	}

	got, lastAdded := MergeOverlapping(sels, 1)
	if len(got) != 1 {
		t.Fatalf("expected 1 selection, got %v", got)
	}
	if !got[0].Equals(NewSelectionAt(0, 5, 0, 0)) {
		t.Errorf("expected the last added direction, got %s", got[0])
	}
	if lastAdded != 0 {
		t.Errorf("expected last added 0, got %d", lastAdded)
	}

	got, _ = MergeOverlapping(sels, 0)
	if !got[0].Equals(NewSelectionAt(0, 0, 0, 5)) {
		t.Errorf("expected the first declared direction, got %s", got[0])
	}
}

func TestCursorSet(t *testing.T) {
	cs := NewCursorSet(NewSelectionAt(0, 0, 0, 2))
	cs.Add(NewSelectionAt(1, 0, 1, 1))

	if cs.Count() != 2 {
		t.Errorf("expected 2 selections, got %d", cs.Count())
	}
	if cs.LastAdded() != 1 {
		t.Errorf("expected last added 1, got %d", cs.LastAdded())
	}
	if !cs.Primary().Equals(NewSelectionAt(0, 0, 0, 2)) {
		t.Errorf("unexpected primary %s", cs.Primary())
	}
	// Overlapping selections stay apart until merging is enabled.
	cs.Add(NewSelectionAt(0, 1, 0, 4))
	if cs.Count() != 3 {
		t.Fatalf("expected 3 selections, got %d", cs.Count())
	}

	cs.SetMergeOverlapping(true)
	if cs.Count() != 2 {
		t.Fatalf("expected 2 selections after merge, got %v", cs.All())
	}
	if !cs.Get(0).Equals(NewSelectionAt(0, 0, 0, 4)) {
		t.Errorf("unexpected merged selection %s", cs.Get(0))
	}
	if cs.LastAdded() != 0 {
		t.Errorf("expected last added to move to the survivor, got %d", cs.LastAdded())
	}
}

func TestCursorSetFromSliceMerges(t *testing.T) {
	cs := NewCursorSetFromSlice(fixtureSelections(), true)
	if cs.Count() != 5 {
		t.Errorf("expected 5 selections, got %d", cs.Count())
	}
}

func TestCursorSetEmpty(t *testing.T) {
	cs := NewCursorSetFromSlice(nil, true)
	if cs.Count() != 0 {
		t.Errorf("expected empty set, got %d", cs.Count())
	}
	if cs.LastAdded() != -1 {
		t.Errorf("expected -1, got %d", cs.LastAdded())
	}
	if cs.Primary() != (Selection{}) {
		t.Error("expected zero primary")
	}
}
