package newline

import "sort"

// LineDelta records, per original line, how many lines destructive
// selections remove up to the point where that line is first crossed.
//
// Each line is recorded once. Values start at 1 and grow by one per newly
// recorded line, so they strictly increase in recording order.
type LineDelta struct {
	lines   []int // recorded lines, ascending
	values  map[int]int
	counter int
}

// NewLineDelta creates an empty tracker.
func NewLineDelta() *LineDelta {
	return &LineDelta{values: make(map[int]int)}
}

// Record registers every line in [startLine, endLine) that has not been
// recorded yet.
func (d *LineDelta) Record(startLine, endLine int) {
	for line := startLine; line < endLine; line++ {
		if _, ok := d.values[line]; ok {
			continue
		}
		d.counter++
		d.values[line] = d.counter

		i := sort.SearchInts(d.lines, line)
		d.lines = append(d.lines, 0)
		copy(d.lines[i+1:], d.lines[i:])
		d.lines[i] = line
	}
}

// Value returns the value recorded for line.
func (d *LineDelta) Value(line int) (int, bool) {
	v, ok := d.values[line]
	return v, ok
}

// Correction returns the value of the nearest recorded line with a
// smaller line number than line, or 0 when no such line exists.
func (d *LineDelta) Correction(line int) int {
	i := sort.SearchInts(d.lines, line)
	if i == 0 {
		return 0
	}
	return d.values[d.lines[i-1]]
}

// Len returns the number of recorded lines.
func (d *LineDelta) Len() int {
	return len(d.lines)
}

// Lines returns the recorded lines in ascending order.
func (d *LineDelta) Lines() []int {
	result := make([]int, len(d.lines))
	copy(result, d.lines)
	return result
}
