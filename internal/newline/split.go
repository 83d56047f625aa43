package newline

import "github.com/dshills/noindent/internal/engine/buffer"

// SplitByLine decomposes r into single-line pieces: one per line segment
// and one per line break. Deleting the pieces removes exactly r, and no
// piece can strictly contain an insertion at a line start or line end.
func SplitByLine(src Source, r buffer.Range) []buffer.Range {
	if r.IsSingleLine() {
		return []buffer.Range{r}
	}

	var ranges []buffer.Range
	for line := r.Start.Line; line <= r.End.Line; line++ {
		lineStart := buffer.NewPosition(line, 0)
		if line == r.End.Line {
			ranges = append(ranges, buffer.NewRange(lineStart, r.End))
			break
		}

		lineEnd := buffer.NewPosition(line, src.LineEndCharacter(line))
		if line == r.Start.Line {
			ranges = append(ranges, buffer.NewRange(r.Start, lineEnd))
		} else {
			ranges = append(ranges, buffer.NewRange(lineStart, lineEnd))
		}
		ranges = append(ranges, buffer.NewRange(lineEnd, src.LineBreakEndPosition(line)))
	}
	return ranges
}
