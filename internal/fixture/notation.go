package fixture

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/noindent/internal/engine/cursor"
)

// ErrNotation is returned for malformed selection lists.
var ErrNotation = errors.New("invalid selection notation")

var (
	selectionPattern = `\(\{(\d+),(\d+)\},\{(\d+),(\d+)\}\)`
	listPattern      = regexp.MustCompile(`^\{(?:` + selectionPattern + `(?:,` + selectionPattern + `)*)?\}$`)
	itemPattern      = regexp.MustCompile(selectionPattern)
)

// ParseSelections parses a selection list such as
// "{({1,6},{1,5}),({0,2},{0,4})}". Each selection is written anchor
// first, as {line,character} pairs. Whitespace is ignored.
func ParseSelections(s string) ([]cursor.Selection, error) {
	compact := strings.Join(strings.Fields(s), "")
	if !listPattern.MatchString(compact) {
		return nil, fmt.Errorf("%w: %q", ErrNotation, s)
	}

	matches := itemPattern.FindAllStringSubmatch(compact, -1)
	sels := make([]cursor.Selection, 0, len(matches))
	for _, m := range matches {
		var n [4]int
		for i := range n {
			v, err := strconv.Atoi(m[i+1])
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrNotation, m[0], err)
			}
			n[i] = v
		}
		sels = append(sels, cursor.NewSelectionAt(n[0], n[1], n[2], n[3]))
	}
	return sels, nil
}

// FormatSelections writes sels in the notation read by ParseSelections.
func FormatSelections(sels []cursor.Selection) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, sel := range sels {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(sel.String())
	}
	b.WriteByte('}')
	return b.String()
}
