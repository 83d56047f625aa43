package buffer

import "unicode/utf8"

// utf16ColumnFromString counts UTF-16 code units in a string.
func utf16ColumnFromString(s string) int {
	var col int
	for _, r := range s {
		if r >= 0x10000 {
			col += 2 // Surrogate pair (characters outside BMP)
		} else {
			col++
		}
	}
	return col
}

// byteOffsetFromUTF16Column converts a UTF-16 column to byte offset within a line.
// Columns past the end of the line map to the line length.
func byteOffsetFromUTF16Column(line string, utf16Col int) int {
	var col int
	var byteOffset int

	for _, r := range line {
		if col >= utf16Col {
			break
		}

		// Count UTF-16 code units without allocating
		if r >= 0x10000 {
			col += 2 // Surrogate pair
		} else {
			col++
		}
		byteOffset += utf8.RuneLen(r)
	}

	return byteOffset
}
