// Package fixture runs newline commands against YAML fixture files.
//
// A fixture file holds a document and a list of cases. Each case names a
// command, its settings, the initial selections and the expected text and
// selections after the command ran:
//
//	description: A cursor on the first line.
//	text: "abc\ndef"
//	cases:
//	  - name: before_end
//	    command: before
//	    position: end
//	    selections: "{({0,1},{0,1})}"
//	    expected_selections: "{({0,0},{0,0})}"
//	    expected_text: "\nabc\ndef"
//
// Selections are written as {(anchor,active),...} with {line,character}
// positions.
package fixture
