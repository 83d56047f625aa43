package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned for command names that do not exist.
var ErrUnknownCommand = errors.New("unknown command")

// Namespace prefixes every command identifier and setting key.
const Namespace = "no-indent-newline"

// Name identifies one of the newline commands.
type Name string

const (
	// Before inserts an empty line above the reference line.
	Before Name = "before"
	// Up deletes the selection and moves the rest of its line above.
	Up Name = "up"
	// Down deletes the selection and moves the rest of its line below.
	Down Name = "down"
	// After inserts an empty line below the reference line.
	After Name = "after"
)

// Names lists every command in declaration order.
var Names = []Name{Before, Up, Down, After}

// ParseName accepts a bare command name or a full identifier such as
// "no-indent-newline.up".
func ParseName(s string) (Name, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), Namespace+".")
	name := Name(strings.ToLower(s))
	if !name.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, s)
	}
	return name, nil
}

// Valid reports whether n names an existing command.
func (n Name) Valid() bool {
	switch n {
	case Before, Up, Down, After:
		return true
	}
	return false
}

// ID returns the command identifier, e.g. "no-indent-newline.up".
func (n Name) ID() string {
	return Namespace + "." + string(n)
}

// Postfix reports whether the new line goes below the reference line.
func (n Name) Postfix() bool {
	return n == After || n == Down
}

// Destructive reports whether the command deletes and relocates text.
func (n Name) Destructive() bool {
	return n == Up || n == Down
}

// Direction returns "next" for postfix commands and "previous" otherwise.
func (n Name) Direction() string {
	if n.Postfix() {
		return "next"
	}
	return "previous"
}

// Title returns the human readable command title.
func (n Name) Title() string {
	s := string(n)
	if s == "" {
		return "Insert Non-Indented Newline"
	}
	return "Insert Non-Indented Newline " + strings.ToUpper(s[:1]) + s[1:]
}

// String implements fmt.Stringer.
func (n Name) String() string {
	return string(n)
}
