package cursor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRefPoint is returned when a reference point name is not recognized.
var ErrUnknownRefPoint = errors.New("unknown reference point")

// RefPoint names one of the four positions of a selection used to order
// and place it.
type RefPoint uint8

const (
	RefEnd    RefPoint = iota // Later of anchor and active
	RefStart                  // Earlier of anchor and active
	RefActive                 // Cursor position
	RefAnchor                 // Where the selection started
)

// RefPoints lists every reference point in declaration order of the settings schema.
var RefPoints = []RefPoint{RefActive, RefAnchor, RefStart, RefEnd}

// String returns the setting value for the reference point.
func (r RefPoint) String() string {
	switch r {
	case RefActive:
		return "active"
	case RefAnchor:
		return "anchor"
	case RefStart:
		return "start"
	case RefEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Complement returns the opposite position: active and anchor pair up,
// as do start and end.
func (r RefPoint) Complement() RefPoint {
	switch r {
	case RefActive:
		return RefAnchor
	case RefAnchor:
		return RefActive
	case RefStart:
		return RefEnd
	default:
		return RefStart
	}
}

// ParseRefPoint parses a reference point name, case-insensitively.
func ParseRefPoint(s string) (RefPoint, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return RefActive, nil
	case "anchor":
		return RefAnchor, nil
	case "start":
		return RefStart, nil
	case "end":
		return RefEnd, nil
	default:
		return RefEnd, fmt.Errorf("%w: %q", ErrUnknownRefPoint, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r RefPoint) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RefPoint) UnmarshalText(text []byte) error {
	parsed, err := ParseRefPoint(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
