// Package nav defines the shared vocabulary for focus navigation: directions,
// navigation requests, layer decisions, and the transport error kinds that
// every layer client reports.
package nav

import "fmt"

// Direction is one of the four cardinal focus motions.
type Direction string

const (
	Left  Direction = "left"
	Right Direction = "right"
	Up    Direction = "up"
	Down  Direction = "down"
)

// Directions lists all valid directions in CLI argument order.
var Directions = []Direction{Left, Right, Up, Down}

// ParseDirection converts a CLI argument into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Left, Right, Up, Down:
		return Direction(s), nil
	}
	return "", fmt.Errorf("invalid direction %q (expected left, right, up or down)", s)
}

// Horizontal reports whether the direction moves along the tab axis.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	return string(d)
}
