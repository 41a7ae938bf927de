package grid

import (
	"fmt"
	"strings"
)

type Direction int

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

// Directions lists the four orthogonal directions in the order the market
// locator scans them.
var Directions = [4]Direction{Up, Left, Right, Down}

// Offset returns the (row, col) delta from the viewport centre.
func (d Direction) Offset() (int, int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	default:
		return 0, 0
	}
}

func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("bad direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDirection accepts full names and single letters, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP", "U":
		return Up, nil
	case "DOWN", "D":
		return Down, nil
	case "LEFT", "L":
		return Left, nil
	case "RIGHT", "R":
		return Right, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
