// Package grid provides the fixed 3x3 creature grid: positions, directions,
// connector sets and the adjacency table between cells.
package grid

import (
	"fmt"
	"strings"
)

// Direction is one of the four edges of a cell.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in canonical order.
var Directions = [...]Direction{North, East, South, West}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Letter returns the single-character connector code (n, e, s, w).
func (d Direction) Letter() byte {
	return "nesw"[d&3]
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// ParseDirection converts a connector letter into a Direction.
func ParseDirection(c byte) (Direction, bool) {
	switch c {
	case 'n':
		return North, true
	case 'e':
		return East, true
	case 's':
		return South, true
	case 'w':
		return West, true
	}
	return 0, false
}

// DirectionSet is a set of directions stored as a 4-bit mask.
type DirectionSet uint8

// AllDirections contains north, east, south and west.
const AllDirections DirectionSet = 1<<North | 1<<East | 1<<South | 1<<West

// NewDirectionSet builds a set from the given directions.
func NewDirectionSet(dirs ...Direction) DirectionSet {
	var s DirectionSet
	for _, d := range dirs {
		s = s.Add(d)
	}
	return s
}

// ParseDirectionSet parses a connector code such as "nes". Duplicate letters
// are ignored; an empty code or an unknown letter is an error.
func ParseDirectionSet(code string) (DirectionSet, error) {
	if code == "" {
		return 0, fmt.Errorf("empty connector code")
	}
	var s DirectionSet
	for i := 0; i < len(code); i++ {
		d, ok := ParseDirection(code[i])
		if !ok {
			return 0, fmt.Errorf("invalid connector %q in code %q", code[i], code)
		}
		s = s.Add(d)
	}
	return s, nil
}

// Add returns the set with d included.
func (s DirectionSet) Add(d Direction) DirectionSet {
	return s | 1<<d
}

// Has reports whether d is in the set.
func (s DirectionSet) Has(d Direction) bool {
	return s&(1<<d) != 0
}

// Intersects reports whether the two sets share at least one direction.
func (s DirectionSet) Intersects(other DirectionSet) bool {
	return s&other != 0
}

// Len returns the number of directions in the set.
func (s DirectionSet) Len() int {
	n := 0
	for _, d := range Directions {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Empty reports whether the set has no directions.
func (s DirectionSet) Empty() bool {
	return s&AllDirections == 0
}

// Directions returns the members in canonical order.
func (s DirectionSet) Directions() []Direction {
	dirs := make([]Direction, 0, 4)
	for _, d := range Directions {
		if s.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// String returns the connector code in canonical order, e.g. "nesw".
func (s DirectionSet) String() string {
	var b strings.Builder
	for _, d := range s.Directions() {
		b.WriteByte(d.Letter())
	}
	return b.String()
}
