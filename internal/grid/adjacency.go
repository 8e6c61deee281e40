package grid

const (
	// Dim is the width and height of a creature in tiles.
	Dim = 3
	// Cells is the number of positions in a creature.
	Cells = Dim * Dim
)

// Position indexes a cell of the 3x3 grid in row-major order:
//
//	0 1 2
//	3 4 5
//	6 7 8
type Position int

// Valid reports whether the position lies on the grid.
func (p Position) Valid() bool {
	return p >= 0 && p < Cells
}

// Row returns the grid row of the position.
func (p Position) Row() int {
	return int(p) / Dim
}

// Col returns the grid column of the position.
func (p Position) Col() int {
	return int(p) % Dim
}

// noMove marks a (position, direction) pair that would leave the grid.
const noMove Position = -1

// moves is the adjacency table, built once from the grid geometry.
var moves = buildMoves()

func buildMoves() [Cells][4]Position {
	var table [Cells][4]Position
	for p := Position(0); p < Cells; p++ {
		row, col := p.Row(), p.Col()
		table[p] = [4]Position{noMove, noMove, noMove, noMove}
		if row > 0 {
			table[p][North] = p - Dim
		}
		if col < Dim-1 {
			table[p][East] = p + 1
		}
		if row < Dim-1 {
			table[p][South] = p + Dim
		}
		if col > 0 {
			table[p][West] = p - 1
		}
	}
	return table
}

// Neighbor resolves a move from p in direction d. The second result is false
// when the move would leave the grid.
func Neighbor(p Position, d Direction) (Position, bool) {
	if !p.Valid() || d > West {
		return noMove, false
	}
	q := moves[p][d]
	return q, q != noMove
}

// ValidMoveSet returns the directions that lead from p to an on-grid neighbor.
func ValidMoveSet(p Position) DirectionSet {
	var s DirectionSet
	if !p.Valid() {
		return s
	}
	for _, d := range Directions {
		if moves[p][d] != noMove {
			s = s.Add(d)
		}
	}
	return s
}

// ValidMoves returns the directions available from p in canonical order.
func ValidMoves(p Position) []Direction {
	return ValidMoveSet(p).Directions()
}

// Reachable resolves every direction of dirs from p and returns the distinct
// destinations in ascending order. Directions that leave the grid are skipped.
func Reachable(p Position, dirs DirectionSet) []Position {
	var seen [Cells]bool
	for _, d := range dirs.Directions() {
		if q, ok := Neighbor(p, d); ok {
			seen[q] = true
		}
	}
	out := make([]Position, 0, 4)
	for q := Position(0); q < Cells; q++ {
		if seen[q] {
			out = append(out, q)
		}
	}
	return out
}
