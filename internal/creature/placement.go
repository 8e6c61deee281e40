// Package creature implements the constrained random walk that assembles a
// creature from tiles on the 3x3 grid.
package creature

import (
	"github.com/samdwyer/creatures/internal/grid"
	"github.com/samdwyer/creatures/internal/tiles"
)

// Placement maps grid positions to the tiles placed there. It is filled by a
// single walk and is read-only once the walk returns.
type Placement struct {
	tiles    [grid.Cells]*tiles.Tile
	incoming [grid.Cells]Entry
	order    []grid.Position
}

func newPlacement() *Placement {
	return &Placement{order: make([]grid.Position, 0, grid.Cells)}
}

// place records a tile for the entry's position. The walk never offers a
// position twice, so an occupied cell is left unchanged.
func (p *Placement) place(e Entry, t *tiles.Tile) bool {
	if !e.Position.Valid() || p.tiles[e.Position] != nil {
		return false
	}
	p.tiles[e.Position] = t
	p.incoming[e.Position] = e
	p.order = append(p.order, e.Position)
	return true
}

// At returns the tile at pos, or nil if the cell is empty.
func (p *Placement) At(pos grid.Position) *tiles.Tile {
	if !pos.Valid() {
		return nil
	}
	return p.tiles[pos]
}

// Has reports whether a tile was placed at pos.
func (p *Placement) Has(pos grid.Position) bool {
	return p.At(pos) != nil
}

// Len returns the number of placed tiles.
func (p *Placement) Len() int {
	return len(p.order)
}

// Empty reports whether no tile was placed.
func (p *Placement) Empty() bool {
	return len(p.order) == 0
}

// Incoming returns the connector the tile at pos was required to carry.
// The second result is false for the start position and for empty cells.
func (p *Placement) Incoming(pos grid.Position) (grid.Direction, bool) {
	if !p.Has(pos) || p.incoming[pos].Wildcard {
		return 0, false
	}
	return p.incoming[pos].Incoming, true
}

// Order returns the positions in the order the walk filled them.
func (p *Placement) Order() []grid.Position {
	out := make([]grid.Position, len(p.order))
	copy(out, p.order)
	return out
}

// Each calls fn for every placed tile in ascending position order.
func (p *Placement) Each(fn func(pos grid.Position, t *tiles.Tile)) {
	for pos := grid.Position(0); pos < grid.Cells; pos++ {
		if t := p.tiles[pos]; t != nil {
			fn(pos, t)
		}
	}
}

// String returns a 3-line sketch of the creature with each cell's connectors.
func (p *Placement) String() string {
	buf := make([]byte, 0, grid.Cells*5)
	for pos := grid.Position(0); pos < grid.Cells; pos++ {
		code := "."
		if t := p.tiles[pos]; t != nil {
			code = t.Connectors.String()
		}
		buf = append(buf, code...)
		for i := len(code); i < 4; i++ {
			buf = append(buf, ' ')
		}
		if pos.Col() == grid.Dim-1 {
			buf = append(buf, '\n')
		} else {
			buf = append(buf, ' ')
		}
	}
	return string(buf)
}
