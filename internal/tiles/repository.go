package tiles

import (
	"fmt"

	"github.com/samdwyer/creatures/internal/grid"
)

// Repository holds an ordered, immutable collection of equally sized tiles.
type Repository struct {
	tiles    []*Tile
	byName   map[string]*Tile
	tileSize int
}

// NewRepository creates a repository from tiles, keeping their order.
// Every tile must have a square image and all tiles must share one size. An empty
// repository is allowed and reports a tile size of zero.
func NewRepository(tiles []*Tile) (*Repository, error) {
	repo := &Repository{
		tiles:  make([]*Tile, 0, len(tiles)),
		byName: make(map[string]*Tile, len(tiles)),
	}

	for i, t := range tiles {
		if t == nil {
			return nil, fmt.Errorf("%w: tile %d is nil", ErrNoImage, i)
		}
		if t.Image == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoImage, describe(t))
		}
		b := t.Image.Bounds()
		if b.Dx() != b.Dy() {
			return nil, fmt.Errorf("%w: %s is %dx%d", ErrNotSquare, describe(t), b.Dx(), b.Dy())
		}
		if len(repo.tiles) == 0 {
			repo.tileSize = b.Dx()
		} else if b.Dx() != repo.tileSize {
			return nil, fmt.Errorf("%w: %s is %dpx, expected %dpx",
				ErrSizeMismatch, describe(t), b.Dx(), repo.tileSize)
		}
		repo.tiles = append(repo.tiles, t)
		if _, dup := repo.byName[t.Name]; !dup {
			repo.byName[t.Name] = t
		}
	}

	return repo, nil
}

// TileSize returns the common edge length of the tiles in pixels.
func (r *Repository) TileSize() int {
	return r.tileSize
}

// Supporting returns every tile whose connectors share at least one direction
// with dirs, in repository order. An empty result means no tile fits.
func (r *Repository) Supporting(dirs grid.DirectionSet) []*Tile {
	var result []*Tile
	for _, t := range r.tiles {
		if t.Connectors.Intersects(dirs) {
			result = append(result, t)
		}
	}
	return result
}

// ByName returns the first tile with the given name, or nil if not found.
func (r *Repository) ByName(name string) *Tile {
	return r.byName[name]
}

// All returns all tiles in repository order.
func (r *Repository) All() []*Tile {
	return r.tiles
}

// Count returns the number of tiles in the repository.
func (r *Repository) Count() int {
	return len(r.tiles)
}

func describe(t *Tile) string {
	if t.Source != "" {
		return t.Source
	}
	return t.String()
}
