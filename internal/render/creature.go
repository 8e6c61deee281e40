// Package render paints creatures into images and assembles them into sheets.
package render

import (
	"errors"
	"image"
	"image/draw"

	"github.com/samdwyer/creatures/internal/creature"
	"github.com/samdwyer/creatures/internal/grid"
	"github.com/samdwyer/creatures/internal/tiles"
)

// ErrEmptyCreature is returned when asked to render a placement with no tiles.
var ErrEmptyCreature = errors.New("creature has no tiles")

// CreatureSize returns the edge length of a rendered creature in pixels.
func CreatureSize(tileSize, pad int) int {
	return grid.Dim*tileSize + 2*pad
}

// TileOffset returns the top-left pixel of the tile at pos inside a creature.
func TileOffset(pos grid.Position, tileSize, pad int) image.Point {
	return image.Pt(pos.Col()*tileSize+pad, pos.Row()*tileSize+pad)
}

// Creature paints a placement onto a new transparent canvas.
func Creature(p *creature.Placement, tileSize, pad int) (*image.RGBA, error) {
	size := CreatureSize(tileSize, pad)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if err := drawCreature(img, image.Point{}, p, tileSize, pad); err != nil {
		return nil, err
	}
	return img, nil
}

// drawCreature pastes each tile of p onto dst with the creature's top-left
// corner at origin.
func drawCreature(dst draw.Image, origin image.Point, p *creature.Placement, tileSize, pad int) error {
	if p == nil || p.Empty() {
		return ErrEmptyCreature
	}
	p.Each(func(pos grid.Position, t *tiles.Tile) {
		at := origin.Add(TileOffset(pos, tileSize, pad))
		r := image.Rectangle{Min: at, Max: at.Add(image.Pt(tileSize, tileSize))}
		draw.Draw(dst, r, t.Image, t.Image.Bounds().Min, draw.Src)
	})
	return nil
}
