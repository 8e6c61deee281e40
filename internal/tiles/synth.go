package tiles

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/samdwyer/creatures/internal/grid"
)

// Synthesize builds a repository with one tile for each of the 15 non-empty
// connector combinations. Each tile is a hub in the center with a bar running
// to every connected edge, drawn in ink on a transparent background.
func Synthesize(size int, ink color.Color) *Repository {
	if size < 4 {
		size = 4
	}

	tiles := make([]*Tile, 0, 15)
	for mask := grid.DirectionSet(1); mask <= grid.AllDirections; mask++ {
		tiles = append(tiles, &Tile{
			Name:       "bar-" + mask.String(),
			Connectors: mask,
			Image:      drawConnectors(size, mask, ink),
		})
	}

	repo, err := NewRepository(tiles)
	if err != nil {
		// All synthesized tiles are square and equally sized.
		panic(err)
	}
	return repo
}

func drawConnectors(size int, connectors grid.DirectionSet, ink color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	src := image.NewUniform(ink)

	thickness := size / 4
	lo := (size - thickness) / 2
	hi := lo + thickness

	hub := image.Rect(lo, lo, hi, hi)
	draw.Draw(img, hub, src, image.Point{}, draw.Src)

	for _, d := range connectors.Directions() {
		var bar image.Rectangle
		switch d {
		case grid.North:
			bar = image.Rect(lo, 0, hi, hi)
		case grid.East:
			bar = image.Rect(lo, lo, size, hi)
		case grid.South:
			bar = image.Rect(lo, lo, hi, size)
		case grid.West:
			bar = image.Rect(0, lo, hi, hi)
		}
		draw.Draw(img, bar, src, image.Point{}, draw.Src)
	}

	return img
}
